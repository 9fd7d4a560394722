package models

// CartItem represents a line stored under luxemarket_cart
type CartItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Image     string  `json:"image,omitempty"`
}

// AddToCartRequest represents the request body for adding a product to the cart
// Example: {"productId": 1, "quantity": 2, "color": "Black", "size": "M"}
type AddToCartRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

// CartLineKey identifies a cart line: same product, color and size merge into one line
type CartLineKey struct {
	ProductID int    `json:"productId"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

// Key returns the line key of the item
func (c CartItem) Key() CartLineKey {
	return CartLineKey{ProductID: c.ProductID, Color: c.Color, Size: c.Size}
}

// UpdateCartItemRequest represents the request body for changing a line quantity; 0 removes the line
type UpdateCartItemRequest struct {
	CartLineKey
	Quantity int `json:"quantity"`
}

// CheckoutRequest represents the request body for placing an order
type CheckoutRequest struct {
	Customer Customer `json:"customer"`
}

// CartLine is a cart item priced with any active daily deal
type CartLine struct {
	CartItem
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
	OnDeal    bool    `json:"onDeal"`
}

// CartSummary is the priced view of the cart
type CartSummary struct {
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"itemCount"`
	Subtotal  float64    `json:"subtotal"` // Sum at base prices
	Discount  float64    `json:"discount"`
	Total     float64    `json:"total"`
}

// Customer holds checkout contact details
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

// Order is appended to luxemarket_orders on checkout
type Order struct {
	ID        string     `json:"id"`
	Items     []CartLine `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	Discount  float64    `json:"discount"`
	Total     float64    `json:"total"`
	Customer  Customer   `json:"customer"`
	CreatedAt string     `json:"createdAt"`
}

// User is the session-scoped shopper stored under luxemarket_user
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
