package controller

import (
	"net/http"

	"luxemarket/models"
	"luxemarket/service"
)

// CartController handles the session cart and checkout
type CartController struct {
	checkout service.CheckoutServiceInterface
	sessions *Sessions
}

// NewCartController creates a new CartController
func NewCartController(checkout service.CheckoutServiceInterface, sessions *Sessions) *CartController {
	return &CartController{checkout: checkout, sessions: sessions}
}

// Cart handles GET /cart (priced summary), POST /cart (add) and DELETE /cart (clear)
func (c *CartController) Cart(w http.ResponseWriter, r *http.Request) {
	session := c.sessions.ID(w, r)

	switch r.Method {
	case http.MethodGet:
		summary, err := c.checkout.Summary(r.Context(), session)
		if err != nil {
			writeError(w, "load cart", err)
			return
		}
		writeJSON(w, http.StatusOK, summary)

	case http.MethodPost:
		var req models.AddToCartRequest
		if !decodeBody(w, r, &req) {
			return
		}
		summary, err := c.checkout.AddToCart(r.Context(), session, req)
		if err != nil {
			writeError(w, "add to cart", err)
			return
		}
		writeJSON(w, http.StatusOK, summary)

	case http.MethodDelete:
		if err := c.checkout.ClearCart(r.Context(), session); err != nil {
			writeError(w, "clear cart", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

// Items handles PUT /cart/items (set quantity, 0 removes) and DELETE /cart/items (remove line)
func (c *CartController) Items(w http.ResponseWriter, r *http.Request) {
	session := c.sessions.ID(w, r)

	switch r.Method {
	case http.MethodPut:
		var req models.UpdateCartItemRequest
		if !decodeBody(w, r, &req) {
			return
		}
		summary, err := c.checkout.UpdateCartItem(r.Context(), session, req)
		if err != nil {
			writeError(w, "update cart", err)
			return
		}
		writeJSON(w, http.StatusOK, summary)

	case http.MethodDelete:
		var key models.CartLineKey
		if !decodeBody(w, r, &key) {
			return
		}
		summary, err := c.checkout.RemoveCartItem(r.Context(), session, key)
		if err != nil {
			writeError(w, "remove cart item", err)
			return
		}
		writeJSON(w, http.StatusOK, summary)

	default:
		methodNotAllowed(w)
	}
}

// Checkout handles POST /checkout
func (c *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	session := c.sessions.ID(w, r)

	var req models.CheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := c.checkout.Checkout(r.Context(), session, req)
	if err != nil {
		writeError(w, "place order", err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}
