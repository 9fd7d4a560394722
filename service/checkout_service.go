package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"luxemarket/models"
	"luxemarket/pricing"
	"luxemarket/repository"
	"luxemarket/utils"
)

// CheckoutService prices session carts and turns them into orders
// Implements CheckoutServiceInterface
type CheckoutService struct {
	products repository.ProductRepositoryInterface
	deals    repository.DealRepositoryInterface
	carts    repository.CartRepositoryInterface
	orders   repository.OrderRepositoryInterface
	users    repository.UserRepositoryInterface
	engine   *pricing.Engine

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex // One per session; cart writes and checkout for a session never overlap
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	products repository.ProductRepositoryInterface,
	deals repository.DealRepositoryInterface,
	carts repository.CartRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	users repository.UserRepositoryInterface,
	engine *pricing.Engine,
) *CheckoutService {
	return &CheckoutService{
		products: products,
		deals:    deals,
		carts:    carts,
		orders:   orders,
		users:    users,
		engine:   engine,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lock serializes cart mutations and checkout for one session
func (s *CheckoutService) lock(session string) func() {
	s.locksMu.Lock()
	m, ok := s.locks[session]
	if !ok {
		m = &sync.Mutex{}
		s.locks[session] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	return m.Unlock
}

// Ensure CheckoutService implements CheckoutServiceInterface
var _ CheckoutServiceInterface = (*CheckoutService)(nil)

// AddToCart validates the requested variant against the product and adds a line.
// Name, price and image are captured from the product at add time.
func (s *CheckoutService) AddToCart(ctx context.Context, session string, req models.AddToCartRequest) (*models.CartSummary, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", repository.ErrValidation)
	}
	defer s.lock(session)()

	p, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	color, err := pickColor(p, req.Color)
	if err != nil {
		return nil, err
	}
	size, err := pickSize(p, req.Size)
	if err != nil {
		return nil, err
	}

	inCart := 0
	items, err := s.carts.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ProductID == p.ID {
			inCart += it.Quantity
		}
	}
	if inCart+req.Quantity > p.Stock {
		return nil, fmt.Errorf("only %d of %q in stock: %w", p.Stock, p.Name, repository.ErrValidation)
	}

	image := p.Image
	if imgs, err := s.products.ImagesForColor(ctx, p.ID, color); err == nil && len(imgs) > 0 {
		image = imgs[0]
	}

	item := models.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  req.Quantity,
		Color:     color,
		Size:      size,
		Image:     image,
	}
	if _, err := s.carts.Add(ctx, session, item); err != nil {
		return nil, err
	}
	log.Printf("🛒 Added %d x %q (%s/%s) to cart", item.Quantity, item.Name, item.Color, item.Size)
	return s.Summary(ctx, session)
}

// pickColor returns the product's spelling of color; empty picks the first color
func pickColor(p *models.Product, color string) (string, error) {
	color = strings.TrimSpace(color)
	if len(p.Colors) == 0 {
		return color, nil
	}
	if color == "" {
		return p.Colors[0].Name, nil
	}
	for _, c := range p.Colors {
		if strings.EqualFold(c.Name, color) {
			return c.Name, nil
		}
	}
	return "", fmt.Errorf("color %q is not offered for %q: %w", color, p.Name, repository.ErrValidation)
}

// pickSize normalizes size and checks it against the product sizes; empty picks the first size
func pickSize(p *models.Product, size string) (string, error) {
	size = utils.NormalizeSize(size)
	if len(p.Sizes) == 0 {
		return size, nil
	}
	if size == "" {
		return p.Sizes[0], nil
	}
	for _, s := range p.Sizes {
		if s == size {
			return s, nil
		}
	}
	return "", fmt.Errorf("size %q is not offered for %q: %w", size, p.Name, repository.ErrValidation)
}

// UpdateCartItem sets a line quantity; 0 removes the line
func (s *CheckoutService) UpdateCartItem(ctx context.Context, session string, req models.UpdateCartItemRequest) (*models.CartSummary, error) {
	defer s.lock(session)()
	if _, err := s.carts.UpdateQuantity(ctx, session, req.CartLineKey, req.Quantity); err != nil {
		return nil, err
	}
	return s.Summary(ctx, session)
}

// RemoveCartItem drops a line
func (s *CheckoutService) RemoveCartItem(ctx context.Context, session string, key models.CartLineKey) (*models.CartSummary, error) {
	defer s.lock(session)()
	if _, err := s.carts.Remove(ctx, session, key); err != nil {
		return nil, err
	}
	return s.Summary(ctx, session)
}

// ClearCart empties the session cart
func (s *CheckoutService) ClearCart(ctx context.Context, session string) error {
	defer s.lock(session)()
	return s.carts.Clear(ctx, session)
}

// Summary prices the session cart with the active deals
func (s *CheckoutService) Summary(ctx context.Context, session string) (*models.CartSummary, error) {
	items, err := s.carts.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.price(ctx, items)
}

func (s *CheckoutService) price(ctx context.Context, items []models.CartItem) (*models.CartSummary, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	active, err := s.deals.Active(ctx)
	if err != nil {
		return nil, err
	}
	summary := s.engine.PriceCart(items, byID, active)
	return &summary, nil
}

// Checkout validates the cart and customer, decrements stock, stores the order and clears the cart.
// Missing customer details are taken from the signed-in session user.
// Stock is given back when the order cannot be stored, and the cart is kept for a retry.
func (s *CheckoutService) Checkout(ctx context.Context, session string, req models.CheckoutRequest) (*models.Order, error) {
	defer s.lock(session)()

	items, err := s.carts.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", repository.ErrValidation)
	}

	customer, err := s.customer(ctx, session, req.Customer)
	if err != nil {
		return nil, err
	}

	quantities := make(map[int]int)
	for _, it := range items {
		quantities[it.ProductID] += it.Quantity
	}

	summary, err := s.price(ctx, items)
	if err != nil {
		return nil, err
	}

	// Stock is checked and decremented in one step; nothing is written when any product is short
	if err := s.products.DecrementStock(ctx, quantities); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("cart references a deleted product: %w", repository.ErrValidation)
		}
		return nil, err
	}

	order := models.Order{
		ID:        uuid.New().String(),
		Items:     summary.Lines,
		Subtotal:  summary.Subtotal,
		Discount:  summary.Discount,
		Total:     summary.Total,
		Customer:  customer,
		CreatedAt: s.engine.Now().UTC().Format(time.RFC3339),
	}
	if err := s.orders.Append(ctx, order); err != nil {
		if rerr := s.products.RestoreStock(ctx, quantities); rerr != nil {
			log.Printf("❌ Order %s not stored and stock not restored: %v", order.ID, rerr)
		}
		return nil, fmt.Errorf("failed to store order: %w", err)
	}
	if err := s.carts.Clear(ctx, session); err != nil {
		log.Printf("⚠️  Order %s placed but cart was not cleared: %v", order.ID, err)
	}

	log.Printf("🎉 Order %s placed: %d line(s), total %s", order.ID, len(order.Items), utils.FormatPrice(order.Total))
	return &order, nil
}

func (s *CheckoutService) customer(ctx context.Context, session string, c models.Customer) (models.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)

	if c.Name == "" || c.Email == "" {
		if user, err := s.users.Get(ctx, session); err == nil {
			if c.Name == "" {
				c.Name = user.Name
			}
			if c.Email == "" {
				c.Email = user.Email
			}
		}
	}

	if c.Name == "" {
		return c, fmt.Errorf("customer name is required: %w", repository.ErrValidation)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return c, fmt.Errorf("invalid customer email %q: %w", c.Email, repository.ErrValidation)
	}
	return c, nil
}
