package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"luxemarket/events"
	"luxemarket/models"
	"luxemarket/storage"
)

// CartRepository persists one cart per session under "<session>:luxemarket_cart"
type CartRepository struct {
	mu    sync.Mutex
	store storage.Storage
	bus   events.Publisher
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(store storage.Storage, bus events.Publisher) *CartRepository {
	if bus == nil {
		bus = events.NopPublisher{}
	}
	return &CartRepository{store: store, bus: bus}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// SessionStore scopes store to one browser session
func SessionStore(store storage.Storage, session string) storage.Storage {
	return storage.NewNamespaced(store, "session:"+session)
}

// Get returns the session cart
func (r *CartRepository) Get(ctx context.Context, session string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx, session)
}

func (r *CartRepository) load(ctx context.Context, session string) ([]models.CartItem, error) {
	var items []models.CartItem
	found, err := storage.GetJSON(ctx, SessionStore(r.store, session), storage.KeyCart, &items)
	if err != nil && !found {
		log.Printf("❌ Error reading cart: %v", err)
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if err != nil {
		log.Printf("⚠️  Stored cart is malformed, starting empty: %v", err)
		return []models.CartItem{}, nil
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

func (r *CartRepository) save(ctx context.Context, session string, items []models.CartItem) error {
	if err := storage.SetJSON(ctx, SessionStore(r.store, session), storage.KeyCart, items); err != nil {
		log.Printf("❌ Error saving cart: %v", err)
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func sameLine(a, b models.CartLineKey) bool {
	return a.ProductID == b.ProductID &&
		strings.EqualFold(strings.TrimSpace(a.Color), strings.TrimSpace(b.Color)) &&
		strings.TrimSpace(a.Size) == strings.TrimSpace(b.Size)
}

// Add appends item, merging quantities into an existing line with the same product, color and size
func (r *CartRepository) Add(ctx context.Context, session string, item models.CartItem) ([]models.CartItem, error) {
	if item.ProductID <= 0 {
		return nil, fmt.Errorf("productId must be positive: %w", ErrValidation)
	}
	if item.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	r.mu.Lock()
	items, err := r.load(ctx, session)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	merged := false
	for i := range items {
		if sameLine(items[i].Key(), item.Key()) {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	if err := r.save(ctx, session, items); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	r.publish(session, items)
	return items, nil
}

// UpdateQuantity sets a line's quantity; 0 or less removes the line
func (r *CartRepository) UpdateQuantity(ctx context.Context, session string, key models.CartLineKey, quantity int) ([]models.CartItem, error) {
	r.mu.Lock()
	items, err := r.load(ctx, session)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	idx := -1
	for i := range items {
		if sameLine(items[i].Key(), key) {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return nil, fmt.Errorf("cart line for product %d: %w", key.ProductID, ErrNotFound)
	}
	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	if err := r.save(ctx, session, items); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	r.publish(session, items)
	return items, nil
}

// Remove drops a line from the cart
func (r *CartRepository) Remove(ctx context.Context, session string, key models.CartLineKey) ([]models.CartItem, error) {
	return r.UpdateQuantity(ctx, session, key, 0)
}

// Clear empties the session cart
func (r *CartRepository) Clear(ctx context.Context, session string) error {
	r.mu.Lock()
	if err := SessionStore(r.store, session).Remove(ctx, storage.KeyCart); err != nil {
		r.mu.Unlock()
		log.Printf("❌ Error clearing cart: %v", err)
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	r.mu.Unlock()

	r.publish(session, nil)
	return nil
}

func (r *CartRepository) publish(session string, items []models.CartItem) {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	r.bus.Publish(events.Event{Topic: events.CartUpdated, Detail: map[string]interface{}{"session": session, "count": count}})
}
