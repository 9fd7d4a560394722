package repository

import (
	"context"
	"fmt"
	"log"
	"sync"

	"luxemarket/models"
	"luxemarket/storage"
)

// OrderRepository appends placed orders to luxemarket_orders
type OrderRepository struct {
	mu    sync.Mutex
	store storage.Storage
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(store storage.Storage) *OrderRepository {
	return &OrderRepository{store: store}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// List returns every order, oldest first
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *OrderRepository) load(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	found, err := storage.GetJSON(ctx, r.store, storage.KeyOrders, &orders)
	if err != nil && !found {
		log.Printf("❌ Error reading orders: %v", err)
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	if err != nil {
		// refuse to append over unreadable history
		log.Printf("❌ Stored orders are malformed: %v", err)
		return nil, fmt.Errorf("stored orders are unreadable: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Append stores a new order
func (r *OrderRepository) Append(ctx context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)
	if err := storage.SetJSON(ctx, r.store, storage.KeyOrders, orders); err != nil {
		log.Printf("❌ Error saving orders: %v", err)
		return fmt.Errorf("failed to save orders: %w", err)
	}
	log.Printf("💾 Order %s stored (%d total)", order.ID, len(orders))
	return nil
}
