package repository

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"luxemarket/events"
	"luxemarket/models"
	"luxemarket/storage"
)

// HomepageRepository persists the admin-chosen product order under luxemarket_homepage_order
type HomepageRepository struct {
	mu    sync.Mutex
	store storage.Storage
	bus   events.Publisher
}

// NewHomepageRepository creates a new HomepageRepository
func NewHomepageRepository(store storage.Storage, bus events.Publisher) *HomepageRepository {
	if bus == nil {
		bus = events.NopPublisher{}
	}
	return &HomepageRepository{store: store, bus: bus}
}

// Ensure HomepageRepository implements HomepageRepositoryInterface
var _ HomepageRepositoryInterface = (*HomepageRepository)(nil)

// Get returns the stored order; empty when none is set or the stored value is unreadable
func (r *HomepageRepository) Get(ctx context.Context) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []int
	found, err := storage.GetJSON(ctx, r.store, storage.KeyHomepageOrder, &ids)
	if err != nil && !found {
		log.Printf("❌ Error reading homepage order: %v", err)
		return nil, fmt.Errorf("failed to read homepage order: %w", err)
	}
	if err != nil {
		log.Printf("⚠️  Stored homepage order is malformed, ignoring: %v", err)
		return []int{}, nil
	}
	return normalizeIDs(ids), nil
}

// Set stores ids after dropping duplicates and non-positive values
func (r *HomepageRepository) Set(ctx context.Context, ids []int) ([]int, error) {
	ids = normalizeIDs(ids)

	r.mu.Lock()
	if err := storage.SetJSON(ctx, r.store, storage.KeyHomepageOrder, ids); err != nil {
		r.mu.Unlock()
		log.Printf("❌ Error saving homepage order: %v", err)
		return nil, fmt.Errorf("failed to save homepage order: %w", err)
	}
	r.mu.Unlock()

	log.Printf("✓ Homepage order saved: %d product(s)", len(ids))
	r.bus.Publish(events.Event{Topic: events.AdminUpdate, Detail: map[string]interface{}{"entity": "homepage", "action": "update"}})
	return ids, nil
}

// OrderProducts lists products named in ids first, in that order, followed by the rest by id.
// Ids that no longer match a product are skipped.
func OrderProducts(products []models.Product, ids []int) []models.Product {
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]models.Product, 0, len(products))
	placed := make(map[int]bool, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && !placed[id] {
			out = append(out, p)
			placed[id] = true
		}
	}

	rest := make([]models.Product, 0, len(products)-len(out))
	for _, p := range products {
		if !placed[p.ID] {
			rest = append(rest, p)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].ID < rest[j].ID })
	return append(out, rest...)
}

func normalizeIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
