package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"luxemarket/events"
	"luxemarket/storage"
)

// WatchlistRepository persists watched product ids under luxemarket_watchlist.
// Older clients stored whole product objects; those are decoded to ids and written back.
type WatchlistRepository struct {
	mu    sync.Mutex
	store storage.Storage
	bus   events.Publisher
}

// NewWatchlistRepository creates a new WatchlistRepository
func NewWatchlistRepository(store storage.Storage, bus events.Publisher) *WatchlistRepository {
	if bus == nil {
		bus = events.NopPublisher{}
	}
	return &WatchlistRepository{store: store, bus: bus}
}

// Ensure WatchlistRepository implements WatchlistRepositoryInterface
var _ WatchlistRepositoryInterface = (*WatchlistRepository)(nil)

// watchEntry decodes a bare id or a {"id": n, ...} product object
type watchEntry struct {
	id     int
	legacy bool
}

func (w *watchEntry) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &w.id); err == nil {
		return nil
	}
	var obj struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("watchlist entry must be an id or a product: %w", err)
	}
	w.id = obj.ID
	w.legacy = true
	return nil
}

// List returns watched product ids in insertion order
func (r *WatchlistRepository) List(ctx context.Context) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *WatchlistRepository) load(ctx context.Context) ([]int, error) {
	var entries []watchEntry
	found, err := storage.GetJSON(ctx, r.store, storage.KeyWatchlist, &entries)
	if err != nil && !found {
		log.Printf("❌ Error reading watchlist: %v", err)
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}
	if err != nil {
		log.Printf("⚠️  Stored watchlist is malformed, ignoring: %v", err)
		return []int{}, nil
	}

	legacy := false
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.legacy {
			legacy = true
		}
		ids = append(ids, e.id)
	}
	normalized := normalizeIDs(ids)

	if legacy || len(normalized) != len(ids) {
		log.Printf("🔄 Migrated watchlist to %d product id(s)", len(normalized))
		if err := r.save(ctx, normalized); err != nil {
			return nil, err
		}
	}
	return normalized, nil
}

func (r *WatchlistRepository) save(ctx context.Context, ids []int) error {
	if err := storage.SetJSON(ctx, r.store, storage.KeyWatchlist, ids); err != nil {
		log.Printf("❌ Error saving watchlist: %v", err)
		return fmt.Errorf("failed to save watchlist: %w", err)
	}
	return nil
}

// Add watches a product; adding an already watched product is a no-op
func (r *WatchlistRepository) Add(ctx context.Context, productID int) ([]int, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("productId must be positive: %w", ErrValidation)
	}

	r.mu.Lock()
	ids, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	for _, id := range ids {
		if id == productID {
			r.mu.Unlock()
			return ids, nil
		}
	}
	ids = append(ids, productID)
	if err := r.save(ctx, ids); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	r.publish("add", productID)
	return ids, nil
}

// Remove stops watching a product
func (r *WatchlistRepository) Remove(ctx context.Context, productID int) ([]int, error) {
	r.mu.Lock()
	ids, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != productID {
			out = append(out, id)
		}
	}
	if len(out) == len(ids) {
		r.mu.Unlock()
		return nil, fmt.Errorf("product %d is not watched: %w", productID, ErrNotFound)
	}
	if err := r.save(ctx, out); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	r.publish("remove", productID)
	return out, nil
}

func (r *WatchlistRepository) publish(action string, productID int) {
	r.bus.Publish(events.Event{Topic: events.WatchlistUpdated, Detail: map[string]interface{}{"action": action, "productId": productID}})
}
