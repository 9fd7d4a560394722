package repository

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"luxemarket/events"
	"luxemarket/models"
	"luxemarket/pricing"
	"luxemarket/storage"
)

// DealRepository persists daily deals under luxemarket_daily_deals.
// Expired deals are ignored and pruned the next time the list is read.
type DealRepository struct {
	mu     sync.Mutex
	store  storage.Storage
	engine *pricing.Engine
	bus    events.Publisher
}

// NewDealRepository creates a new DealRepository
func NewDealRepository(store storage.Storage, engine *pricing.Engine, bus events.Publisher) *DealRepository {
	if bus == nil {
		bus = events.NopPublisher{}
	}
	return &DealRepository{store: store, engine: engine, bus: bus}
}

// Ensure DealRepository implements DealRepositoryInterface
var _ DealRepositoryInterface = (*DealRepository)(nil)

// List returns the active deals
func (r *DealRepository) List(ctx context.Context) ([]models.DailyDeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *DealRepository) load(ctx context.Context) ([]models.DailyDeal, error) {
	var deals []models.DailyDeal
	found, err := storage.GetJSON(ctx, r.store, storage.KeyDailyDeals, &deals)
	if err != nil && !found {
		log.Printf("❌ Error reading daily deals: %v", err)
		return nil, fmt.Errorf("failed to read daily deals: %w", err)
	}
	if err != nil {
		log.Printf("⚠️  Stored daily deals are malformed, ignoring: %v", err)
		return []models.DailyDeal{}, nil
	}

	active := make([]models.DailyDeal, 0, len(deals))
	for _, d := range deals {
		if r.engine.IsActive(d) {
			active = append(active, d)
		}
	}
	if pruned := len(deals) - len(active); pruned > 0 {
		log.Printf("🔄 Pruning %d expired daily deal(s)", pruned)
		if err := r.save(ctx, active); err != nil {
			return nil, err
		}
		r.bus.Publish(events.Event{Topic: events.AdminUpdate, Detail: map[string]interface{}{"entity": "deal", "action": "expire", "count": pruned}})
	}
	return active, nil
}

func (r *DealRepository) save(ctx context.Context, deals []models.DailyDeal) error {
	if err := storage.SetJSON(ctx, r.store, storage.KeyDailyDeals, deals); err != nil {
		log.Printf("❌ Error saving daily deals: %v", err)
		return fmt.Errorf("failed to save daily deals: %w", err)
	}
	return nil
}

// Active returns active deals keyed by product id
func (r *DealRepository) Active(ctx context.Context) (map[int]models.DailyDeal, error) {
	deals, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int]models.DailyDeal, len(deals))
	for _, d := range deals {
		out[d.ProductID] = d
	}
	return out, nil
}

// Add puts a product on deal, replacing any existing deal for it and restarting its window
func (r *DealRepository) Add(ctx context.Context, productID int, discountPercent float64) (*models.DailyDeal, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("productId must be positive: %w", ErrValidation)
	}
	if discountPercent <= 0 || discountPercent >= 100 {
		return nil, fmt.Errorf("discountPercent must be between 0 and 100: %w", ErrValidation)
	}

	deal := models.DailyDeal{
		ProductID:       productID,
		DiscountPercent: discountPercent,
		AddedDate:       r.engine.Now().UTC().Format(time.RFC3339),
	}

	r.mu.Lock()
	deals, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	out := make([]models.DailyDeal, 0, len(deals)+1)
	for _, d := range deals {
		if d.ProductID != productID {
			out = append(out, d)
		}
	}
	out = append(out, deal)
	if err := r.save(ctx, out); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	log.Printf("✓ Daily deal added: product=%d discount=%.2f%%", productID, discountPercent)
	r.bus.Publish(events.Event{Topic: events.AdminUpdate, Detail: map[string]interface{}{"entity": "deal", "action": "create", "productId": productID}})
	return &deal, nil
}

// Remove takes a product off deal
func (r *DealRepository) Remove(ctx context.Context, productID int) error {
	r.mu.Lock()
	deals, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	out := make([]models.DailyDeal, 0, len(deals))
	for _, d := range deals {
		if d.ProductID != productID {
			out = append(out, d)
		}
	}
	if len(out) == len(deals) {
		r.mu.Unlock()
		return fmt.Errorf("deal for product %d: %w", productID, ErrNotFound)
	}
	if err := r.save(ctx, out); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	log.Printf("✓ Daily deal removed: product=%d", productID)
	r.bus.Publish(events.Event{Topic: events.AdminUpdate, Detail: map[string]interface{}{"entity": "deal", "action": "delete", "productId": productID}})
	return nil
}
