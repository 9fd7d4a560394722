package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"luxemarket/events"
	"luxemarket/storage"
)

// CategoryRepository persists the category set under luxemarket_categories
type CategoryRepository struct {
	mu    sync.Mutex
	store storage.Storage
	bus   events.Publisher
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(store storage.Storage, bus events.Publisher) *CategoryRepository {
	if bus == nil {
		bus = events.NopPublisher{}
	}
	return &CategoryRepository{store: store, bus: bus}
}

// Ensure CategoryRepository implements CategoryRepositoryInterface
var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)

// List returns the categories, persisting the seed set when none are stored
func (r *CategoryRepository) List(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *CategoryRepository) load(ctx context.Context) ([]string, error) {
	var categories []string
	found, err := storage.GetJSON(ctx, r.store, storage.KeyCategories, &categories)
	if err != nil && !found {
		log.Printf("❌ Error reading categories: %v", err)
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	if err != nil {
		log.Printf("⚠️  Stored categories are malformed, falling back to seed: %v", err)
		return SeedCategories(), nil
	}
	if !found {
		categories = SeedCategories()
		log.Printf("📦 No stored categories, persisting %d seed categories", len(categories))
		if err := r.save(ctx, categories); err != nil {
			return nil, err
		}
		return categories, nil
	}

	deduped := dedupeFold(categories)
	if len(deduped) != len(categories) {
		log.Printf("🔄 Removed %d duplicate categories", len(categories)-len(deduped))
		if err := r.save(ctx, deduped); err != nil {
			return nil, err
		}
	}
	return deduped, nil
}

func (r *CategoryRepository) save(ctx context.Context, categories []string) error {
	if err := storage.SetJSON(ctx, r.store, storage.KeyCategories, categories); err != nil {
		log.Printf("❌ Error saving categories: %v", err)
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// Add appends a category unless one with the same name (case-insensitive) exists
func (r *CategoryRepository) Add(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	r.mu.Lock()
	categories, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			r.mu.Unlock()
			return nil, fmt.Errorf("category %q already exists: %w", c, ErrValidation)
		}
	}
	categories = append(categories, name)
	if err := r.save(ctx, categories); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	log.Printf("✓ Category added: %s", name)
	r.bus.Publish(events.Event{Topic: events.AdminUpdate, Detail: map[string]interface{}{"entity": "category", "action": "create"}})
	return categories, nil
}

// Delete removes a category. Products referencing it are left untouched.
func (r *CategoryRepository) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	r.mu.Lock()
	categories, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	idx := -1
	for i, c := range categories {
		if strings.EqualFold(c, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	categories = append(categories[:idx], categories[idx+1:]...)
	if err := r.save(ctx, categories); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	log.Printf("✓ Category deleted: %s", name)
	r.bus.Publish(events.Event{Topic: events.AdminUpdate, Detail: map[string]interface{}{"entity": "category", "action": "delete"}})
	return nil
}

// Exists reports whether name is a known category (case-insensitive)
func (r *CategoryRepository) Exists(ctx context.Context, name string) (bool, error) {
	categories, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

// dedupeFold trims values and drops blanks and case-insensitive duplicates
func dedupeFold(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
