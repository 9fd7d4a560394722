package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"luxemarket/colors"
	"luxemarket/events"
	"luxemarket/models"
	"luxemarket/storage"
)

// PresetRepository persists saved color combinations under luxemarket_color_presets
// and keeps the parser and resolver primed with what they teach
type PresetRepository struct {
	mu       sync.Mutex
	store    storage.Storage
	parser   *colors.Parser
	resolver *colors.Resolver
	bus      events.Publisher
	now      func() time.Time
}

// NewPresetRepository creates a new PresetRepository
func NewPresetRepository(store storage.Storage, parser *colors.Parser, resolver *colors.Resolver, bus events.Publisher) *PresetRepository {
	if bus == nil {
		bus = events.NopPublisher{}
	}
	return &PresetRepository{store: store, parser: parser, resolver: resolver, bus: bus, now: time.Now}
}

// Ensure PresetRepository implements PresetRepositoryInterface
var _ PresetRepositoryInterface = (*PresetRepository)(nil)

// List returns saved presets in creation order
func (r *PresetRepository) List(ctx context.Context) ([]models.ColorPreset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *PresetRepository) load(ctx context.Context) ([]models.ColorPreset, error) {
	var presets []models.ColorPreset
	found, err := storage.GetJSON(ctx, r.store, storage.KeyColorPresets, &presets)
	if err != nil && !found {
		log.Printf("❌ Error reading color presets: %v", err)
		return nil, fmt.Errorf("failed to read color presets: %w", err)
	}
	if err != nil {
		log.Printf("⚠️  Stored color presets are malformed, ignoring: %v", err)
		return []models.ColorPreset{}, nil
	}
	if presets == nil {
		presets = []models.ColorPreset{}
	}
	return presets, nil
}

func (r *PresetRepository) save(ctx context.Context, presets []models.ColorPreset) error {
	if err := storage.SetJSON(ctx, r.store, storage.KeyColorPresets, presets); err != nil {
		log.Printf("❌ Error saving color presets: %v", err)
		return fmt.Errorf("failed to save color presets: %w", err)
	}
	return nil
}

// Save parses req.Value and stores it as a preset. Saving a combination that already has a
// preset (same normalized name) updates its mode and colors instead of adding a second one.
func (r *PresetRepository) Save(ctx context.Context, req models.SavePresetRequest) (*models.ColorPreset, error) {
	if req.Mode != "" && !req.Mode.IsValid() {
		return nil, fmt.Errorf("unknown display mode %q: %w", req.Mode, ErrValidation)
	}

	comb := r.parser.ParseWithMode(req.Value, req.Mode)
	if !comb.IsValid {
		return nil, fmt.Errorf("color combination %q has no colors: %w", req.Value, ErrValidation)
	}

	if strings.TrimSpace(req.Hex) != "" {
		if len(comb.Colors) != 1 {
			return nil, fmt.Errorf("hex can only name a single color: %w", ErrValidation)
		}
		hex, ok := colors.CanonicalHex(req.Hex)
		if !ok {
			return nil, fmt.Errorf("invalid hex %q: %w", req.Hex, ErrValidation)
		}
		comb.Colors[0].Hex = hex
	}

	name := colors.Normalize(req.Value)

	r.mu.Lock()
	presets, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}

	var saved models.ColorPreset
	idx := -1
	for i, p := range presets {
		if p.Name == name {
			idx = i
			break
		}
	}
	if idx >= 0 {
		presets[idx].Mode = comb.Mode
		presets[idx].Colors = comb.Colors
		saved = presets[idx]
	} else {
		saved = models.ColorPreset{
			ID:        uuid.New().String(),
			Name:      name,
			Mode:      comb.Mode,
			Colors:    comb.Colors,
			CreatedAt: r.now().UTC().Format(time.RFC3339),
		}
		presets = append(presets, saved)
	}

	if err := r.save(ctx, presets); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	r.teach(saved)
	log.Printf("🎨 Color preset saved: %s (%s)", saved.Name, saved.Mode)
	r.bus.Publish(events.Event{Topic: events.AdminUpdate, Detail: map[string]interface{}{"entity": "preset", "action": "save", "id": saved.ID}})
	return &saved, nil
}

// Delete removes a preset, forgetting its remembered mode or its custom color name
func (r *PresetRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	presets, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	idx := -1
	for i, p := range presets {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("preset %s: %w", id, ErrNotFound)
	}
	removed := presets[idx]
	presets = append(presets[:idx], presets[idx+1:]...)
	if err := r.save(ctx, presets); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	r.parser.Forget(removed.Name)
	if len(removed.Colors) == 1 {
		r.resolver.Unlearn(removed.Colors[0].Name)
	}
	log.Printf("🗑️  Color preset deleted: %s", removed.Name)
	r.bus.Publish(events.Event{Topic: events.AdminUpdate, Detail: map[string]interface{}{"entity": "preset", "action": "delete", "id": id}})
	return nil
}

// Load primes the parser with remembered modes and the resolver with custom color names
func (r *PresetRepository) Load(ctx context.Context) error {
	presets, err := r.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range presets {
		r.teach(p)
	}
	log.Printf("✓ Loaded %d color preset(s)", len(presets))
	return nil
}

func (r *PresetRepository) teach(p models.ColorPreset) {
	if len(p.Colors) > 1 {
		r.parser.Remember(p.Name, p.Mode)
		return
	}
	if len(p.Colors) == 1 {
		c := p.Colors[0]
		if _, isHex := colors.CanonicalHex(c.Name); isHex || c.Hex == models.DefaultColorHex {
			return
		}
		// Learn refuses static table names and updates a custom name already learned
		r.resolver.Learn(c.Name, c.Hex)
	}
}
