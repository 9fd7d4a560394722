package colors

import (
	"strings"
	"sync"

	"luxemarket/models"
)

// Delimiter separates color names in a combination string
const Delimiter = "/"

// Parser turns "black/orange/navy" strings into ColorCombinations.
// It remembers the display mode last associated with each combination name.
type Parser struct {
	resolver *Resolver
	mu       sync.RWMutex
	modes    map[string]models.DisplayMode
}

// NewParser creates a Parser resolving hex values through resolver
func NewParser(resolver *Resolver) *Parser {
	return &Parser{
		resolver: resolver,
		modes:    make(map[string]models.DisplayMode),
	}
}

// Parse splits raw on "/", drops empty segments and resolves each remaining name.
// Order and duplicates are preserved: "red/red" yields two colors.
func (p *Parser) Parse(raw string) models.ColorCombination {
	names := segments(raw)
	if len(names) == 0 {
		return models.ColorCombination{Colors: []models.ColorSpec{}, Mode: models.ModeSingle, IsValid: false}
	}

	specs := make([]models.ColorSpec, len(names))
	for i, name := range names {
		specs[i] = models.ColorSpec{Name: name, Hex: p.resolver.Resolve(name)}
	}

	return models.ColorCombination{
		Colors:  specs,
		Mode:    p.defaultMode(names),
		IsValid: true,
	}
}

// ParseWithMode parses raw and applies an explicit mode.
// Multi-color modes fall back to single for one color; single falls back
// to the combination default when there are several colors.
func (p *Parser) ParseWithMode(raw string, mode models.DisplayMode) models.ColorCombination {
	comb := p.Parse(raw)
	if !comb.IsValid || mode == "" || !mode.IsValid() {
		return comb
	}
	comb.Mode = EffectiveMode(mode, len(comb.Colors), comb.Mode)
	return comb
}

// Remember associates mode with the combination name so later parses default to it
func (p *Parser) Remember(raw string, mode models.DisplayMode) {
	key := Normalize(raw)
	if key == "" || !mode.IsValid() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modes[key] = mode
}

// Forget drops a remembered mode
func (p *Parser) Forget(raw string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.modes, Normalize(raw))
}

func (p *Parser) defaultMode(names []string) models.DisplayMode {
	if len(names) == 1 {
		return models.ModeSingle
	}
	p.mu.RLock()
	mode, ok := p.modes[strings.ToLower(strings.Join(names, Delimiter))]
	p.mu.RUnlock()
	if ok && mode.RequiresMultiple() {
		return mode
	}
	return models.ModeSplitVertical
}

// EffectiveMode applies the DisplayMode invariants to a requested mode
func EffectiveMode(requested models.DisplayMode, colorCount int, fallback models.DisplayMode) models.DisplayMode {
	if colorCount < 2 {
		return models.ModeSingle
	}
	if requested == models.ModeSingle || !requested.IsValid() {
		if fallback.RequiresMultiple() {
			return fallback
		}
		return models.ModeSplitVertical
	}
	return requested
}

// Normalize returns the canonical key of a combination: lowercase trimmed names joined by "/"
func Normalize(raw string) string {
	return strings.ToLower(strings.Join(segments(raw), Delimiter))
}

// Join builds a combination string from color specs
func Join(specs []models.ColorSpec) string {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		if n := strings.TrimSpace(s.Name); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, Delimiter)
}

func segments(raw string) []string {
	parts := strings.Split(raw, Delimiter)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
