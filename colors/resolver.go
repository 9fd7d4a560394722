package colors

import (
	"strings"
	"sync"

	"luxemarket/models"
	"luxemarket/utils"
)

// MaxSuggestions caps the number of names returned by Suggest
const MaxSuggestions = 8

type namedColor struct {
	name string
	hex  string
}

// knownColors is ordered: Suggest returns matches in this order
var knownColors = []namedColor{
	{"black", "#000000"},
	{"white", "#FFFFFF"},
	{"gray", "#808080"},
	{"grey", "#808080"},
	{"red", "#DC2626"},
	{"pink", "#EC4899"},
	{"orange", "#F97316"},
	{"yellow", "#FACC15"},
	{"green", "#16A34A"},
	{"blue", "#2563EB"},
	{"purple", "#7C3AED"},
	{"brown", "#92400E"},
	{"gold", "#FFD700"},
	{"navy", "#1E3A8A"},
	{"silver", "#C0C0C0"},
	{"tan", "#D2B48C"},
	{"rose gold", "#B76E79"},
	{"charcoal", "#36454F"},
	{"beige", "#F5F5DC"},
	{"cream", "#FFFDD0"},
	{"ivory", "#FFFFF0"},
	{"maroon", "#800000"},
	{"burgundy", "#800020"},
	{"teal", "#0D9488"},
	{"turquoise", "#40E0D0"},
	{"olive", "#808000"},
	{"khaki", "#C3B091"},
	{"coral", "#FF7F50"},
	{"lavender", "#E6E6FA"},
	{"mint", "#98FF98"},
	{"champagne", "#F7E7CE"},
	{"bronze", "#CD7F32"},
	{"copper", "#B87333"},
	{"camel", "#C19A6B"},
	{"nude", "#E3BC9A"},
}

// Resolver maps free-text color names to hex values.
// Custom names learned from saved presets are consulted after the static table.
type Resolver struct {
	mu      sync.RWMutex
	table   map[string]string
	learned []namedColor
	index   map[string]int // lowercase name -> position in learned
}

// NewResolver creates a Resolver seeded with the static color table
func NewResolver() *Resolver {
	table := make(map[string]string, len(knownColors))
	for _, c := range knownColors {
		table[c.name] = c.hex
	}
	return &Resolver{
		table: table,
		index: make(map[string]int),
	}
}

// Resolve returns the canonical #RRGGBB for name, or DefaultColorHex when unknown.
// A literal hex code is accepted and canonicalized.
func (r *Resolver) Resolve(name string) string {
	hex, _ := r.Lookup(name)
	return hex
}

// Lookup is Resolve that also reports whether the name was actually known
func (r *Resolver) Lookup(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return models.DefaultColorHex, false
	}

	if hex, ok := r.table[key]; ok {
		return hex, true
	}

	r.mu.RLock()
	pos, ok := r.index[key]
	var hex string
	if ok {
		hex = r.learned[pos].hex
	}
	r.mu.RUnlock()
	if ok {
		return hex, true
	}

	if canonical, ok := CanonicalHex(key); ok {
		return canonical, true
	}
	return models.DefaultColorHex, false
}

// IsValidName reports whether name can label a color.
// Any non-empty name is nameable, mapped or not.
func (r *Resolver) IsValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// Suggest returns up to MaxSuggestions known names containing partial, case-insensitively
func (r *Resolver) Suggest(partial string) []string {
	needle := strings.ToLower(strings.TrimSpace(partial))
	if needle == "" {
		return []string{}
	}

	out := make([]string, 0, MaxSuggestions)
	for _, c := range knownColors {
		if strings.Contains(c.name, needle) {
			out = append(out, c.name)
			if len(out) == MaxSuggestions {
				return out
			}
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.learned {
		if strings.Contains(strings.ToLower(c.name), needle) {
			out = append(out, c.name)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}

// Learn registers a custom color name. Static table entries cannot be overridden;
// learning an existing custom name updates its hex.
func (r *Resolver) Learn(name, hex string) bool {
	name = strings.TrimSpace(name)
	key := strings.ToLower(name)
	canonical, ok := CanonicalHex(hex)
	if key == "" || !ok {
		return false
	}
	if _, builtin := r.table[key]; builtin {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if pos, exists := r.index[key]; exists {
		r.learned[pos].hex = canonical
		return true
	}
	r.index[key] = len(r.learned)
	r.learned = append(r.learned, namedColor{name: name, hex: canonical})
	return true
}

// Unlearn drops a custom color name. Static table entries are never removed.
func (r *Resolver) Unlearn(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))

	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.index[key]
	if !ok {
		return false
	}
	r.learned = append(r.learned[:pos], r.learned[pos+1:]...)
	delete(r.index, key)
	for i := pos; i < len(r.learned); i++ {
		r.index[strings.ToLower(r.learned[i].name)] = i
	}
	return true
}

// CanonicalHex normalizes #RGB / #RRGGBB to uppercase #RRGGBB
func CanonicalHex(value string) (string, bool) {
	return utils.NormalizeHex(value)
}
