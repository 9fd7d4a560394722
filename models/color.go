package models

// DefaultColorHex is painted for any name that cannot be resolved
const DefaultColorHex = "#374151"

// ColorSpec represents one named color with its canonical hex value
type ColorSpec struct {
	Name   string   `json:"name"`
	Hex    string   `json:"hex"`
	Images []string `json:"images,omitempty"` // Optional per-color gallery
}

// DisplayMode is the visual layout used to paint a color combination
type DisplayMode string

const (
	ModeSingle          DisplayMode = "single"
	ModeSplitVertical   DisplayMode = "split-vertical"
	ModeSplitHorizontal DisplayMode = "split-horizontal"
	ModeSplitDiagonal   DisplayMode = "split-diagonal"
	ModeGradientLinear  DisplayMode = "gradient-linear"
	ModeGradientRadial  DisplayMode = "gradient-radial"
	ModeCheckerboard    DisplayMode = "checkerboard"
)

// DisplayModes lists every mode in declaration order
var DisplayModes = []DisplayMode{
	ModeSingle,
	ModeSplitVertical,
	ModeSplitHorizontal,
	ModeSplitDiagonal,
	ModeGradientLinear,
	ModeGradientRadial,
	ModeCheckerboard,
}

// IsValid reports whether m is one of the known modes
func (m DisplayMode) IsValid() bool {
	for _, known := range DisplayModes {
		if m == known {
			return true
		}
	}
	return false
}

// RequiresMultiple reports whether m needs at least two colors
func (m DisplayMode) RequiresMultiple() bool {
	return m.IsValid() && m != ModeSingle
}

// ColorCombination is the parsed form of a "black/orange" style string
type ColorCombination struct {
	Colors  []ColorSpec `json:"colors"`
	Mode    DisplayMode `json:"mode"`
	IsValid bool        `json:"isValid"`
}

// ColorPreset is a saved combination offered back to the admin color picker
type ColorPreset struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"` // Normalized combination string, e.g. "black/orange"
	Mode      DisplayMode `json:"mode"`
	Colors    []ColorSpec `json:"colors"`
	CreatedAt string      `json:"createdAt"`
}

// SavePresetRequest represents the request body for saving a color preset
// Example: {"value": "Black / Orange", "mode": "split-diagonal"}
// Hex names a custom single color: {"value": "Midnight Plum", "hex": "#4B0082"}
type SavePresetRequest struct {
	Value string      `json:"value"`
	Mode  DisplayMode `json:"mode,omitempty"`
	Hex   string      `json:"hex,omitempty"`
}
