package controller

import (
	"net/http"
	"strconv"
	"strings"

	"luxemarket/colors"
	"luxemarket/models"
	"luxemarket/repository"
)

// ColorController handles color resolution, combination parsing, swatch rendering and presets
type ColorController struct {
	resolver *colors.Resolver
	parser   *colors.Parser
	presets  repository.PresetRepositoryInterface
}

// NewColorController creates a new ColorController
func NewColorController(resolver *colors.Resolver, parser *colors.Parser, presets repository.PresetRepositoryInterface) *ColorController {
	return &ColorController{resolver: resolver, parser: parser, presets: presets}
}

// RenderRequest represents the request body for POST /colors/render
// Example: {"value": "black/orange", "mode": "split-diagonal", "options": {"width": 24, "height": 24}}
type RenderRequest struct {
	Value   string             `json:"value"`
	Mode    models.DisplayMode `json:"mode,omitempty"`
	Options *colors.Options    `json:"options,omitempty"`
}

// RenderResponse carries the parsed combination with its paintable visual
type RenderResponse struct {
	Combination models.ColorCombination `json:"combination"`
	Visual      colors.Visual           `json:"visual"`
	CSS         string                  `json:"css"`
}

// Resolve handles GET /colors/resolve?name=navy
func (c *ColorController) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	name := r.URL.Query().Get("name")
	hex, known := c.resolver.Lookup(name)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":  strings.TrimSpace(name),
		"hex":   hex,
		"known": known,
		"valid": c.resolver.IsValidName(name),
	})
}

// Suggest handles GET /colors/suggest?q=gr
func (c *ColorController) Suggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": c.resolver.Suggest(r.URL.Query().Get("q")),
	})
}

// Parse handles GET /colors/parse?value=black/orange&mode=checkerboard
func (c *ColorController) Parse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, c.parser.ParseWithMode(q.Get("value"), models.DisplayMode(q.Get("mode"))))
}

// Render handles POST /colors/render
func (c *ColorController) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req RenderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	opts := colors.DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}
	comb := c.parser.ParseWithMode(req.Value, req.Mode)
	visual := colors.Generate(comb, opts)
	writeJSON(w, http.StatusOK, RenderResponse{Combination: comb, Visual: visual, CSS: visual.CSS()})
}

// SwatchPNG handles GET /colors/swatch.png?value=black/orange&mode=&w=64&h=64
func (c *ColorController) SwatchPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	width, height := 64, 64
	if v := q.Get("w"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "w must be an integer", http.StatusBadRequest)
			return
		}
		width = n
	}
	if v := q.Get("h"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "h must be an integer", http.StatusBadRequest)
			return
		}
		height = n
	}

	comb := c.parser.ParseWithMode(q.Get("value"), models.DisplayMode(q.Get("mode")))
	data, err := colors.RenderPNG(comb, width, height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeBytes(w, "image/png", data)
}

// Presets handles GET /colors/presets (list) and POST /colors/presets (save)
func (c *ColorController) Presets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		presets, err := c.presets.List(r.Context())
		if err != nil {
			writeError(w, "list presets", err)
			return
		}
		writeJSON(w, http.StatusOK, presets)
	case http.MethodPost:
		var req models.SavePresetRequest
		if !decodeBody(w, r, &req) {
			return
		}
		preset, err := c.presets.Save(r.Context(), req)
		if err != nil {
			writeError(w, "save preset", err)
			return
		}
		writeJSON(w, http.StatusOK, preset)
	default:
		methodNotAllowed(w)
	}
}

// DeletePreset handles DELETE /colors/presets/{id}
func (c *ColorController) DeletePreset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/colors/presets/"), "/")
	if id == "" {
		http.Error(w, "preset id is required", http.StatusBadRequest)
		return
	}
	if err := c.presets.Delete(r.Context(), id); err != nil {
		writeError(w, "delete preset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
