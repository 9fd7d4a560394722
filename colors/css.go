package colors

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"luxemarket/models"
)

// EmptySwatchHex fills swatches for invalid or empty combinations
const EmptySwatchHex = "#E5E7EB"

// Options controls the size and border of a generated swatch
type Options struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	BorderRadius string `json:"borderRadius"` // CSS length, e.g. "50%" or "4px"
	BorderWidth  int    `json:"borderWidth"`  // 0 draws no border
	BorderColor  string `json:"borderColor"`
}

// DefaultOptions returns a 40x40 round swatch with a thin light border
func DefaultOptions() Options {
	return Options{Width: 40, Height: 40, BorderRadius: "50%", BorderWidth: 1, BorderColor: EmptySwatchHex}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if strings.TrimSpace(o.BorderRadius) == "" {
		o.BorderRadius = d.BorderRadius
	}
	if o.BorderWidth < 0 {
		o.BorderWidth = 0
	}
	if hex, ok := CanonicalHex(o.BorderColor); ok {
		o.BorderColor = hex
	} else {
		o.BorderColor = d.BorderColor
	}
	return o
}

// Visual is the paintable description of a swatch
type Visual struct {
	Style     map[string]string `json:"style"`
	ClassName string            `json:"className"`
	InnerHTML string            `json:"innerHTML,omitempty"`
}

// CSS renders Style as declarations sorted by property name
func (v Visual) CSS() string {
	keys := make([]string, 0, len(v.Style))
	for k := range v.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v.Style[k])
		b.WriteByte(';')
	}
	return b.String()
}

// Generate produces the visual for comb. It is a pure function of its inputs.
func Generate(comb models.ColorCombination, opts Options) Visual {
	opts = opts.withDefaults()
	style := baseStyle(opts)

	if !comb.IsValid || len(comb.Colors) == 0 {
		style["background-color"] = EmptySwatchHex
		return Visual{Style: style, ClassName: className("empty")}
	}

	hexes := paintHexes(comb.Colors)
	mode := EffectiveMode(comb.Mode, len(hexes), models.ModeSplitVertical)

	visual := Visual{Style: style, ClassName: className(string(mode))}
	switch mode {
	case models.ModeSingle:
		style["background-color"] = hexes[0]
	case models.ModeSplitVertical:
		style["background"] = "linear-gradient(to right, " + hardStops(hexes) + ")"
	case models.ModeSplitHorizontal:
		style["background"] = "linear-gradient(to bottom, " + hardStops(hexes) + ")"
	case models.ModeGradientLinear:
		style["background"] = "linear-gradient(to right, " + smoothStops(hexes) + ")"
	case models.ModeGradientRadial:
		style["background"] = "radial-gradient(circle, " + smoothStops(hexes) + ")"
	case models.ModeSplitDiagonal:
		visual.InnerHTML = diagonalSVG(hexes, opts)
	case models.ModeCheckerboard:
		visual.InnerHTML = checkerboardSVG(hexes, opts)
	}
	return visual
}

func baseStyle(opts Options) map[string]string {
	border := "none"
	if opts.BorderWidth > 0 {
		border = fmt.Sprintf("%dpx solid %s", opts.BorderWidth, opts.BorderColor)
	}
	return map[string]string{
		"width":         fmt.Sprintf("%dpx", opts.Width),
		"height":        fmt.Sprintf("%dpx", opts.Height),
		"border-radius": opts.BorderRadius,
		"border":        border,
		"box-sizing":    "border-box",
		"display":       "inline-block",
		"overflow":      "hidden",
	}
}

func className(suffix string) string {
	return "color-swatch color-swatch--" + suffix
}

// paintHexes returns a canonical hex for every color, defaulting malformed values
func paintHexes(specs []models.ColorSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		if hex, ok := CanonicalHex(s.Hex); ok {
			out[i] = hex
		} else {
			out[i] = models.DefaultColorHex
		}
	}
	return out
}

// hardStops builds N equal bands with no blending between them
func hardStops(hexes []string) string {
	n := float64(len(hexes))
	stops := make([]string, 0, len(hexes)*2)
	for i, hex := range hexes {
		start := float64(i) * 100 / n
		end := float64(i+1) * 100 / n
		stops = append(stops, hex+" "+percent(start), hex+" "+percent(end))
	}
	return strings.Join(stops, ", ")
}

// smoothStops distributes stops evenly from 0% to 100%
func smoothStops(hexes []string) string {
	last := float64(len(hexes) - 1)
	stops := make([]string, len(hexes))
	for i, hex := range hexes {
		stops[i] = hex + " " + percent(float64(i)*100/last)
	}
	return strings.Join(stops, ", ")
}

func percent(v float64) string {
	return number(v) + "%"
}

// number formats v with at most two decimals and no trailing zeros
func number(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func svgOpen(opts Options, extra string) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 100 100" preserveAspectRatio="none"%s>`,
		opts.Width, opts.Height, extra)
}

// diagonalSVG cuts the 100x100 box into bands along x+y, first color at the top-left corner
func diagonalSVG(hexes []string, opts Options) string {
	var b strings.Builder
	b.WriteString(svgOpen(opts, ""))

	n := float64(len(hexes))
	for i, hex := range hexes {
		lo := 200 * float64(i) / n
		hi := 200 * float64(i+1) / n
		poly := bandPolygon(lo, hi)
		pts := make([]string, len(poly))
		for j, p := range poly {
			pts[j] = number(p.x) + "," + number(p.y)
		}
		fmt.Fprintf(&b, `<polygon points="%s" fill="%s"/>`, strings.Join(pts, " "), hex)
	}

	b.WriteString("</svg>")
	return b.String()
}

// checkerboardSVG tiles the box with a grid, cell color index (row+col) mod N
func checkerboardSVG(hexes []string, opts Options) string {
	grid := 4
	if len(hexes) > grid {
		grid = len(hexes)
	}
	cell := 100 / float64(grid)

	var b strings.Builder
	b.WriteString(svgOpen(opts, ` shape-rendering="crispEdges"`))
	for row := 0; row < grid; row++ {
		for col := 0; col < grid; col++ {
			fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
				number(float64(col)*cell), number(float64(row)*cell), number(cell), number(cell),
				hexes[(row+col)%len(hexes)])
		}
	}
	b.WriteString("</svg>")
	return b.String()
}

type point struct{ x, y float64 }

// bandPolygon clips the 100x100 square to lo <= x+y <= hi
func bandPolygon(lo, hi float64) []point {
	square := []point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	poly := clip(square, func(p point) float64 { return p.x + p.y - lo })
	poly = clip(poly, func(p point) float64 { return hi - (p.x + p.y) })
	return dedupe(poly)
}

// clip keeps the part of poly where f >= 0 (Sutherland-Hodgman against one half-plane)
func clip(poly []point, f func(point) float64) []point {
	if len(poly) == 0 {
		return poly
	}
	out := make([]point, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		fp, fc := f(prev), f(cur)
		if fc >= 0 {
			if fp < 0 {
				out = append(out, intersect(prev, cur, fp, fc))
			}
			out = append(out, cur)
		} else if fp >= 0 {
			out = append(out, intersect(prev, cur, fp, fc))
		}
		prev = cur
	}
	return out
}

func intersect(a, b point, fa, fb float64) point {
	t := fa / (fa - fb)
	return point{a.x + t*(b.x-a.x), a.y + t*(b.y-a.y)}
}

func dedupe(poly []point) []point {
	out := make([]point, 0, len(poly))
	for _, p := range poly {
		if len(out) > 0 && samePoint(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func samePoint(a, b point) bool {
	return math.Abs(a.x-b.x) < 1e-9 && math.Abs(a.y-b.y) < 1e-9
}
