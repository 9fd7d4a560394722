package colors

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/disintegration/imaging"

	"luxemarket/models"
)

// MaxRasterSize bounds the swatch PNG dimensions
const MaxRasterSize = 512

// RenderPNG paints comb into a width x height PNG using the same band layout as Generate.
// Borders and rounding are left to the consumer.
func RenderPNG(comb models.ColorCombination, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 || width > MaxRasterSize || height > MaxRasterSize {
		return nil, fmt.Errorf("invalid swatch size %dx%d", width, height)
	}

	img := imaging.New(width, height, mustRGBA(EmptySwatchHex))
	if comb.IsValid && len(comb.Colors) > 0 {
		hexes := paintHexes(comb.Colors)
		fills := make([]color.NRGBA, len(hexes))
		for i, hex := range hexes {
			fills[i] = mustRGBA(hex)
		}
		mode := EffectiveMode(comb.Mode, len(hexes), models.ModeSplitVertical)
		paint(img, mode, fills)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}
	return buf.Bytes(), nil
}

func paint(img *image.NRGBA, mode models.DisplayMode, fills []color.NRGBA) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	n := len(fills)
	grid := 4
	if n > grid {
		grid = n
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// normalized pixel center in [0,1)
			u := (float64(x) + 0.5) / w
			v := (float64(y) + 0.5) / h

			var c color.NRGBA
			switch mode {
			case models.ModeSingle:
				c = fills[0]
			case models.ModeSplitVertical:
				c = fills[band(u, n)]
			case models.ModeSplitHorizontal:
				c = fills[band(v, n)]
			case models.ModeSplitDiagonal:
				c = fills[band((u+v)/2, n)]
			case models.ModeGradientLinear:
				c = blend(fills, u)
			case models.ModeGradientRadial:
				// "circle" reaches the farthest side: distance 0.5 from the center
				c = blend(fills, math.Min(1, math.Hypot(u-0.5, v-0.5)/0.5))
			case models.ModeCheckerboard:
				c = fills[(band(v, grid)+band(u, grid))%n]
			default:
				c = fills[0]
			}
			img.SetNRGBA(x, y, c)
		}
	}
}

func band(t float64, n int) int {
	i := int(t * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// blend interpolates evenly spaced stops at position t in [0,1]
func blend(fills []color.NRGBA, t float64) color.NRGBA {
	if len(fills) == 1 {
		return fills[0]
	}
	pos := t * float64(len(fills)-1)
	i := int(pos)
	if i >= len(fills)-1 {
		return fills[len(fills)-1]
	}
	f := pos - float64(i)
	a, b := fills[i], fills[i+1]
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// mustRGBA converts a canonical #RRGGBB; callers only pass values from CanonicalHex
func mustRGBA(hex string) color.NRGBA {
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
