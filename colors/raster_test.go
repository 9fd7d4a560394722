package colors

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"luxemarket/models"
)

func TestRenderPNGSplitVertical(t *testing.T) {
	p := NewParser(NewResolver())
	data, err := RenderPNG(p.Parse("black/white"), 20, 10)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("bounds = %v", b)
	}

	left := color.NRGBAModel.Convert(img.At(2, 5)).(color.NRGBA)
	right := color.NRGBAModel.Convert(img.At(17, 5)).(color.NRGBA)
	if left != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("left = %v", left)
	}
	if right != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("right = %v", right)
	}
}

func TestRenderPNGEmpty(t *testing.T) {
	data, err := RenderPNG(models.ColorCombination{Colors: []models.ColorSpec{}, Mode: models.ModeSingle}, 4, 4)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := color.NRGBAModel.Convert(img.At(1, 1)).(color.NRGBA)
	if got != mustRGBA(EmptySwatchHex) {
		t.Errorf("empty swatch = %v", got)
	}
}

func TestRenderPNGRejectsSize(t *testing.T) {
	p := NewParser(NewResolver())
	for _, size := range [][2]int{{0, 10}, {10, -1}, {MaxRasterSize + 1, 10}} {
		if _, err := RenderPNG(p.Parse("red"), size[0], size[1]); err == nil {
			t.Errorf("size %v accepted", size)
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	fills := []color.NRGBA{mustRGBA("#000000"), mustRGBA("#FFFFFF")}
	if got := blend(fills, 0); got != fills[0] {
		t.Errorf("blend(0) = %v", got)
	}
	if got := blend(fills, 1); got != fills[1] {
		t.Errorf("blend(1) = %v", got)
	}
	if got := blend(fills, 0.5); got.R != 128 {
		t.Errorf("blend(0.5) = %v", got)
	}
}
