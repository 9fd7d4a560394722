package service

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOptimizeImageResizes(t *testing.T) {
	out, err := OptimizeImage(pngBytes(t, 1600, 400))
	if err != nil {
		t.Fatalf("OptimizeImage: %v", err)
	}
	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if format != "jpeg" {
		t.Errorf("format = %s", format)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 200 {
		t.Errorf("bounds = %v, want 800x200", b)
	}
}

func TestOptimizeImageKeepsSmallImages(t *testing.T) {
	out, err := OptimizeImage(pngBytes(t, 120, 60))
	if err != nil {
		t.Fatal(err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 120 || cfg.Height != 60 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestOptimizeImageRejectsGarbage(t *testing.T) {
	_, err := OptimizeImage([]byte("definitely not an image"))
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("err = %v, want ErrInvalidImage", err)
	}
}

func TestImageStoreSaveUpload(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir, "/static/uploads")

	url, err := store.SaveUpload(pngBytes(t, 10, 10))
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if !strings.HasPrefix(url, "/static/uploads/") || !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url = %q", url)
	}
	name := strings.TrimPrefix(url, "/static/uploads/")
	if !store.Exists(name) {
		t.Error("stored file not found")
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Error(err)
	}
}
