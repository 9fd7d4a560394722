package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // decode PNG uploads
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	imageQuality = 75
	maxImageSize = 800 // Max dimension
)

// ErrInvalidImage marks upload bytes that are not a decodable PNG or JPEG
var ErrInvalidImage = errors.New("invalid image")

// OptimizeImage decodes an uploaded image (PNG, JPEG), fits it inside maxImageSize
// with Lanczos resampling and re-encodes it as JPEG
func OptimizeImage(imageData []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	bounds := img.Bounds()
	if bounds.Dx() > maxImageSize || bounds.Dy() > maxImageSize {
		// Fit keeps the aspect ratio
		img = imaging.Fit(img, maxImageSize, maxImageSize, imaging.Lanczos)
		log.Printf("🔄 Resized image: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), img.Bounds().Dx(), img.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(imageQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Image optimized: quality=%d, output_size=%d bytes", imageQuality, buf.Len())
	return buf.Bytes(), nil
}

// ImageStore writes optimized images under a directory served at a URL prefix
type ImageStore struct {
	dir       string
	urlPrefix string
}

// NewImageStore creates an ImageStore, e.g. NewImageStore("static/uploads", "/static/uploads")
func NewImageStore(dir, urlPrefix string) *ImageStore {
	return &ImageStore{dir: dir, urlPrefix: urlPrefix}
}

// SaveUpload optimizes an upload and stores it as <uuid>.jpg, returning its URL
func (s *ImageStore) SaveUpload(imageData []byte) (string, error) {
	optimized, err := OptimizeImage(imageData)
	if err != nil {
		return "", err
	}
	return s.write(uuid.New().String()+".jpg", optimized)
}

// Exists reports whether name is already stored
func (s *ImageStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// URL returns the public URL of a stored file
func (s *ImageStore) URL(name string) string {
	return s.urlPrefix + "/" + filepath.ToSlash(name)
}

func (s *ImageStore) write(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	log.Printf("💾 Image stored: %s", path)
	return s.URL(name), nil
}
