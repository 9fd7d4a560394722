package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"luxemarket/models"
	"luxemarket/repository"
)

// DownloadService downloads variant images from Google Drive, optimizes them, stores them
// under the upload directory and links the local copies into the catalog
// Implements DownloadServiceInterface
type DownloadService struct {
	driveService DriveServiceInterface
	products     repository.ProductRepositoryInterface
	images       *ImageStore
}

// NewDownloadService creates a new DownloadService instance
func NewDownloadService(driveService DriveServiceInterface, products repository.ProductRepositoryInterface, images *ImageStore) *DownloadService {
	return &DownloadService{
		driveService: driveService,
		products:     products,
		images:       images,
	}
}

// Ensure DownloadService implements DownloadServiceInterface
var _ DownloadServiceInterface = (*DownloadService)(nil)

// localName maps a Drive filename to variants/<name>.jpg, since stored copies are always JPEG
func localName(fileName string) string {
	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	return path.Join("variants", base+".jpg")
}

// DownloadVariantImages mirrors every variant image in folderID.
// Files already on disk are relinked without downloading again; per-file failures are collected, not fatal.
func (ds *DownloadService) DownloadVariantImages(ctx context.Context, folderID string) (*models.VariantDownloadResponse, error) {
	log.Printf("📥 Starting download process for folder: %s", folderID)

	assets, err := ds.driveService.ListVariantImages(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variant images from Drive: %w", err)
	}

	log.Printf("📦 Found %d images to download", len(assets))
	resp := &models.VariantDownloadResponse{Total: len(assets), Errors: []string{}}
	usedNames := make(map[string]bool)

	for _, asset := range assets {
		name := localName(asset.FileName)

		if usedNames[name] {
			log.Printf("⏭️  Skipping %s (duplicate filename in this session)", name)
			resp.Skipped++
			continue
		}
		usedNames[name] = true

		var url string
		if ds.images.Exists(name) {
			url = ds.images.URL(name)
		} else {
			data, err := ds.driveService.DownloadImage(ctx, asset.DriveFileID)
			if err != nil {
				resp.Errors = append(resp.Errors, fmt.Sprintf("download %s: %v", asset.FileName, err))
				log.Printf("❌ Failed to download %s: %v", asset.FileName, err)
				continue
			}
			optimized, err := OptimizeImage(data)
			if err != nil {
				resp.Errors = append(resp.Errors, fmt.Sprintf("optimize %s: %v", asset.FileName, err))
				log.Printf("❌ Failed to optimize %s: %v", asset.FileName, err)
				continue
			}
			url, err = ds.images.write(name, optimized)
			if err != nil {
				resp.Errors = append(resp.Errors, fmt.Sprintf("save %s: %v", asset.FileName, err))
				log.Printf("❌ Failed to save %s: %v", asset.FileName, err)
				continue
			}
			resp.Downloaded++
		}

		inserted, err := ds.products.MergeVariantImages(ctx, asset.ProductID, asset.Color, []string{url})
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⏭️  %s stored but product %d does not exist", name, asset.ProductID)
			resp.Skipped++
			continue
		}
		if err != nil {
			return resp, fmt.Errorf("failed to link %s: %w", asset.FileName, err)
		}
		if inserted == 0 {
			resp.Skipped++
			continue
		}
		resp.Linked++
	}

	log.Printf("🎉 Download completed: %d downloaded, %d linked, %d skipped, %d failed out of %d total images",
		resp.Downloaded, resp.Linked, resp.Skipped, len(resp.Errors), resp.Total)
	return resp, nil
}
