package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"luxemarket/models"
	"luxemarket/repository"
)

// SyncService handles synchronization between Google Drive and the product catalog
// Implements SyncServiceInterface
type SyncService struct {
	driveService DriveServiceInterface
	products     repository.ProductRepositoryInterface
}

// NewSyncService creates a new SyncService
func NewSyncService(driveService DriveServiceInterface, products repository.ProductRepositoryInterface) *SyncService {
	return &SyncService{
		driveService: driveService,
		products:     products,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncVariantImages lists the folder and merges each image into variantImages[color] of its product.
// Existing URLs keep their position; an unknown product id is skipped, not fatal.
func (s *SyncService) SyncVariantImages(ctx context.Context, folderID string) (*models.VariantSyncResponse, error) {
	log.Printf("🔄 Starting variant image synchronization for folder: %s", folderID)

	assets, err := s.driveService.ListVariantImages(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variant images from Drive: %w", err)
	}

	log.Printf("📦 Processing %d variant images from Google Drive", len(assets))
	stats := &models.VariantSyncResponse{Total: len(assets)}

	for _, asset := range assets {
		inserted, err := s.products.MergeVariantImages(ctx, asset.ProductID, asset.Color, []string{asset.ImageURL})
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⏭️  Skipping %s: product %d does not exist", asset.FileName, asset.ProductID)
			stats.Skipped++
			continue
		}
		if err != nil {
			log.Printf("❌ Error merging %s: %v", asset.FileName, err)
			return stats, fmt.Errorf("failed to merge %s: %w", asset.FileName, err)
		}
		if inserted == 0 {
			log.Printf("⏭️  Skipping %s (already linked)", asset.FileName)
			stats.Skipped++
			continue
		}
		log.Printf("✅ Linked %s to product %d color %q", asset.FileName, asset.ProductID, asset.Color)
		stats.Inserted++
	}

	log.Printf("🎉 Synchronization completed successfully: %d inserted, %d skipped, %d total processed", stats.Inserted, stats.Skipped, stats.Total)
	return stats, nil
}
