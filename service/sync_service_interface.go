package service

import (
	"context"

	"luxemarket/models"
)

// SyncServiceInterface defines the contract for synchronization operations
type SyncServiceInterface interface {
	// SyncVariantImages merges Drive variant images into product variantImages and returns stats:
	// inserted = new URLs added, skipped = already present or unknown product, total = images seen in Drive.
	SyncVariantImages(ctx context.Context, folderID string) (*models.VariantSyncResponse, error)
}
