package service

import (
	"context"

	"luxemarket/models"
)

// DownloadServiceInterface defines the contract for mirroring Drive variant images locally
type DownloadServiceInterface interface {
	DownloadVariantImages(ctx context.Context, folderID string) (*models.VariantDownloadResponse, error)
}
