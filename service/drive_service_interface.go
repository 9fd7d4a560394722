package service

import (
	"context"

	"luxemarket/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListVariantImages(ctx context.Context, folderID string) ([]models.VariantImageAsset, error)
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}
