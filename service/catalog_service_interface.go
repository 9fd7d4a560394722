package service

import "context"

// CatalogServiceInterface defines the contract for the printable swatch catalog
type CatalogServiceInterface interface {
	RenderCatalogHTML(ctx context.Context) (string, error)
	GeneratePDF(ctx context.Context) ([]byte, error)
}
