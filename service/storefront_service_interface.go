package service

import (
	"context"

	"luxemarket/models"
)

// StorefrontServiceInterface defines the shopper-facing read model: products carry the daily-deal overlay
type StorefrontServiceInterface interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	Homepage(ctx context.Context) ([]models.Product, error)
	Deals(ctx context.Context) ([]models.DealView, error)
	AddDeal(ctx context.Context, req models.AddDealRequest) (*models.DailyDeal, error)
	Watchlist(ctx context.Context) ([]models.Product, error)
	Watch(ctx context.Context, productID int) ([]int, error)
}
