package service

import (
	"context"

	"luxemarket/models"
)

// CheckoutServiceInterface defines the contract for session carts and order placement
type CheckoutServiceInterface interface {
	AddToCart(ctx context.Context, session string, req models.AddToCartRequest) (*models.CartSummary, error)
	UpdateCartItem(ctx context.Context, session string, req models.UpdateCartItemRequest) (*models.CartSummary, error)
	RemoveCartItem(ctx context.Context, session string, key models.CartLineKey) (*models.CartSummary, error)
	ClearCart(ctx context.Context, session string) error
	Summary(ctx context.Context, session string) (*models.CartSummary, error)
	Checkout(ctx context.Context, session string, req models.CheckoutRequest) (*models.Order, error)
}
