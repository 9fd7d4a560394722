package repository

import (
	"context"
	"errors"

	"luxemarket/models"
)

var (
	// ErrValidation marks rejected input; nothing was written
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing product, category, deal, preset or cart line
	ErrNotFound = errors.New("not found")
)

// HexResolver resolves a color name to a hex value
type HexResolver interface {
	Resolve(name string) string
}

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, input models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int, input models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	ImagesForColor(ctx context.Context, id int, color string) ([]string, error)
	AddImage(ctx context.Context, id int, url string) (*models.Product, error)
	MergeVariantImages(ctx context.Context, id int, color string, urls []string) (inserted int, err error)
	DecrementStock(ctx context.Context, quantities map[int]int) error
	RestoreStock(ctx context.Context, quantities map[int]int) error
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) ([]string, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}

// DealRepositoryInterface defines the contract for daily deal repository operations
type DealRepositoryInterface interface {
	List(ctx context.Context) ([]models.DailyDeal, error)
	Active(ctx context.Context) (map[int]models.DailyDeal, error)
	Add(ctx context.Context, productID int, discountPercent float64) (*models.DailyDeal, error)
	Remove(ctx context.Context, productID int) error
}

// HomepageRepositoryInterface defines the contract for homepage order operations
type HomepageRepositoryInterface interface {
	Get(ctx context.Context) ([]int, error)
	Set(ctx context.Context, ids []int) ([]int, error)
}

// WatchlistRepositoryInterface defines the contract for watchlist operations
type WatchlistRepositoryInterface interface {
	List(ctx context.Context) ([]int, error)
	Add(ctx context.Context, productID int) ([]int, error)
	Remove(ctx context.Context, productID int) ([]int, error)
}

// PresetRepositoryInterface defines the contract for color preset operations
type PresetRepositoryInterface interface {
	List(ctx context.Context) ([]models.ColorPreset, error)
	Save(ctx context.Context, req models.SavePresetRequest) (*models.ColorPreset, error)
	Delete(ctx context.Context, id string) error
	Load(ctx context.Context) error
}

// CartRepositoryInterface defines the contract for session cart operations
type CartRepositoryInterface interface {
	Get(ctx context.Context, session string) ([]models.CartItem, error)
	Add(ctx context.Context, session string, item models.CartItem) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, session string, key models.CartLineKey, quantity int) ([]models.CartItem, error)
	Remove(ctx context.Context, session string, key models.CartLineKey) ([]models.CartItem, error)
	Clear(ctx context.Context, session string) error
}

// OrderRepositoryInterface defines the contract for order persistence
type OrderRepositoryInterface interface {
	Append(ctx context.Context, order models.Order) error
	List(ctx context.Context) ([]models.Order, error)
}

// UserRepositoryInterface defines the contract for the session user
type UserRepositoryInterface interface {
	Get(ctx context.Context, session string) (*models.User, error)
	Set(ctx context.Context, session string, user models.User) (*models.User, error)
	Clear(ctx context.Context, session string) error
}
