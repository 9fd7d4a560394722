package models

// Product represents a catalog entry as persisted under luxemarket_products
type Product struct {
	ID            int                 `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	Price         float64             `json:"price"`
	Category      string              `json:"category"`
	Image         string              `json:"image,omitempty"`
	Images        []string            `json:"images"`
	Colors        []ColorSpec         `json:"colors"`
	Sizes         []string            `json:"sizes"`
	VariantImages map[string][]string `json:"variantImages"`
	IsDailyDeal   bool                `json:"isDailyDeal,omitempty"`
	DealPrice     *float64            `json:"dealPrice,omitempty"`
	Stock         int                 `json:"stock"`
}

// ProductInput is used for creating/updating products from the admin console
type ProductInput struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Price         *float64            `json:"price"`
	Category      string              `json:"category"`
	Image         string              `json:"image"`
	Images        []string            `json:"images"`
	Colors        []ColorSpec         `json:"colors"`
	Sizes         []string            `json:"sizes"`
	VariantImages map[string][]string `json:"variantImages"`
	Stock         int                 `json:"stock"`
}

// ProductFilter mirrors the storefront query parameters (?category=, ?filter=deals, ?search=)
type ProductFilter struct {
	Category  string
	DealsOnly bool
	Search    string
}

// DailyDeal represents a discount overlay stored under luxemarket_daily_deals
type DailyDeal struct {
	ProductID       int     `json:"productId"`
	DiscountPercent float64 `json:"discountPercent"`
	AddedDate       string  `json:"addedDate"` // RFC3339
}

// AddDealRequest represents the request body for putting a product on deal
// Example: {"productId": 3, "discountPercent": 20}
type AddDealRequest struct {
	ProductID       int     `json:"productId"`
	DiscountPercent float64 `json:"discountPercent"`
}

// HomepageOrderRequest represents the drag-and-drop order submitted by the admin
type HomepageOrderRequest struct {
	ProductIDs []int `json:"productIds"`
}

// VariantImageAsset is a variant image discovered in Google Drive
type VariantImageAsset struct {
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	ProductID   int    `json:"productId"`
	Color       string `json:"color"`
	ImageURL    string `json:"imageUrl"`
}

// VariantSyncResponse summarizes a variant image synchronization
type VariantSyncResponse struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// VariantDownloadResponse summarizes mirroring Drive variant images to local storage
type VariantDownloadResponse struct {
	Total      int      `json:"total"`
	Downloaded int      `json:"downloaded"`
	Linked     int      `json:"linked"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors"`
}

// DealView is an active deal joined with its product
type DealView struct {
	DailyDeal
	ExpiresAt string  `json:"expiresAt"` // RFC3339
	Product   Product `json:"product"`
}
