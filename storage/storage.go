package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Storage is the key-value port every manager persists through.
// Values are JSON documents stored as strings, mirroring browser localStorage.
type Storage interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// Persisted keys
const (
	KeyProducts      = "luxemarket_products"
	KeyCategories    = "luxemarket_categories"
	KeyDailyDeals    = "luxemarket_daily_deals"
	KeyHomepageOrder = "luxemarket_homepage_order"
	KeyWatchlist     = "luxemarket_watchlist"
	KeyUser          = "luxemarket_user"
	KeyColorPresets  = "luxemarket_color_presets"
	KeyCart          = "luxemarket_cart"
	KeyOrders        = "luxemarket_orders"
)

// GetJSON decodes the value stored under key into out.
// Returns false without touching out when the key is absent.
func GetJSON(ctx context.Context, s Storage, key string, out interface{}) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, s Storage, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
