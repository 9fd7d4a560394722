package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"luxemarket/colors"
	"luxemarket/events"
	"luxemarket/models"
	"luxemarket/pricing"
	"luxemarket/repository"
	"luxemarket/storage"
)

// fakeDrive serves a fixed folder listing and file contents
type fakeDrive struct {
	assets    []models.VariantImageAsset
	files     map[string][]byte
	listErr   error
	downloads int
}

func (f *fakeDrive) ListVariantImages(ctx context.Context, folderID string) ([]models.VariantImageAsset, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.assets, nil
}

func (f *fakeDrive) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	f.downloads++
	data, ok := f.files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s not found", fileID)
	}
	return data, nil
}

type fixture struct {
	ctx       context.Context
	bus       *events.Bus
	now       time.Time
	engine    *pricing.Engine
	parser    *colors.Parser
	products  *repository.ProductRepository
	deals     *repository.DealRepository
	homepage  *repository.HomepageRepository
	watchlist *repository.WatchlistRepository
	carts     *repository.CartRepository
	orders    *repository.OrderRepository
	users     *repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx: context.Background(),
		bus: events.NewBus(),
		now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	store := storage.NewMemoryStore()
	resolver := colors.NewResolver()
	f.parser = colors.NewParser(resolver)
	f.engine = pricing.NewEngine(24 * time.Hour).WithClock(func() time.Time { return f.now })

	categories := repository.NewCategoryRepository(store, f.bus)
	f.products = repository.NewProductRepository(store, categories, resolver, f.bus)
	f.deals = repository.NewDealRepository(store, f.engine, f.bus)
	f.homepage = repository.NewHomepageRepository(store, f.bus)
	f.watchlist = repository.NewWatchlistRepository(store, f.bus)
	f.carts = repository.NewCartRepository(store, f.bus)
	f.orders = repository.NewOrderRepository(store)
	f.users = repository.NewUserRepository(store)
	return f
}

func (f *fixture) storefront() *StorefrontService {
	return NewStorefrontService(f.products, f.deals, f.homepage, f.watchlist, f.engine)
}

func (f *fixture) checkout() *CheckoutService {
	return NewCheckoutService(f.products, f.deals, f.carts, f.orders, f.users, f.engine)
}

// pngBytes encodes a solid w x h image
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
