package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"luxemarket/models"
	"luxemarket/pricing"
	"luxemarket/repository"
)

// StorefrontService joins products with deals, homepage order and the watchlist
// Implements StorefrontServiceInterface
type StorefrontService struct {
	products  repository.ProductRepositoryInterface
	deals     repository.DealRepositoryInterface
	homepage  repository.HomepageRepositoryInterface
	watchlist repository.WatchlistRepositoryInterface
	engine    *pricing.Engine
}

// NewStorefrontService creates a new StorefrontService
func NewStorefrontService(
	products repository.ProductRepositoryInterface,
	deals repository.DealRepositoryInterface,
	homepage repository.HomepageRepositoryInterface,
	watchlist repository.WatchlistRepositoryInterface,
	engine *pricing.Engine,
) *StorefrontService {
	return &StorefrontService{
		products:  products,
		deals:     deals,
		homepage:  homepage,
		watchlist: watchlist,
		engine:    engine,
	}
}

// Ensure StorefrontService implements StorefrontServiceInterface
var _ StorefrontServiceInterface = (*StorefrontService)(nil)

// ListProducts searches the catalog and overlays active deals.
// With DealsOnly set, only products currently on deal are returned.
func (s *StorefrontService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.products.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	active, err := s.deals.Active(ctx)
	if err != nil {
		return nil, err
	}

	products = s.engine.ApplyDeals(products, active)
	if !filter.DealsOnly {
		return products, nil
	}

	onDeal := make([]models.Product, 0, len(active))
	for _, p := range products {
		if p.IsDailyDeal {
			onDeal = append(onDeal, p)
		}
	}
	return onDeal, nil
}

// GetProduct returns one product with its deal overlay
func (s *StorefrontService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	active, err := s.deals.Active(ctx)
	if err != nil {
		return nil, err
	}
	out := s.engine.ApplyDeal(*p, active)
	return &out, nil
}

// Homepage returns every product, admin-ordered ids first
func (s *StorefrontService) Homepage(ctx context.Context) ([]models.Product, error) {
	products, err := s.ListProducts(ctx, models.ProductFilter{})
	if err != nil {
		return nil, err
	}
	ids, err := s.homepage.Get(ctx)
	if err != nil {
		return nil, err
	}
	return repository.OrderProducts(products, ids), nil
}

// Deals lists active deals with their products; deals whose product was deleted are left out
func (s *StorefrontService) Deals(ctx context.Context) ([]models.DealView, error) {
	deals, err := s.deals.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	active := make(map[int]models.DailyDeal, len(deals))
	for _, d := range deals {
		active[d.ProductID] = d
	}

	views := make([]models.DealView, 0, len(deals))
	for _, d := range deals {
		p, ok := byID[d.ProductID]
		if !ok {
			continue
		}
		view := models.DealView{DailyDeal: d, Product: s.engine.ApplyDeal(p, active)}
		if added, err := time.Parse(time.RFC3339, d.AddedDate); err == nil {
			view.ExpiresAt = added.Add(s.engine.DealTTL()).Format(time.RFC3339)
		}
		views = append(views, view)
	}
	return views, nil
}

// AddDeal puts an existing product on deal
func (s *StorefrontService) AddDeal(ctx context.Context, req models.AddDealRequest) (*models.DailyDeal, error) {
	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	return s.deals.Add(ctx, req.ProductID, req.DiscountPercent)
}

// Watchlist returns the watched products in watch order, skipping ids that no longer exist
func (s *StorefrontService) Watchlist(ctx context.Context) ([]models.Product, error) {
	ids, err := s.watchlist.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.ListProducts(ctx, models.ProductFilter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		} else {
			log.Printf("⏭️  Watchlist product %d no longer exists", id)
		}
	}
	return out, nil
}

// Watch adds an existing product to the watchlist
func (s *StorefrontService) Watch(ctx context.Context, productID int) ([]int, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("cannot watch product %d: %w", productID, err)
	}
	return s.watchlist.Add(ctx, productID)
}
