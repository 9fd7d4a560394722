package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"luxemarket/models"
	"luxemarket/repository"
)

func TestRenderCatalogHTML(t *testing.T) {
	f := newFixture(t)
	s := NewCatalogService(f.products, f.deals, f.engine, f.parser, f.bus, "http://localhost:8080/")

	html, err := s.RenderCatalogHTML(f.ctx)
	if err != nil {
		t.Fatalf("RenderCatalogHTML: %v", err)
	}
	for _, want := range []string{
		"Milano Leather Tote",
		"$1,250.00",
		"color-swatch color-swatch--single",
		"background-color: #B76E79;",
		"<h2>Watches</h2>",
		"6 products",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("catalog missing %q", want)
		}
	}
	if strings.Index(html, "<h2>Accessories</h2>") > strings.Index(html, "<h2>Watches</h2>") {
		t.Error("sections should be sorted by category")
	}
}

func TestRenderCatalogCombinationSwatch(t *testing.T) {
	f := newFixture(t)
	price := 120.0
	if _, err := f.products.Create(f.ctx, models.ProductInput{
		Name:     "Duo Card Case",
		Price:    &price,
		Category: "Accessories",
		Colors:   []models.ColorSpec{{Name: "Black/Gold"}},
		Stock:    3,
	}); err != nil {
		t.Fatal(err)
	}

	s := NewCatalogService(f.products, f.deals, f.engine, f.parser, nil, "")
	html, err := s.RenderCatalogHTML(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "linear-gradient(to right, #000000 0%, #000000 50%, #FFD700 50%, #FFD700 100%)") {
		t.Error("combination color should render as a split swatch")
	}
}

func TestCatalogCacheInvalidatedOnAdminUpdate(t *testing.T) {
	f := newFixture(t)
	s := NewCatalogService(f.products, f.deals, f.engine, f.parser, f.bus, "")

	first, err := s.RenderCatalogHTML(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(first, "$391.20") {
		t.Fatal("deal price rendered before the deal exists")
	}

	if _, err := f.deals.Add(f.ctx, 1, 20); err != nil {
		t.Fatal(err)
	}
	second, err := s.RenderCatalogHTML(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(second, "$391.20") {
		t.Error("adminUpdate did not invalidate the cached catalog")
	}
}

func TestCatalogCacheServedWithoutEvents(t *testing.T) {
	f := newFixture(t)
	s := NewCatalogService(f.products, f.deals, f.engine, f.parser, nil, "")

	if _, err := s.RenderCatalogHTML(f.ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.deals.Add(f.ctx, 1, 20); err != nil {
		t.Fatal(err)
	}
	cached, err := s.RenderCatalogHTML(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(cached, "$391.20") {
		t.Error("expected the cached render")
	}

	s.Invalidate()
	fresh, _ := s.RenderCatalogHTML(f.ctx)
	if !strings.Contains(fresh, "$391.20") {
		t.Error("Invalidate did not drop the cache")
	}
}

// editingProducts renames a product while the first catalog read is in flight
type editingProducts struct {
	*repository.ProductRepository
	t      *testing.T
	edited bool
}

func (p *editingProducts) GetAll(ctx context.Context) ([]models.Product, error) {
	products, err := p.ProductRepository.GetAll(ctx)
	if err != nil || p.edited {
		return products, err
	}
	p.edited = true
	price := 489.0
	if _, err := p.ProductRepository.Update(ctx, 1, models.ProductInput{
		Name:     "Milano Tote Renamed",
		Price:    &price,
		Category: "Handbags",
		Stock:    12,
	}); err != nil {
		p.t.Fatalf("Update: %v", err)
	}
	return products, nil
}

func TestCatalogRenderStartedBeforeUpdateIsNotCached(t *testing.T) {
	f := newFixture(t)
	products := &editingProducts{ProductRepository: f.products, t: t}
	s := NewCatalogService(products, f.deals, f.engine, f.parser, f.bus, "")

	stale, err := s.RenderCatalogHTML(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stale, "Milano Leather Tote") {
		t.Fatal("first render should reflect the products it read")
	}

	fresh, err := s.RenderCatalogHTML(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fresh, "Milano Tote Renamed") {
		t.Error("render from before the update was cached")
	}
}

func TestCatalogCacheExpiresWithDeal(t *testing.T) {
	f := newFixture(t)
	s := NewCatalogService(f.products, f.deals, f.engine, f.parser, nil, "")

	if _, err := f.deals.Add(f.ctx, 1, 20); err != nil {
		t.Fatal(err)
	}
	withDeal, err := s.RenderCatalogHTML(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(withDeal, "$391.20") {
		t.Fatal("deal price missing")
	}

	f.now = f.now.Add(23 * time.Hour)
	if cached, _ := s.RenderCatalogHTML(f.ctx); !strings.Contains(cached, "$391.20") {
		t.Error("deal dropped before it expired")
	}

	f.now = f.now.Add(2 * time.Hour)
	expired, err := s.RenderCatalogHTML(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(expired, "$391.20") {
		t.Error("expired deal price still served from the cache")
	}
}
