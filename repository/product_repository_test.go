package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"luxemarket/events"
	"luxemarket/models"
	"luxemarket/storage"
)

func price(v float64) *float64 { return &v }

func validInput() models.ProductInput {
	return models.ProductInput{
		Name:     "Vienna Bucket Bag",
		Price:    price(359),
		Category: "handbags",
		Images:   []string{"a.jpg", "b.jpg", "a.jpg"},
		Colors: []models.ColorSpec{
			{Name: " Black "},
			{Name: "Rose Gold", Hex: "#b76e79"},
			{Name: ""},
		},
		Sizes:         []string{"one size"},
		VariantImages: map[string][]string{"black": {"v1.jpg"}, "BLACK": {"v2.jpg", "v1.jpg"}, "Teal": {"t.jpg"}},
		Stock:         4,
	}
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID != len(seedProducts)+1 {
		t.Errorf("id = %d, want max+1", p.ID)
	}
	if !reflect.DeepEqual(p.Images, []string{"a.jpg", "b.jpg"}) || p.Image != "a.jpg" {
		t.Errorf("images = %v, image = %q", p.Images, p.Image)
	}
	wantColors := []models.ColorSpec{{Name: "Black", Hex: "#000000"}, {Name: "Rose Gold", Hex: "#B76E79"}}
	if !reflect.DeepEqual(p.Colors, wantColors) {
		t.Errorf("colors = %+v", p.Colors)
	}
	wantVariants := map[string][]string{"Black": {"v2.jpg", "v1.jpg"}, "Teal": {"t.jpg"}}
	if !reflect.DeepEqual(p.VariantImages, wantVariants) {
		t.Errorf("variantImages = %v", p.VariantImages)
	}
	if !reflect.DeepEqual(p.Sizes, []string{"OS"}) {
		t.Errorf("sizes = %v", p.Sizes)
	}
	if f.bus.count(events.AdminUpdate) != 1 {
		t.Error("create should publish adminUpdate")
	}

	got, err := f.products.GetByID(ctx, p.ID)
	if err != nil || got.Name != "Vienna Bucket Bag" {
		t.Errorf("GetByID = %+v, %v", got, err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.products.GetAll(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.categories.List(ctx); err != nil {
		t.Fatal(err)
	}
	writes := f.store.Writes()

	tests := map[string]func(*models.ProductInput){
		"missing name":     func(in *models.ProductInput) { in.Name = "  " },
		"missing price":    func(in *models.ProductInput) { in.Price = nil },
		"negative price":   func(in *models.ProductInput) { in.Price = price(-1) },
		"negative stock":   func(in *models.ProductInput) { in.Stock = -2 },
		"unknown category": func(in *models.ProductInput) { in.Category = "Yachts" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			if _, err := f.products.Create(ctx, in); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
	if f.store.Writes() != writes {
		t.Error("rejected input must not write")
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validInput()
	in.Name = "Renamed"
	p, err := f.products.Update(ctx, 3, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.ID != 3 || p.Name != "Renamed" {
		t.Errorf("updated = %+v", p)
	}

	if _, err := f.products.Update(ctx, 999, in); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: %v", err)
	}

	if err := f.products.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.products.GetByID(ctx, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted product still found: %v", err)
	}
	if err := f.products.Delete(ctx, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}

	// ids are never reused after a delete of a lower id
	created, err := f.products.Create(ctx, validInput())
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != len(seedProducts)+1 {
		t.Errorf("new id = %d", created.ID)
	}
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	byCategory, err := f.products.Search(ctx, models.ProductFilter{Category: "WATCHES"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != 2 {
		t.Errorf("category search = %+v", byCategory)
	}

	byText, err := f.products.Search(ctx, models.ProductFilter{Search: "cashmere"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byText) != 1 || byText[0].ID != 5 {
		t.Errorf("text search = %+v", byText)
	}

	all, _ := f.products.Search(ctx, models.ProductFilter{})
	if len(all) != len(seedProducts) {
		t.Errorf("empty filter returned %d", len(all))
	}
}

func TestImagesForColor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.products.ImagesForColor(ctx, 2, "rose gold")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"/static/products/aurelia-rose.jpg"}) {
		t.Errorf("rose gold images = %v", got)
	}

	got, _ = f.products.ImagesForColor(ctx, 2, "Silver")
	if !reflect.DeepEqual(got, []string{"/static/products/aurelia.jpg"}) {
		t.Errorf("fallback images = %v", got)
	}

	if _, err := f.products.ImagesForColor(ctx, 404, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing product: %v", err)
	}
}

func TestMergeVariantImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.products.MergeVariantImages(ctx, 1, "black", []string{"/static/products/milano-tote-black.jpg", "new.jpg", "new.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("inserted = %d, want 1", n)
	}
	p, _ := f.products.GetByID(ctx, 1)
	want := []string{"/static/products/milano-tote-black.jpg", "new.jpg"}
	if !reflect.DeepEqual(p.VariantImages["Black"], want) {
		t.Errorf("variantImages[Black] = %v", p.VariantImages["Black"])
	}
	if _, ok := p.VariantImages["black"]; ok {
		t.Error("key should use the product color spelling")
	}

	n, err = f.products.MergeVariantImages(ctx, 1, "Black", []string{"new.jpg"})
	if err != nil || n != 0 {
		t.Errorf("re-merge inserted %d (err=%v)", n, err)
	}
}

func TestAddImage(t *testing.T) {
	f := newFixture(t)
	p, err := f.products.AddImage(context.Background(), 3, "/static/uploads/x.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if p.Images[len(p.Images)-1] != "/static/uploads/x.jpg" {
		t.Errorf("images = %v", p.Images)
	}
}

func TestDecrementStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.products.DecrementStock(ctx, map[int]int{1: 2, 2: 5}); err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	p1, _ := f.products.GetByID(ctx, 1)
	p2, _ := f.products.GetByID(ctx, 2)
	if p1.Stock != 10 || p2.Stock != 0 {
		t.Errorf("stock = %d, %d", p1.Stock, p2.Stock)
	}

	err := f.products.DecrementStock(ctx, map[int]int{1: 1, 2: 1})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("oversell err = %v", err)
	}
	p1, _ = f.products.GetByID(ctx, 1)
	if p1.Stock != 10 {
		t.Error("failed decrement must not write partial changes")
	}
}

func TestRestoreStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.products.DecrementStock(ctx, map[int]int{1: 3}); err != nil {
		t.Fatal(err)
	}
	if err := f.products.RestoreStock(ctx, map[int]int{1: 3, 99: 1}); err != nil {
		t.Fatalf("RestoreStock: %v", err)
	}
	p1, _ := f.products.GetByID(ctx, 1)
	if p1.Stock != 12 {
		t.Errorf("stock = %d, want 12", p1.Stock)
	}
}

func TestDeleteCategoryKeepsProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, _ := f.products.GetByID(ctx, 2)
	raw := f.raw(t, storage.KeyProducts)

	if err := f.categories.Delete(ctx, "Watches"); err != nil {
		t.Fatalf("Delete category: %v", err)
	}
	after, err := f.products.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("product referencing deleted category is gone: %v", err)
	}
	if after.Category != "Watches" || !reflect.DeepEqual(before, after) {
		t.Errorf("product changed: %+v", after)
	}
	if f.raw(t, storage.KeyProducts) != raw {
		t.Error("catalog was rewritten by a category delete")
	}
}
