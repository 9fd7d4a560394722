package repository

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"luxemarket/models"
	"luxemarket/storage"
)

func TestMigrateLegacyStringColors(t *testing.T) {
	f := newFixture(t)
	f.put(t, storage.KeyProducts, `[{"id":100,"name":"Clutch","price":10,"category":"Handbags","images":["a.jpg"],"colors":["Black","Gold"],"variantImages":{}}]`)

	products, err := f.products.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	want := []models.ColorSpec{{Name: "Black", Hex: "#000000"}, {Name: "Gold", Hex: "#FFD700"}}
	if !reflect.DeepEqual(products[0].Colors, want) {
		t.Errorf("colors = %+v, want %+v", products[0].Colors, want)
	}

	// persisted in the migrated form
	var stored []struct {
		Colors []models.ColorSpec `json:"colors"`
	}
	if err := json.Unmarshal([]byte(f.raw(t, storage.KeyProducts)), &stored); err != nil {
		t.Fatalf("stored catalog not in current shape: %v", err)
	}
	if !reflect.DeepEqual(stored[0].Colors, want) {
		t.Errorf("stored colors = %+v", stored[0].Colors)
	}
}

func TestMigrateBareStringVariantImages(t *testing.T) {
	f := newFixture(t)
	f.put(t, storage.KeyProducts, `[{"id":100,"name":"Clutch","price":10,"category":"Handbags","images":["a.jpg"],"colors":[{"name":"Red","hex":"#DC2626"}],"variantImages":{"Red":"http://x/a.jpg"}}]`)

	products, err := f.products.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if got := products[0].VariantImages["Red"]; !reflect.DeepEqual(got, []string{"http://x/a.jpg"}) {
		t.Errorf("variantImages[Red] = %#v", got)
	}

	var stored []struct {
		VariantImages map[string][]string `json:"variantImages"`
	}
	if err := json.Unmarshal([]byte(f.raw(t, storage.KeyProducts)), &stored); err != nil {
		t.Fatalf("stored catalog not in current shape: %v", err)
	}
	if !reflect.DeepEqual(stored[0].VariantImages["Red"], []string{"http://x/a.jpg"}) {
		t.Errorf("stored variantImages = %#v", stored[0].VariantImages)
	}
}

func TestMigrateBackfillsFromSeed(t *testing.T) {
	f := newFixture(t)
	f.put(t, storage.KeyProducts, `[{"id":1,"name":"Milano Leather Tote","price":489,"category":"Handbags","colors":[]}]`)

	products, err := f.products.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	seed, _ := seedByID(1)
	if !reflect.DeepEqual(products[0].Images, seed.Images) {
		t.Errorf("images = %v, want %v", products[0].Images, seed.Images)
	}
	if !reflect.DeepEqual(products[0].VariantImages, seed.VariantImages) {
		t.Errorf("variantImages = %v, want %v", products[0].VariantImages, seed.VariantImages)
	}
	if products[0].Image != seed.Images[0] {
		t.Errorf("primary image = %q", products[0].Image)
	}
}

func TestMigrateLoneImageAndHexCase(t *testing.T) {
	f := newFixture(t)
	f.put(t, storage.KeyProducts, `[{"id":500,"name":"Ring","price":99,"category":"Jewelry","image":"ring.jpg","colors":[{"name":"Teal","hex":"#0d9488"},{"name":"Navy"},{"name":"Plaid","hex":"blue"}],"variantImages":{}}]`)

	products, err := f.products.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	p := products[0]
	if !reflect.DeepEqual(p.Images, []string{"ring.jpg"}) {
		t.Errorf("images = %v", p.Images)
	}
	want := []models.ColorSpec{
		{Name: "Teal", Hex: "#0D9488"},
		{Name: "Navy", Hex: "#1E3A8A"},
		{Name: "Plaid", Hex: models.DefaultColorHex},
	}
	if !reflect.DeepEqual(p.Colors, want) {
		t.Errorf("colors = %+v", p.Colors)
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.put(t, storage.KeyProducts, `[{"id":100,"name":"Clutch","price":10,"category":"Handbags","image":"a.jpg","colors":["Black","Mystery"],"variantImages":{"Black":"b.jpg"}}]`)
	ctx := context.Background()

	if _, err := f.products.GetAll(ctx); err != nil {
		t.Fatal(err)
	}
	first := f.raw(t, storage.KeyProducts)
	writes := f.store.Writes()

	if _, err := f.products.GetAll(ctx); err != nil {
		t.Fatal(err)
	}
	if second := f.raw(t, storage.KeyProducts); second != first {
		t.Errorf("second read changed the catalog:\n%s\n%s", first, second)
	}
	if f.store.Writes() != writes {
		t.Errorf("second read wrote %d time(s)", f.store.Writes()-writes)
	}
}

func TestSeedWrittenOnceThenStable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	products, err := f.products.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != len(seedProducts) {
		t.Fatalf("got %d products, want seed", len(products))
	}
	writes := f.store.Writes()
	if _, err := f.products.GetAll(ctx); err != nil {
		t.Fatal(err)
	}
	if f.store.Writes() != writes {
		t.Error("reading a seeded catalog should not write again")
	}
}

func TestMalformedCatalogFallsBackToSeed(t *testing.T) {
	f := newFixture(t)
	f.put(t, storage.KeyProducts, `{not json`)
	writes := f.store.Writes()

	products, err := f.products.GetAll(context.Background())
	if err != nil {
		t.Fatalf("malformed catalog must not surface an error: %v", err)
	}
	if len(products) != len(seedProducts) {
		t.Errorf("got %d products, want the seed", len(products))
	}
	if f.raw(t, storage.KeyProducts) != `{not json` || f.store.Writes() != writes {
		t.Error("a read must not overwrite the corrupted catalog")
	}
}

func TestSeedProductsAreCopies(t *testing.T) {
	a := SeedProducts()
	a[0].Images[0] = "changed"
	a[0].VariantImages["Black"][0] = "changed"
	b := SeedProducts()
	if b[0].Images[0] == "changed" || b[0].VariantImages["Black"][0] == "changed" {
		t.Error("SeedProducts shares memory with the seed")
	}
}

func TestMigrationKeepsUnknownFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.put(t, storage.KeyProducts, `[{"id":100,"name":"Clutch","price":10,"category":"Handbags","images":["a.jpg"],"colors":["Black"],"variantImages":{},"rating":4.5,"supplier":{"code":"MIL-7"}},{"id":101,"name":"Belt","price":20,"category":"Accessories","images":["b.jpg"],"colors":[],"variantImages":{}}]`)

	if _, err := f.products.GetAll(ctx); err != nil {
		t.Fatalf("GetAll: %v", err)
	}

	var stored []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(f.raw(t, storage.KeyProducts)), &stored); err != nil {
		t.Fatal(err)
	}
	if string(stored[0]["rating"]) != "4.5" || string(stored[0]["supplier"]) != `{"code":"MIL-7"}` {
		t.Errorf("unknown fields lost on write-back: %s", f.raw(t, storage.KeyProducts))
	}
	if _, ok := stored[1]["rating"]; ok {
		t.Error("unknown field copied onto another record")
	}
	if string(stored[0]["colors"]) != `[{"name":"Black","hex":"#000000"}]` {
		t.Errorf("colors not migrated: %s", stored[0]["colors"])
	}

	price := 12.0
	if _, err := f.products.Update(ctx, 100, models.ProductInput{Name: "Clutch", Price: &price, Category: "Handbags"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	stored = nil
	if err := json.Unmarshal([]byte(f.raw(t, storage.KeyProducts)), &stored); err != nil {
		t.Fatal(err)
	}
	if string(stored[0]["rating"]) != "4.5" || string(stored[0]["price"]) != "12" {
		t.Errorf("after update: %s", f.raw(t, storage.KeyProducts))
	}
}
