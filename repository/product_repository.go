package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"luxemarket/events"
	"luxemarket/models"
	"luxemarket/storage"
	"luxemarket/utils"
)

// ProductRepository persists the catalog under luxemarket_products.
// Every read runs the record migration and writes the upgraded catalog back when it changed.
type ProductRepository struct {
	mu         sync.Mutex
	store      storage.Storage
	categories CategoryRepositoryInterface
	resolver   HexResolver
	bus        events.Publisher

	extras map[int]map[string]json.RawMessage // Unmodeled stored keys as of the last load, guarded by mu
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(store storage.Storage, categories CategoryRepositoryInterface, resolver HexResolver, bus events.Publisher) *ProductRepository {
	if bus == nil {
		bus = events.NopPublisher{}
	}
	return &ProductRepository{store: store, categories: categories, resolver: resolver, bus: bus}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// GetAll returns the migrated catalog.
// A missing catalog is seeded; an unreadable one is logged and replaced by the seed in memory only.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// load must be called with r.mu held
func (r *ProductRepository) load(ctx context.Context) ([]models.Product, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyProducts)
	if err != nil {
		log.Printf("❌ Error reading products: %v", err)
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	if !ok {
		log.Printf("📦 No stored catalog, persisting %d seed products", len(seedProducts))
		products := SeedProducts()
		r.extras = nil
		if err := r.save(ctx, products); err != nil {
			return nil, err
		}
		return products, nil
	}

	stored, err := decodeProducts(raw)
	if err != nil {
		log.Printf("⚠️  Stored catalog is malformed, falling back to seed products: %v", err)
		r.extras = nil
		return SeedProducts(), nil
	}
	r.extras = extraFields(stored)

	products, modified := migrateProducts(stored)
	if modified {
		log.Printf("🔄 Migrated stored catalog (%d products), writing back", len(products))
		if err := r.save(ctx, products); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *ProductRepository) save(ctx context.Context, products []models.Product) error {
	data, err := encodeProducts(products, r.extras)
	if err == nil {
		err = r.store.Set(ctx, storage.KeyProducts, string(data))
	}
	if err != nil {
		log.Printf("❌ Error saving products: %v", err)
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

func (r *ProductRepository) notify(action string, id int) {
	r.bus.Publish(events.Event{
		Topic:  events.AdminUpdate,
		Detail: map[string]interface{}{"entity": "product", "action": action, "productId": id},
	})
}

// GetByID retrieves a single product
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	p := products[idx]
	return &p, nil
}

func indexOf(products []models.Product, id int) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Create validates input and appends a product with the next id (max+1)
func (r *ProductRepository) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	log.Printf("📦 CreateProduct: name=%q category=%q", input.Name, input.Category)

	product, err := r.build(ctx, input)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	products, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}

	maxID := 0
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	product.ID = maxID + 1

	products = append(products, product)
	if err := r.save(ctx, products); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	log.Printf("✓ Product created: id=%d", product.ID)
	r.notify("create", product.ID)
	return &product, nil
}

// Update replaces a product's fields, preserving its id
func (r *ProductRepository) Update(ctx context.Context, id int, input models.ProductInput) (*models.Product, error) {
	log.Printf("📝 UpdateProduct: id=%d", id)

	product, err := r.build(ctx, input)
	if err != nil {
		return nil, err
	}
	product.ID = id

	r.mu.Lock()
	products, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		r.mu.Unlock()
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	products[idx] = product
	if err := r.save(ctx, products); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	log.Printf("✓ Product updated: id=%d", id)
	r.notify("update", id)
	return &product, nil
}

// Delete removes a product permanently
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	log.Printf("🗑️  DeleteProduct: id=%d", id)

	r.mu.Lock()
	products, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	products = append(products[:idx], products[idx+1:]...)
	if err := r.save(ctx, products); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	log.Printf("✓ Product deleted: id=%d", id)
	r.notify("delete", id)
	return nil
}

// Search filters by category (case-insensitive) and free text over name, description and category.
// DealsOnly is applied by the storefront, which owns the deal overlay.
func (r *ProductRepository) Search(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(filter.Category)
	needle := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if needle != "" {
			haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// ImagesForColor returns the variant images for color (matched case-insensitively),
// then the color's own gallery, falling back to the product images
func (r *ProductRepository) ImagesForColor(ctx context.Context, id int, color string) ([]string, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	color = strings.TrimSpace(color)
	if color != "" {
		if key, ok := variantKey(p.VariantImages, color); ok && len(p.VariantImages[key]) > 0 {
			return p.VariantImages[key], nil
		}
		for _, c := range p.Colors {
			if strings.EqualFold(c.Name, color) && len(c.Images) > 0 {
				return c.Images, nil
			}
		}
	}
	return p.Images, nil
}

// AddImage appends an image URL to a product's gallery
func (r *ProductRepository) AddImage(ctx context.Context, id int, url string) (*models.Product, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("image url is required: %w", ErrValidation)
	}

	r.mu.Lock()
	products, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		r.mu.Unlock()
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	p := &products[idx]
	p.Images = utils.DedupeStrings(append(p.Images, url))
	if p.Image == "" {
		p.Image = url
	}
	if err := r.save(ctx, products); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	updated := *p
	r.mu.Unlock()

	log.Printf("✓ Image added to product %d: %s", id, url)
	r.notify("update", id)
	return &updated, nil
}

// MergeVariantImages appends urls to variantImages[color], keeping existing order and skipping duplicates.
// The key is re-spelled to match the product color when one matches case-insensitively.
func (r *ProductRepository) MergeVariantImages(ctx context.Context, id int, color string, urls []string) (int, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return 0, fmt.Errorf("color is required: %w", ErrValidation)
	}

	r.mu.Lock()
	products, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return 0, err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		r.mu.Unlock()
		return 0, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	p := &products[idx]
	if p.VariantImages == nil {
		p.VariantImages = make(map[string][]string)
	}

	key := color
	if existing, ok := variantKey(p.VariantImages, color); ok {
		key = existing
	}
	for _, c := range p.Colors {
		if strings.EqualFold(c.Name, color) {
			if key != c.Name {
				p.VariantImages[c.Name] = p.VariantImages[key]
				delete(p.VariantImages, key)
			}
			key = c.Name
			break
		}
	}

	current := p.VariantImages[key]
	seen := make(map[string]bool, len(current))
	for _, u := range current {
		seen[u] = true
	}
	inserted := 0
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		current = append(current, u)
		inserted++
	}

	if inserted == 0 {
		r.mu.Unlock()
		return 0, nil
	}

	if current == nil {
		current = []string{}
	}
	p.VariantImages[key] = current
	if err := r.save(ctx, products); err != nil {
		r.mu.Unlock()
		return 0, err
	}
	r.mu.Unlock()

	log.Printf("✓ %d variant image(s) merged into product %d color %q", inserted, id, key)
	r.notify("update", id)
	return inserted, nil
}

// DecrementStock subtracts quantities (product id -> units) atomically:
// if any product is missing or short on stock nothing is written
func (r *ProductRepository) DecrementStock(ctx context.Context, quantities map[int]int) error {
	r.mu.Lock()
	products, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return err
	}

	ids := make([]int, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		idx := indexOf(products, id)
		if idx < 0 {
			r.mu.Unlock()
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		if qty := quantities[id]; qty > products[idx].Stock {
			r.mu.Unlock()
			return fmt.Errorf("insufficient stock for %q: %d requested, %d available: %w",
				products[idx].Name, qty, products[idx].Stock, ErrValidation)
		}
	}
	for _, id := range ids {
		products[indexOf(products, id)].Stock -= quantities[id]
	}

	if err := r.save(ctx, products); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	log.Printf("📦 Stock decremented for %d product(s)", len(ids))
	r.notify("stock", 0)
	return nil
}

// RestoreStock adds quantities back after a checkout that could not be recorded.
// Products deleted in the meantime are skipped.
func (r *ProductRepository) RestoreStock(ctx context.Context, quantities map[int]int) error {
	r.mu.Lock()
	products, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return err
	}

	restored := 0
	for id, qty := range quantities {
		if idx := indexOf(products, id); idx >= 0 && qty > 0 {
			products[idx].Stock += qty
			restored++
		}
	}
	if restored == 0 {
		r.mu.Unlock()
		return nil
	}
	if err := r.save(ctx, products); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	log.Printf("↩️  Stock restored for %d product(s)", restored)
	r.notify("stock", 0)
	return nil
}

// build validates input and normalizes it into a product without an id
func (r *ProductRepository) build(ctx context.Context, input models.ProductInput) (models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Product{}, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if input.Price == nil {
		return models.Product{}, fmt.Errorf("price is required: %w", ErrValidation)
	}
	if *input.Price < 0 {
		return models.Product{}, fmt.Errorf("price must be non-negative: %w", ErrValidation)
	}
	if input.Stock < 0 {
		return models.Product{}, fmt.Errorf("stock must be non-negative: %w", ErrValidation)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return models.Product{}, fmt.Errorf("category is required: %w", ErrValidation)
	}
	exists, err := r.categories.Exists(ctx, category)
	if err != nil {
		return models.Product{}, err
	}
	if !exists {
		return models.Product{}, fmt.Errorf("category %q does not exist: %w", category, ErrValidation)
	}

	images := utils.DedupeStrings(input.Images)
	image := strings.TrimSpace(input.Image)
	if image != "" && len(images) == 0 {
		images = []string{image}
	}
	if image == "" && len(images) > 0 {
		image = images[0]
	}

	colors := make([]models.ColorSpec, 0, len(input.Colors))
	for _, c := range input.Colors {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		if hex, ok := utils.NormalizeHex(c.Hex); ok {
			c.Hex = hex
		} else {
			c.Hex = r.resolver.Resolve(c.Name)
		}
		c.Images = utils.DedupeStrings(c.Images)
		if len(c.Images) == 0 {
			c.Images = nil
		}
		colors = append(colors, c)
	}

	sizes := utils.NormalizeSizes(input.Sizes)

	return models.Product{
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		Price:         *input.Price,
		Category:      category,
		Image:         image,
		Images:        images,
		Colors:        colors,
		Sizes:         sizes,
		VariantImages: rekeyVariantImages(input.VariantImages, colors),
		Stock:         input.Stock,
	}, nil
}

// rekeyVariantImages matches keys to color names case-insensitively, adopting the color's spelling.
// Keys that collapse onto the same color are merged; keys matching no color are kept as given.
func rekeyVariantImages(in map[string][]string, colors []models.ColorSpec) map[string][]string {
	out := make(map[string][]string, len(in))

	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := strings.TrimSpace(k)
		if name == "" {
			continue
		}
		for _, c := range colors {
			if strings.EqualFold(c.Name, name) {
				name = c.Name
				break
			}
		}
		out[name] = utils.DedupeStrings(append(out[name], in[k]...))
	}
	return out
}

// variantKey finds the stored key matching color case-insensitively
func variantKey(variants map[string][]string, color string) (string, bool) {
	if _, ok := variants[color]; ok {
		return color, true
	}
	for k := range variants {
		if strings.EqualFold(k, color) {
			return k, true
		}
	}
	return "", false
}
