package repository

import "luxemarket/models"

// seedCategories is persisted the first time categories are read
var seedCategories = []string{"Handbags", "Watches", "Jewelry", "Shoes", "Accessories", "Clothing"}

// seedProducts is the built-in catalog. It is persisted when no catalog exists, returned when
// the stored catalog is unreadable, and used to backfill missing images on older records.
var seedProducts = []models.Product{
	{
		ID:          1,
		Name:        "Milano Leather Tote",
		Description: "Full-grain Italian leather tote with suede lining.",
		Price:       489.00,
		Category:    "Handbags",
		Image:       "/static/products/milano-tote.jpg",
		Images:      []string{"/static/products/milano-tote.jpg", "/static/products/milano-tote-side.jpg"},
		Colors: []models.ColorSpec{
			{Name: "Black", Hex: "#000000"},
			{Name: "Tan", Hex: "#D2B48C"},
		},
		Sizes: []string{"OS"},
		VariantImages: map[string][]string{
			"Black": {"/static/products/milano-tote-black.jpg"},
			"Tan":   {"/static/products/milano-tote-tan.jpg"},
		},
		Stock: 12,
	},
	{
		ID:          2,
		Name:        "Aurelia Chronograph",
		Description: "Sapphire crystal chronograph with a 42mm steel case.",
		Price:       1250.00,
		Category:    "Watches",
		Image:       "/static/products/aurelia.jpg",
		Images:      []string{"/static/products/aurelia.jpg"},
		Colors: []models.ColorSpec{
			{Name: "Silver", Hex: "#C0C0C0"},
			{Name: "Gold", Hex: "#FFD700"},
			{Name: "Rose Gold", Hex: "#B76E79"},
		},
		Sizes: []string{"OS"},
		VariantImages: map[string][]string{
			"Gold":      {"/static/products/aurelia-gold.jpg"},
			"Rose Gold": {"/static/products/aurelia-rose.jpg"},
		},
		Stock: 5,
	},
	{
		ID:          3,
		Name:        "Celeste Pearl Necklace",
		Description: "Freshwater pearls on an 18k gold chain.",
		Price:       329.50,
		Category:    "Jewelry",
		Image:       "/static/products/celeste.jpg",
		Images:      []string{"/static/products/celeste.jpg"},
		Colors: []models.ColorSpec{
			{Name: "Gold", Hex: "#FFD700"},
		},
		Sizes:         []string{"OS"},
		VariantImages: map[string][]string{},
		Stock:         20,
	},
	{
		ID:          4,
		Name:        "Riviera Suede Loafer",
		Description: "Hand-stitched suede loafer with leather sole.",
		Price:       295.00,
		Category:    "Shoes",
		Image:       "/static/products/riviera.jpg",
		Images:      []string{"/static/products/riviera.jpg", "/static/products/riviera-sole.jpg"},
		Colors: []models.ColorSpec{
			{Name: "Navy", Hex: "#1E3A8A"},
			{Name: "Brown", Hex: "#92400E"},
		},
		Sizes: []string{"40", "41", "42", "43", "44"},
		VariantImages: map[string][]string{
			"Navy":  {"/static/products/riviera-navy.jpg"},
			"Brown": {"/static/products/riviera-brown.jpg"},
		},
		Stock: 18,
	},
	{
		ID:          5,
		Name:        "Sable Cashmere Scarf",
		Description: "Two-tone cashmere scarf, woven in Scotland.",
		Price:       210.00,
		Category:    "Accessories",
		Image:       "/static/products/sable.jpg",
		Images:      []string{"/static/products/sable.jpg"},
		Colors: []models.ColorSpec{
			{Name: "Charcoal", Hex: "#36454F"},
			{Name: "Cream", Hex: "#FFFDD0"},
		},
		Sizes:         []string{"OS"},
		VariantImages: map[string][]string{},
		Stock:         30,
	},
	{
		ID:          6,
		Name:        "Noir Silk Blazer",
		Description: "Tailored silk-blend blazer with satin lapels.",
		Price:       640.00,
		Category:    "Clothing",
		Image:       "/static/products/noir-blazer.jpg",
		Images:      []string{"/static/products/noir-blazer.jpg"},
		Colors: []models.ColorSpec{
			{Name: "Black", Hex: "#000000"},
			{Name: "Beige", Hex: "#F5F5DC"},
		},
		Sizes: []string{"XS", "S", "M", "L", "XL"},
		VariantImages: map[string][]string{
			"Beige": {"/static/products/noir-blazer-beige.jpg"},
		},
		Stock: 8,
	},
}

// SeedProducts returns a deep copy of the built-in catalog
func SeedProducts() []models.Product {
	out := make([]models.Product, len(seedProducts))
	for i, p := range seedProducts {
		out[i] = cloneProduct(p)
	}
	return out
}

// SeedCategories returns a copy of the built-in categories
func SeedCategories() []string {
	return append([]string(nil), seedCategories...)
}

func seedByID(id int) (models.Product, bool) {
	for _, p := range seedProducts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func cloneProduct(p models.Product) models.Product {
	p.Images = append([]string{}, p.Images...)
	p.Sizes = append([]string{}, p.Sizes...)
	colors := make([]models.ColorSpec, len(p.Colors))
	for i, c := range p.Colors {
		c.Images = append([]string(nil), c.Images...)
		colors[i] = c
	}
	p.Colors = colors
	p.VariantImages = cloneVariantImages(p.VariantImages)
	if p.DealPrice != nil {
		price := *p.DealPrice
		p.DealPrice = &price
	}
	return p
}

func cloneVariantImages(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string{}, v...)
	}
	return out
}
