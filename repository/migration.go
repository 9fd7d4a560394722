package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"luxemarket/models"
	"luxemarket/utils"
)

// storedColor decodes either a legacy bare string ("Black") or a ColorSpec object
type storedColor struct {
	legacy bool
	spec   models.ColorSpec
}

func (c *storedColor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		c.legacy = true
		c.spec = models.ColorSpec{Name: name}
		return nil
	}
	var spec models.ColorSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("color must be a string or {name, hex}: %w", err)
	}
	c.spec = spec
	return nil
}

// stringList decodes either a bare string or an array of strings
type stringList struct {
	wasString bool
	values    []string
}

func (l *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		l.wasString = true
		if s != "" {
			l.values = []string{s}
		} else {
			l.values = []string{}
		}
		return nil
	}
	return json.Unmarshal(data, &l.values)
}

// storedProduct is the on-disk shape of a product across every historical version
type storedProduct struct {
	ID            int                   `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Price         float64               `json:"price"`
	Category      string                `json:"category"`
	Image         string                `json:"image"`
	Images        stringList            `json:"images"`
	Colors        []storedColor         `json:"colors"`
	Sizes         []string              `json:"sizes"`
	VariantImages map[string]stringList `json:"variantImages"`
	Stock         int                   `json:"stock"`

	extra map[string]json.RawMessage // Keys this version does not model, written back untouched
}

// knownProductFields are the keys storedProduct decodes. The deal overlay keys are never persisted.
var knownProductFields = map[string]bool{
	"id": true, "name": true, "description": true, "price": true, "category": true, "image": true,
	"images": true, "colors": true, "sizes": true, "variantImages": true, "stock": true,
	"isDailyDeal": true, "dealPrice": true,
}

func (sp *storedProduct) UnmarshalJSON(data []byte) error {
	type plain storedProduct
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, value := range fields {
		if knownProductFields[key] {
			continue
		}
		if p.extra == nil {
			p.extra = make(map[string]json.RawMessage)
		}
		p.extra[key] = value
	}
	*sp = storedProduct(p)
	return nil
}

// extraFields collects the unmodeled keys of each stored record by product id
func extraFields(stored []storedProduct) map[int]map[string]json.RawMessage {
	var extras map[int]map[string]json.RawMessage
	for _, sp := range stored {
		if len(sp.extra) == 0 {
			continue
		}
		if extras == nil {
			extras = make(map[int]map[string]json.RawMessage)
		}
		extras[sp.ID] = sp.extra
	}
	return extras
}

// encodeProducts marshals the catalog, merging back the unmodeled keys of records that had them
func encodeProducts(products []models.Product, extras map[int]map[string]json.RawMessage) ([]byte, error) {
	if len(extras) == 0 {
		return json.Marshal(products)
	}
	records := make([]json.RawMessage, 0, len(products))
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		if extra := extras[p.ID]; len(extra) > 0 {
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(data, &fields); err != nil {
				return nil, err
			}
			for key, value := range extra {
				if _, ok := fields[key]; !ok {
					fields[key] = value
				}
			}
			if data, err = json.Marshal(fields); err != nil {
				return nil, err
			}
		}
		records = append(records, data)
	}
	return json.Marshal(records)
}

// decodeProducts parses the persisted catalog into its tolerant stored form
func decodeProducts(raw string) ([]storedProduct, error) {
	var stored []storedProduct
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// migrateProducts upgrades stored records to the current Product shape.
// modified is false when every record was already current, so callers can skip the write.
func migrateProducts(stored []storedProduct) (products []models.Product, modified bool) {
	products = make([]models.Product, 0, len(stored))
	for _, sp := range stored {
		p, changed := migrateProduct(sp)
		if changed {
			modified = true
		}
		products = append(products, p)
	}
	return products, modified
}

func migrateProduct(sp storedProduct) (models.Product, bool) {
	modified := false
	seed, hasSeed := seedByID(sp.ID)

	p := models.Product{
		ID:          sp.ID,
		Name:        sp.Name,
		Description: sp.Description,
		Price:       sp.Price,
		Category:    sp.Category,
		Image:       sp.Image,
		Sizes:       sp.Sizes,
		Stock:       sp.Stock,
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}

	// images: lone string -> list, then backfill, then lone primary image -> list
	if sp.Images.wasString {
		modified = true
	}
	p.Images = sp.Images.values
	if len(p.Images) == 0 && hasSeed && len(seed.Images) > 0 {
		p.Images = append([]string{}, seed.Images...)
		modified = true
	}
	if len(p.Images) == 0 && strings.TrimSpace(p.Image) != "" {
		p.Images = []string{p.Image}
		modified = true
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if deduped := utils.DedupeStrings(p.Images); len(deduped) != len(p.Images) {
		p.Images = deduped
		modified = true
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
		modified = true
	}

	// colors: legacy strings -> {name, hex}; fill or canonicalize hex
	p.Colors = make([]models.ColorSpec, 0, len(sp.Colors))
	for _, sc := range sp.Colors {
		spec := sc.spec
		if sc.legacy {
			modified = true
		}
		if hex, ok := utils.NormalizeHex(spec.Hex); ok {
			if hex != spec.Hex {
				spec.Hex = hex
				modified = true
			}
		} else {
			spec.Hex = utils.MapColorNameToHex(spec.Name)
			modified = true
		}
		p.Colors = append(p.Colors, spec)
	}

	// variantImages: backfill, bare strings -> single-element lists
	p.VariantImages = make(map[string][]string, len(sp.VariantImages))
	for color, list := range sp.VariantImages {
		if list.wasString {
			modified = true
		}
		values := list.values
		if values == nil {
			values = []string{}
		}
		p.VariantImages[color] = values
	}
	if len(p.VariantImages) == 0 && hasSeed && len(seed.VariantImages) > 0 {
		p.VariantImages = cloneVariantImages(seed.VariantImages)
		modified = true
	} else if sp.VariantImages == nil {
		// absent key is written as {}
		modified = true
	}

	return p, modified
}
