package models

import (
	"github.com/shopspring/decimal"
)

// Brand holds the display-only shop identity
type Brand struct {
	Name         string `yaml:"name"`
	Subtitle     string `yaml:"subtitle"`
	ContactEmail string `yaml:"contact_email" validate:"omitempty,email"`
}

// Variant is a sellable configuration of a product. Its ID is an item key.
type Variant struct {
	ID    string          `yaml:"id" validate:"required"`
	Label string          `yaml:"label" validate:"required"`
	Price decimal.Decimal `yaml:"price"`
}

// Product groups variants under shared display text. A product ID is not sellable.
type Product struct {
	ID               string    `yaml:"id" validate:"required"`
	Name             string    `yaml:"name" validate:"required"`
	Maker            string    `yaml:"maker"`
	Image            string    `yaml:"image"`
	ShortDescription string    `yaml:"description_short"`
	LongDescription  string    `yaml:"description_long"`
	Bullets          []string  `yaml:"bullets"`
	Variants         []Variant `yaml:"variants" validate:"required,min=1,dive"`
}

// Addon is a standalone sellable accessory. Its ID is an item key.
type Addon struct {
	ID    string          `yaml:"id" validate:"required"`
	Name  string          `yaml:"name" validate:"required"`
	Price decimal.Decimal `yaml:"price"`
	Image string          `yaml:"image"`
}

// Catalog is the immutable list of everything the shop displays
type Catalog struct {
	Products []Product `yaml:"products" validate:"dive"`
	Addons   []Addon   `yaml:"addons" validate:"dive"`
}

// ItemKind tells which catalog namespace an item key was found in
type ItemKind string

const (
	ItemKindVariant ItemKind = "variant"
	ItemKindAddon   ItemKind = "addon"
)

// Item is the sellable view of a variant or add-on
type Item struct {
	Key       string
	Kind      ItemKind
	Label     string
	Price     decimal.Decimal
	ProductID string
}

// FindProduct returns the product with the given id
func (c Catalog) FindProduct(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindVariant returns the variant of this product with the given id
func (p Product) FindVariant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// DefaultVariant returns the first variant, which is what an untouched selector shows
func (p Product) DefaultVariant() (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	return p.Variants[0], true
}

// FindVariant searches every product for a variant with the given item key.
// The owning product is returned with it.
func (c Catalog) FindVariant(key string) (Variant, Product, bool) {
	for _, p := range c.Products {
		if v, ok := p.FindVariant(key); ok {
			return v, p, true
		}
	}
	return Variant{}, Product{}, false
}

// FindAddon returns the add-on with the given item key
func (c Catalog) FindAddon(key string) (Addon, bool) {
	for _, a := range c.Addons {
		if a.ID == key {
			return a, true
		}
	}
	return Addon{}, false
}

// FindItem resolves a sellable item key. Variants win over add-ons when a key collides.
func (c Catalog) FindItem(key string) (Item, bool) {
	if key == "" {
		return Item{}, false
	}
	if v, p, ok := c.FindVariant(key); ok {
		return Item{Key: v.ID, Kind: ItemKindVariant, Label: v.Label, Price: v.Price, ProductID: p.ID}, true
	}
	if a, ok := c.FindAddon(key); ok {
		return Item{Key: a.ID, Kind: ItemKindAddon, Label: a.Name, Price: a.Price}, true
	}
	return Item{}, false
}

// ItemKeys lists every sellable key in catalog order, variants first
func (c Catalog) ItemKeys() []string {
	var keys []string
	for _, p := range c.Products {
		for _, v := range p.Variants {
			keys = append(keys, v.ID)
		}
	}
	for _, a := range c.Addons {
		keys = append(keys, a.ID)
	}
	return keys
}

// DuplicateItemKeys returns every non-empty item key that occurs more than once,
// in order of first repetition
func (c Catalog) DuplicateItemKeys() []string {
	seen := make(map[string]int)
	var dups []string
	for _, k := range c.ItemKeys() {
		if k == "" {
			continue
		}
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}
