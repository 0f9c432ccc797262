package services

import (
	"github.com/openarc/ehive-shop/internal/config"
	"github.com/openarc/ehive-shop/internal/models"
)

// Selection is the state of one product card's controls
type Selection struct {
	ProductID string
	VariantID string
	Quantity  string
}

// VariantOption is one entry of a variant selector
type VariantOption struct {
	ID       string
	Label    string
	Price    string
	Selected bool
}

// ProductCard is everything a product card or detail page renders
type ProductCard struct {
	Product      models.Product
	Options      []VariantOption
	Variant      models.Variant
	HasSelection bool
	Price        string
	Quantity     int
	Purchase     FormResult
}

// AddonCard is everything an add-on card renders
type AddonCard struct {
	Addon    models.Addon
	Price    string
	Quantity int
	Purchase FormResult
}

// Storefront turns selections into view models. It holds no mutable state;
// every call builds a fresh form.
type Storefront struct {
	shop  *config.ShopConfig
	forms FormBuilder
}

// NewStorefront creates a storefront over an immutable shop configuration
func NewStorefront(shop *config.ShopConfig, forms FormBuilder) *Storefront {
	return &Storefront{
		shop:  shop,
		forms: forms,
	}
}

// Shop returns the configuration the storefront renders
func (s *Storefront) Shop() *config.ShopConfig {
	return s.shop
}

// Products returns the catalog's products in order
func (s *Storefront) Products() []models.Product {
	return s.shop.Catalog.Products
}

// ProductCard resolves the selection of one product. An empty variant id means the
// selector's default (first) option; an unknown one means no selection.
func (s *Storefront) ProductCard(sel Selection) (ProductCard, bool) {
	product, ok := s.shop.Catalog.FindProduct(sel.ProductID)
	if !ok {
		return ProductCard{}, false
	}

	card := ProductCard{
		Product:  product,
		Quantity: ClampQuantity(sel.Quantity),
	}

	var variant models.Variant
	var found bool
	if sel.VariantID == "" {
		variant, found = product.DefaultVariant()
	} else {
		variant, found = product.FindVariant(sel.VariantID)
	}

	card.Options = s.variantOptions(product, variant.ID, found)

	if !found {
		s.recordNoSelection()
		return card, true
	}

	card.Variant = variant
	card.HasSelection = true
	card.Price = s.money(variant)
	card.Purchase = s.forms.AddToCart(variant.ID, card.Quantity, trackingFields(variant.Label)...)
	return card, true
}

// AddonCards builds every add-on card; quantities maps add-on id to raw input
func (s *Storefront) AddonCards(quantities map[string]string) []AddonCard {
	cards := make([]AddonCard, 0, len(s.shop.Catalog.Addons))
	for _, a := range s.shop.Catalog.Addons {
		card, _ := s.AddonCard(a.ID, quantities[a.ID])
		cards = append(cards, card)
	}
	return cards
}

// AddonCard builds one add-on card
func (s *Storefront) AddonCard(addonID, quantity string) (AddonCard, bool) {
	addon, ok := s.shop.Catalog.FindAddon(addonID)
	if !ok {
		return AddonCard{}, false
	}
	qty := ClampQuantity(quantity)
	return AddonCard{
		Addon:    addon,
		Price:    models.FormatMoney(addon.Price, s.shop.Currency()),
		Quantity: qty,
		Purchase: s.forms.AddToCart(addon.ID, qty),
	}, true
}

// Purchase renders the form slot for any sellable item key. Variants carry their
// label as tracking option; unknown keys render nothing.
func (s *Storefront) Purchase(itemKey, quantity string) FormResult {
	item, ok := s.shop.Catalog.FindItem(itemKey)
	if !ok {
		s.recordNoSelection()
		return FormResult{}
	}

	qty := ClampQuantity(quantity)
	if item.Kind == models.ItemKindVariant {
		return s.forms.AddToCart(item.Key, qty, trackingFields(item.Label)...)
	}
	return s.forms.AddToCart(item.Key, qty)
}

// ViewCart renders the cart page's form slot
func (s *Storefront) ViewCart() FormResult {
	return s.forms.ViewCart()
}

func (s *Storefront) variantOptions(p models.Product, selectedID string, found bool) []VariantOption {
	opts := make([]VariantOption, 0, len(p.Variants))
	for _, v := range p.Variants {
		opts = append(opts, VariantOption{
			ID:       v.ID,
			Label:    v.Label,
			Price:    s.money(v),
			Selected: found && v.ID == selectedID,
		})
	}
	return opts
}

func (s *Storefront) money(v models.Variant) string {
	return models.FormatMoney(v.Price, s.shop.Currency())
}

func (s *Storefront) recordNoSelection() {
	if r, ok := s.forms.(interface{ RecordNoSelection() }); ok {
		r.RecordNoSelection()
	}
}

// trackingFields passes the chosen variant to PayPal as option 0
func trackingFields(label string) []Field {
	return []Field{
		{Name: "on0", Value: "variant"},
		{Name: "os0", Value: label},
	}
}
