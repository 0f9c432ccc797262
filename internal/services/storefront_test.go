package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openarc/ehive-shop/internal/config"
	"github.com/openarc/ehive-shop/internal/models"
)

// MockFormBuilder is a mock implementation of FormBuilder for testing
type MockFormBuilder struct {
	AddToCartFunc func(string, int, ...Field) FormResult
	ViewCartFunc  func() FormResult
	noSelections  int
}

func (m *MockFormBuilder) AddToCart(itemKey string, quantity int, extras ...Field) FormResult {
	if m.AddToCartFunc != nil {
		return m.AddToCartFunc(itemKey, quantity, extras...)
	}
	return FormResult{Form: &Form{Fields: []Field{{Name: "hosted_button_id", Value: itemKey}}}}
}

func (m *MockFormBuilder) ViewCart() FormResult {
	if m.ViewCartFunc != nil {
		return m.ViewCartFunc()
	}
	return FormResult{Warning: MissingMerchantWarning}
}

func (m *MockFormBuilder) ActionURL() string {
	return paypalLiveURL
}

func (m *MockFormBuilder) RecordNoSelection() {
	m.noSelections++
}

func testShop() *config.ShopConfig {
	cfg := testPayPalConfig()
	return &config.ShopConfig{
		Brand:  models.Brand{Name: "eHive One"},
		PayPal: cfg,
		Catalog: models.Catalog{
			Products: []models.Product{
				{
					ID:   "ehive-one",
					Name: "eHive One",
					Variants: []models.Variant{
						{ID: "ehive-one-base", Label: "Basis (ohne NVMe)", Price: decimal.RequireFromString("399.00")},
						{ID: "ehive-one-nvme-256", Label: "Basis + NVMe 256GB", Price: decimal.RequireFromString("449.00")},
					},
				},
			},
			Addons: []models.Addon{
				{ID: "din-clip", Name: "DIN-Rail Clip", Price: decimal.RequireFromString("9.90")},
				{ID: "power-cable", Name: "DC Anschlusskabel", Price: decimal.RequireFromString("7.90")},
			},
		},
	}
}

func TestStorefront_ProductCard_Scenario(t *testing.T) {
	// GIVEN the nvme-256 variant priced 449.00 EUR with button ABC123XYZ
	shop := testShop()
	storefront := NewStorefront(shop, NewFormBuilder(shop.PayPal, shop.PayPal.URLs, nil))

	// WHEN the user selects it with quantity 3
	card, ok := storefront.ProductCard(Selection{ProductID: "ehive-one", VariantID: "ehive-one-nvme-256", Quantity: "3"})

	// THEN
	require.True(t, ok)
	require.True(t, card.HasSelection)
	assert.Equal(t, "449,00 €", card.Price)
	assert.Equal(t, 3, card.Quantity)

	require.True(t, card.Purchase.HasForm())
	id, _ := card.Purchase.Form.Value("hosted_button_id")
	assert.Equal(t, "ABC123XYZ", id)
	qty, _ := card.Purchase.Form.Value("quantity")
	assert.Equal(t, "3", qty)
	cmd, _ := card.Purchase.Form.Value("cmd")
	assert.Equal(t, "_s-xclick", cmd)
	os0, _ := card.Purchase.Form.Value("os0")
	assert.Equal(t, "Basis + NVMe 256GB", os0)

	require.Len(t, card.Options, 2)
	assert.False(t, card.Options[0].Selected)
	assert.True(t, card.Options[1].Selected)
	assert.Equal(t, "399,00 €", card.Options[0].Price)
}

func TestStorefront_ProductCard_DefaultVariant(t *testing.T) {
	mock := &MockFormBuilder{}
	storefront := NewStorefront(testShop(), mock)

	card, ok := storefront.ProductCard(Selection{ProductID: "ehive-one"})

	require.True(t, ok)
	assert.True(t, card.HasSelection)
	assert.Equal(t, "ehive-one-base", card.Variant.ID)
	assert.Equal(t, "399,00 €", card.Price)
	assert.Equal(t, 1, card.Quantity)
	assert.True(t, card.Options[0].Selected)
}

func TestStorefront_ProductCard_UnknownVariant(t *testing.T) {
	// GIVEN
	var addToCartCalls int
	mock := &MockFormBuilder{
		AddToCartFunc: func(string, int, ...Field) FormResult {
			addToCartCalls++
			return FormResult{}
		},
	}
	storefront := NewStorefront(testShop(), mock)

	// WHEN
	card, ok := storefront.ProductCard(Selection{ProductID: "ehive-one", VariantID: "ehive-one-nvme-9000", Quantity: "2"})

	// THEN the card renders without price or form
	require.True(t, ok)
	assert.False(t, card.HasSelection)
	assert.Empty(t, card.Price)
	assert.True(t, card.Purchase.IsEmpty())
	assert.Zero(t, addToCartCalls)
	assert.Equal(t, 1, mock.noSelections)
	for _, opt := range card.Options {
		assert.False(t, opt.Selected)
	}
}

func TestStorefront_ProductCard_UnknownProduct(t *testing.T) {
	storefront := NewStorefront(testShop(), &MockFormBuilder{})
	_, ok := storefront.ProductCard(Selection{ProductID: "missing"})
	assert.False(t, ok)
}

func TestStorefront_ProductCard_ClampsQuantityBeforeBuilding(t *testing.T) {
	var gotQty int
	var gotExtras []Field
	mock := &MockFormBuilder{
		AddToCartFunc: func(_ string, q int, extras ...Field) FormResult {
			gotQty = q
			gotExtras = extras
			return FormResult{}
		},
	}
	storefront := NewStorefront(testShop(), mock)

	card, _ := storefront.ProductCard(Selection{ProductID: "ehive-one", VariantID: "ehive-one-base", Quantity: "abc"})

	assert.Equal(t, 1, card.Quantity)
	assert.Equal(t, 1, gotQty)
	assert.Equal(t, []Field{{Name: "on0", Value: "variant"}, {Name: "os0", Value: "Basis (ohne NVMe)"}}, gotExtras)
}

func TestStorefront_AddonCards(t *testing.T) {
	// GIVEN
	shop := testShop()
	storefront := NewStorefront(shop, NewFormBuilder(shop.PayPal, shop.PayPal.URLs, nil))

	// WHEN
	cards := storefront.AddonCards(map[string]string{"din-clip": "4"})

	// THEN
	require.Len(t, cards, 2)

	assert.Equal(t, "din-clip", cards[0].Addon.ID)
	assert.Equal(t, "9,90 €", cards[0].Price)
	assert.Equal(t, 4, cards[0].Quantity)
	assert.Equal(t, MissingButtonWarning, cards[0].Purchase.Warning, "placeholder button id")

	assert.Equal(t, "power-cable", cards[1].Addon.ID)
	assert.Equal(t, 1, cards[1].Quantity)
	assert.Nil(t, cards[1].Purchase.Form)
}

func TestStorefront_AddonCard_NoTrackingFields(t *testing.T) {
	var gotExtras []Field
	mock := &MockFormBuilder{
		AddToCartFunc: func(_ string, _ int, extras ...Field) FormResult {
			gotExtras = extras
			return FormResult{Form: &Form{}}
		},
	}
	storefront := NewStorefront(testShop(), mock)

	card, ok := storefront.AddonCard("power-cable", "2")
	require.True(t, ok)
	assert.True(t, card.Purchase.HasForm())
	assert.Empty(t, gotExtras)

	_, ok = storefront.AddonCard("missing", "2")
	assert.False(t, ok)
}

func TestStorefront_Purchase(t *testing.T) {
	shop := testShop()
	storefront := NewStorefront(shop, NewFormBuilder(shop.PayPal, shop.PayPal.URLs, nil))

	t.Run("variant carries tracking option", func(t *testing.T) {
		result := storefront.Purchase("ehive-one-nvme-256", "150")
		require.True(t, result.HasForm())
		qty, _ := result.Form.Value("quantity")
		assert.Equal(t, "99", qty)
		on0, ok := result.Form.Value("on0")
		assert.True(t, ok)
		assert.Equal(t, "variant", on0)
	})

	t.Run("addon with placeholder warns", func(t *testing.T) {
		result := storefront.Purchase("din-clip", "1")
		assert.Equal(t, MissingButtonWarning, result.Warning)
	})

	t.Run("unknown key renders nothing", func(t *testing.T) {
		assert.True(t, storefront.Purchase("nope", "1").IsEmpty())
		assert.True(t, storefront.Purchase("ehive-one", "1").IsEmpty(), "product ids are not sellable")
	})
}

func TestStorefront_ViewCart(t *testing.T) {
	// GIVEN the merchant identifier was left at the template value
	shop := testShop()
	shop.PayPal.MerchantID = config.PlaceholderMerchantID
	storefront := NewStorefront(shop, NewFormBuilder(shop.PayPal, shop.PayPal.URLs, nil))

	// WHEN
	result := storefront.ViewCart()

	// THEN
	assert.Nil(t, result.Form)
	assert.Equal(t, "PayPal business/merchant ID fehlt. Bitte in shop.yaml eintragen.", result.Warning)
}

func TestStorefront_CurrencyFollowsConfig(t *testing.T) {
	shop := testShop()
	shop.PayPal.CurrencyCode = ""
	storefront := NewStorefront(shop, &MockFormBuilder{})

	card, _ := storefront.ProductCard(Selection{ProductID: "ehive-one"})
	assert.Equal(t, "399,00 €", card.Price, "EUR is the default")

	shop.PayPal.CurrencyCode = "USD"
	card, _ = storefront.ProductCard(Selection{ProductID: "ehive-one"})
	assert.Equal(t, "399,00 $", card.Price)
}
