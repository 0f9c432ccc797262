package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/openarc/ehive-shop/internal/chrome"
	"github.com/openarc/ehive-shop/internal/config"
	"github.com/openarc/ehive-shop/internal/logger"
	"github.com/openarc/ehive-shop/internal/models"
	"github.com/openarc/ehive-shop/internal/services"
)

const testTemplateDir = "../../templates"

func testShop() *config.ShopConfig {
	return &config.ShopConfig{
		Brand: models.Brand{Name: "eHive One", Subtitle: "OpenArc Shop", ContactEmail: "sales@example.com"},
		PayPal: config.PayPalConfig{
			Environment:  "live",
			MerchantID:   "MERCHANT123",
			Locale:       "DE",
			CurrencyCode: "EUR",
			URLs: config.ReturnURLs{
				Shopping: "https://shop.example.com/shop",
				Return:   "https://shop.example.com/success",
				Cancel:   "https://shop.example.com/cancel",
			},
			HostedButtons: map[string]string{
				"ehive-one-base":     "BASE000001",
				"ehive-one-nvme-256": "ABC123XYZ",
				"din-clip":           "PASTE_HOSTED_BUTTON_ID_HERE",
			},
		},
		Catalog: models.Catalog{
			Products: []models.Product{
				{
					ID:               "ehive-one",
					Name:             "eHive One",
					Maker:            "OpenArc",
					Image:            "img/ehive-one.svg",
					ShortDescription: "Edge-Gateway für die Hutschiene",
					LongDescription:  "Kompaktes Gateway mit 12-30VDC Eingang.",
					Bullets:          []string{"12-30VDC", "IP20"},
					Variants: []models.Variant{
						{ID: "ehive-one-base", Label: "Basis (ohne NVMe)", Price: decimal.RequireFromString("399.00")},
						{ID: "ehive-one-nvme-256", Label: "Basis + NVMe 256GB", Price: decimal.RequireFromString("449.00")},
					},
				},
			},
			Addons: []models.Addon{
				{ID: "din-clip", Name: "DIN-Rail Clip", Price: decimal.RequireFromString("9.90"), Image: "img/accessory.svg"},
			},
		},
	}
}

func newTestStorefront(shop *config.ShopConfig) *services.Storefront {
	return services.NewStorefront(shop, services.NewFormBuilder(shop.PayPal, shop.PayPal.URLs, nil))
}

func newTestChrome(shop *config.ShopConfig) *chrome.Builder {
	fixed := func() time.Time { return time.Date(2030, time.January, 15, 12, 0, 0, 0, time.UTC) }
	return chrome.NewBuilder(shop.DisplayBrand(), chrome.DefaultLinks(shop.Catalog.Products), fixed)
}

// withURLParam attaches a chi route parameter the way the router would
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

var testLogger = logger.Nop()
