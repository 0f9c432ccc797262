package handlers

import (
	"html/template"
	"net/http"

	"github.com/openarc/ehive-shop/internal/chrome"
	"github.com/openarc/ehive-shop/internal/logger"
	"github.com/openarc/ehive-shop/internal/services"
)

// ShopData is what shop.html renders
type ShopData struct {
	chrome.Page
	Products []ProductView
	Addons   []services.AddonCard
}

// ShopHandler renders the catalog overview with a card per product and add-on
type ShopHandler struct {
	template   *template.Template
	storefront Storefront
	chrome     *chrome.Builder
	logger     *logger.Logger
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(templateDir string, storefront Storefront, pages *chrome.Builder, logg *logger.Logger) (*ShopHandler, error) {
	tmpl, err := parsePage(templateDir, "shop.html")
	if err != nil {
		return nil, err
	}

	return &ShopHandler{
		template:   tmpl,
		storefront: storefront,
		chrome:     pages,
		logger:     logg,
	}, nil
}

// ServeHTTP handles GET / and GET /shop. Each product card reads its own
// variant-<id> and qty-<id> parameters.
func (h *ShopHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	products := h.storefront.Products()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		variantParam, qtyParam := "variant-"+p.ID, "qty-"+p.ID
		card, ok := h.storefront.ProductCard(services.Selection{
			ProductID: p.ID,
			VariantID: q.Get(variantParam),
			Quantity:  q.Get(qtyParam),
		})
		if !ok {
			continue
		}
		views = append(views, ProductView{
			ProductCard:  card,
			VariantParam: variantParam,
			QtyParam:     qtyParam,
		})
	}

	data := ShopData{
		Page:     pageChrome(h.chrome, r, "Shop"),
		Products: views,
		Addons:   h.storefront.AddonCards(addonQuantities(r)),
	}
	render(w, r, h.logger, h.template, "layout", http.StatusOK, data)
}
