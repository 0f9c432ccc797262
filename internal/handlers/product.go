package handlers

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openarc/ehive-shop/internal/chrome"
	"github.com/openarc/ehive-shop/internal/logger"
	"github.com/openarc/ehive-shop/internal/services"
)

// ProductData is what product.html renders
type ProductData struct {
	chrome.Page
	Product ProductView
	Addons  []services.AddonCard
}

// ProductHandler handles the product detail page requests
type ProductHandler struct {
	template   *template.Template
	storefront Storefront
	chrome     *chrome.Builder
	notFound   http.Handler
	logger     *logger.Logger
}

// NewProductHandler creates a new ProductHandler. notFound renders unknown product ids.
func NewProductHandler(templateDir string, storefront Storefront, pages *chrome.Builder, notFound http.Handler, logg *logger.Logger) (*ProductHandler, error) {
	tmpl, err := parsePage(templateDir, "product.html")
	if err != nil {
		return nil, err
	}
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}

	return &ProductHandler{
		template:   tmpl,
		storefront: storefront,
		chrome:     pages,
		notFound:   notFound,
		logger:     logg,
	}, nil
}

// ServeHTTP handles GET /products/{id}?variant=&qty=
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	card, ok := h.storefront.ProductCard(services.Selection{
		ProductID: chi.URLParam(r, "id"),
		VariantID: q.Get("variant"),
		Quantity:  q.Get("qty"),
	})
	if !ok {
		h.notFound.ServeHTTP(w, r)
		return
	}

	data := ProductData{
		Page: pageChrome(h.chrome, r, card.Product.Name),
		Product: ProductView{
			ProductCard:  card,
			VariantParam: "variant",
			QtyParam:     "qty",
		},
		Addons: h.storefront.AddonCards(addonQuantities(r)),
	}
	render(w, r, h.logger, h.template, "layout", http.StatusOK, data)
}
