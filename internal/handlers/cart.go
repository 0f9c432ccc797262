package handlers

import (
	"html/template"
	"net/http"

	"github.com/openarc/ehive-shop/internal/chrome"
	"github.com/openarc/ehive-shop/internal/logger"
	"github.com/openarc/ehive-shop/internal/services"
)

// CartData is what cart.html renders
type CartData struct {
	chrome.Page
	Cart services.FormResult
}

// CartHandler renders the page that hands the shopper over to PayPal's cart
type CartHandler struct {
	template   *template.Template
	storefront Storefront
	chrome     *chrome.Builder
	logger     *logger.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(templateDir string, storefront Storefront, pages *chrome.Builder, logg *logger.Logger) (*CartHandler, error) {
	tmpl, err := parsePage(templateDir, "cart.html")
	if err != nil {
		return nil, err
	}

	return &CartHandler{
		template:   tmpl,
		storefront: storefront,
		chrome:     pages,
		logger:     logg,
	}, nil
}

// ServeHTTP handles GET /cart
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	data := CartData{
		Page: pageChrome(h.chrome, r, "Warenkorb"),
		Cart: h.storefront.ViewCart(),
	}
	render(w, r, h.logger, h.template, "layout", http.StatusOK, data)
}
