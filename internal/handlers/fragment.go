package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/openarc/ehive-shop/internal/logger"
)

// FragmentHandler renders only the purchase slot for one item key, so the page
// script can swap it in after a selection change
type FragmentHandler struct {
	template   *template.Template
	storefront Storefront
	logger     *logger.Logger
}

// NewFragmentHandler creates a new FragmentHandler
func NewFragmentHandler(templateDir string, storefront Storefront, logg *logger.Logger) (*FragmentHandler, error) {
	tmpl, err := template.New(partialsTemplate).Funcs(templateFuncs).ParseFiles(filepath.Join(templateDir, partialsTemplate))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", partialsTemplate, err)
	}

	return &FragmentHandler{
		template:   tmpl,
		storefront: storefront,
		logger:     logg,
	}, nil
}

// ServeHTTP handles GET /fragments/purchase?item=<item key>&qty=<n>.
// Unknown item keys render an empty slot.
func (h *FragmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	item := q.Get("item")
	if item == "" {
		http.Error(w, "Missing item parameter", http.StatusBadRequest)
		return
	}

	result := h.storefront.Purchase(item, q.Get("qty"))

	w.Header().Set("Cache-Control", "no-store")
	render(w, r, h.logger, h.template, "purchase", http.StatusOK, result)
}
