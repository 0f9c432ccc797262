package handlers

import (
	"html/template"
	"net/http"

	"github.com/openarc/ehive-shop/internal/chrome"
	"github.com/openarc/ehive-shop/internal/logger"
)

// NotFoundHandler renders the 404 page inside the site layout
type NotFoundHandler struct {
	template *template.Template
	chrome   *chrome.Builder
	logger   *logger.Logger
}

// NewNotFoundHandler creates a new NotFoundHandler
func NewNotFoundHandler(templateDir string, pages *chrome.Builder, logg *logger.Logger) (*NotFoundHandler, error) {
	tmpl, err := parsePage(templateDir, "notfound.html")
	if err != nil {
		return nil, err
	}
	return &NotFoundHandler{template: tmpl, chrome: pages, logger: logg}, nil
}

func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, h.template, "layout", http.StatusNotFound, pageChrome(h.chrome, r, "Nicht gefunden"))
}
