package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/openarc/ehive-shop/internal/chrome"
	"github.com/openarc/ehive-shop/internal/logger"
	"github.com/openarc/ehive-shop/internal/models"
	"github.com/openarc/ehive-shop/internal/services"
)

const (
	layoutTemplate   = "layout.html"
	partialsTemplate = "partials.html"
)

// Storefront is the view-model source the page handlers render
type Storefront interface {
	Products() []models.Product
	ProductCard(sel services.Selection) (services.ProductCard, bool)
	AddonCards(quantities map[string]string) []services.AddonCard
	Purchase(itemKey, quantity string) services.FormResult
	ViewCart() services.FormResult
}

// ProductView is a product card plus the query parameter names its controls submit
type ProductView struct {
	services.ProductCard
	VariantParam string
	QtyParam     string
}

var templateFuncs = template.FuncMap{
	"staticURL": staticURL,
}

// staticURL maps catalog image paths onto the static file server
func staticURL(p string) string {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return "/static/" + p
}

// parsePage parses a page template together with the shared layout and partials
func parsePage(templateDir, page string) (*template.Template, error) {
	if templateDir == "" {
		return nil, fmt.Errorf("failed to parse template %s: template directory is empty", page)
	}
	tmpl, err := template.New(page).Funcs(templateFuncs).ParseFiles(
		filepath.Join(templateDir, layoutTemplate),
		filepath.Join(templateDir, partialsTemplate),
		filepath.Join(templateDir, page),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
	}
	return tmpl, nil
}

// render buffers the page; on a template error only the 500 reaches the client
func render(w http.ResponseWriter, r *http.Request, logg *logger.Logger, tmpl *template.Template, name string, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		if logg != nil {
			ctx := logg.WithField(r.Context(), "template", name)
			logg.Error(ctx, "template.render_failed", err)
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func methodAllowed(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// addonQuantities collects qty-<addon id> parameters
func addonQuantities(r *http.Request) map[string]string {
	quantities := make(map[string]string)
	for key, values := range r.URL.Query() {
		id, ok := strings.CutPrefix(key, "qty-")
		if !ok || id == "" || len(values) == 0 {
			continue
		}
		quantities[id] = values[0]
	}
	return quantities
}

func pageChrome(b *chrome.Builder, r *http.Request, title string) chrome.Page {
	if b == nil {
		return chrome.Page{Title: title}
	}
	return b.Page(r, title)
}
