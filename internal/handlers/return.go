package handlers

import (
	"html/template"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/openarc/ehive-shop/internal/chrome"
	"github.com/openarc/ehive-shop/internal/logger"
	"github.com/openarc/ehive-shop/internal/models"
)

// ReturnKind tells which PayPal redirect landed on the page
type ReturnKind string

const (
	ReturnSuccess ReturnKind = "success"
	ReturnCancel  ReturnKind = "cancel"
)

// ReturnData is what return.html renders
type ReturnData struct {
	chrome.Page
	Kind          ReturnKind
	Heading       string
	Message       string
	TransactionID string
	PaymentStatus string
	Amount        string
}

// ReturnHandler renders the landing pages PayPal redirects to after checkout
// (return) or when the shopper aborts it (cancel_return). Nothing is verified;
// PayPal stays the system of record for the payment.
type ReturnHandler struct {
	template *template.Template
	kind     ReturnKind
	chrome   *chrome.Builder
	logger   *logger.Logger
}

// NewReturnHandler creates a new ReturnHandler for one landing page kind
func NewReturnHandler(templateDir string, kind ReturnKind, pages *chrome.Builder, logg *logger.Logger) (*ReturnHandler, error) {
	tmpl, err := parsePage(templateDir, "return.html")
	if err != nil {
		return nil, err
	}

	return &ReturnHandler{
		template: tmpl,
		kind:     kind,
		chrome:   pages,
		logger:   logg,
	}, nil
}

// ServeHTTP handles GET and POST; PayPal posts the return when the button uses rm=2
func (h *ReturnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	data := ReturnData{
		Kind:          h.kind,
		TransactionID: r.Form.Get("tx"),
		PaymentStatus: r.Form.Get("st"),
		Amount:        formatReturnAmount(r.Form.Get("amt"), r.Form.Get("cc")),
	}

	switch h.kind {
	case ReturnCancel:
		data.Page = pageChrome(h.chrome, r, "Bestellung abgebrochen")
		data.Heading = "Bestellung abgebrochen"
		data.Message = "Der PayPal-Checkout wurde abgebrochen. Ihr Warenkorb bei PayPal bleibt erhalten."
	default:
		data.Page = pageChrome(h.chrome, r, "Vielen Dank")
		data.Heading = "Vielen Dank für Ihre Bestellung!"
		data.Message = "Ihre Zahlung wurde an PayPal übergeben. Die Bestätigung erhalten Sie per E-Mail von PayPal."
	}

	if h.logger != nil {
		ctx := h.logger.WithFields(r.Context(), map[string]any{
			"kind":           string(h.kind),
			"transaction_id": data.TransactionID,
			"payment_status": data.PaymentStatus,
		})
		h.logger.Info(ctx, "paypal.return")
	}

	render(w, r, h.logger, h.template, "layout", http.StatusOK, data)
}

func formatReturnAmount(amount, currencyCode string) string {
	if amount == "" {
		return ""
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	if currencyCode == "" {
		currencyCode = models.DefaultCurrency
	}
	return models.FormatMoney(value, currencyCode)
}
