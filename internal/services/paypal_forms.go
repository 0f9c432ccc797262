package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/openarc/ehive-shop/internal/config"
)

// PayPal endpoints for the hosted-button protocol
const (
	paypalLiveURL    = "https://www.paypal.com/cgi-bin/webscr"
	paypalSandboxURL = "https://www.sandbox.paypal.com/cgi-bin/webscr"
)

// Quantity bounds accepted by the PayPal cart
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Texts shown in place of a form when credentials are not configured
const (
	MissingButtonWarning   = "PayPal Button-ID fehlt. Bitte in shop.yaml eintragen."
	MissingMerchantWarning = "PayPal business/merchant ID fehlt. Bitte in shop.yaml eintragen."
)

// Submit labels
const (
	AddToCartLabel = "In den PayPal-Warenkorb"
	ViewCartLabel  = "PayPal-Warenkorb öffnen"
)

// Field is one hidden input
type Field struct {
	Name  string
	Value string
}

// Form describes a submittable PayPal form
type Form struct {
	Method      string
	Action      string
	Target      string
	Fields      []Field
	SubmitLabel string
}

// Value returns the value of the first field with the given name
func (f *Form) Value(name string) (string, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// FormResult is what a form slot shows: a form, a warning, or nothing at all
// when there is no selection. Form and Warning are never both set.
type FormResult struct {
	Form    *Form
	Warning string
}

// HasForm reports whether a submittable form was produced
func (r FormResult) HasForm() bool {
	return r.Form != nil
}

// IsEmpty reports whether the slot renders nothing
func (r FormResult) IsEmpty() bool {
	return r.Form == nil && r.Warning == ""
}

// FormRecorder observes every rendered form slot
type FormRecorder interface {
	RecordForm(kind, outcome string)
}

// Form kinds and outcomes reported to the FormRecorder
const (
	FormKindAddToCart = "add_to_cart"
	FormKindViewCart  = "view_cart"

	OutcomeForm        = "form"
	OutcomeWarning     = "warning"
	OutcomeNoSelection = "no_selection"
)

// FormBuilder builds hosted-button forms from the shop's PayPal settings
type FormBuilder interface {
	AddToCart(itemKey string, quantity int, extras ...Field) FormResult
	ViewCart() FormResult
	ActionURL() string
}

// PayPalFormBuilder implements FormBuilder
type PayPalFormBuilder struct {
	config   config.PayPalConfig
	urls     config.ReturnURLs
	recorder FormRecorder
}

// NewFormBuilder creates a form builder. urls are the already resolved return URLs;
// recorder may be nil.
func NewFormBuilder(cfg config.PayPalConfig, urls config.ReturnURLs, recorder FormRecorder) *PayPalFormBuilder {
	return &PayPalFormBuilder{
		config:   cfg,
		urls:     urls,
		recorder: recorder,
	}
}

// ActionURL returns the webscr endpoint for the configured environment
func (b *PayPalFormBuilder) ActionURL() string {
	return ActionURL(b.config.Environment)
}

// ActionURL returns the sandbox endpoint for "sandbox" and the live endpoint otherwise
func ActionURL(env string) string {
	if (config.PayPalConfig{Environment: env}).IsSandbox() {
		return paypalSandboxURL
	}
	return paypalLiveURL
}

// AddToCart builds the hosted add-to-cart form for an item key. A missing or
// placeholder button id yields a warning and no form.
func (b *PayPalFormBuilder) AddToCart(itemKey string, quantity int, extras ...Field) FormResult {
	buttonID := b.config.ButtonID(itemKey)
	if config.IsPlaceholderButtonID(buttonID) {
		b.record(FormKindAddToCart, OutcomeWarning)
		return FormResult{Warning: MissingButtonWarning}
	}

	form := b.newForm(AddToCartLabel)
	form.add("cmd", "_s-xclick")
	form.add("hosted_button_id", buttonID)
	form.addOptional("lc", b.config.Locale)
	form.addOptional("currency_code", b.config.CurrencyCode)
	form.addOptional("shopping_url", b.urls.Shopping)
	form.addOptional("return", b.urls.Return)
	form.addOptional("cancel_return", b.urls.Cancel)
	form.add("quantity", strconv.Itoa(clamp(quantity)))

	for _, extra := range extras {
		if extra.Name == "" {
			continue
		}
		form.addOptional(extra.Name, extra.Value)
	}

	b.record(FormKindAddToCart, OutcomeForm)
	return FormResult{Form: form}
}

// ViewCart builds the form that opens PayPal's hosted cart summary
func (b *PayPalFormBuilder) ViewCart() FormResult {
	merchantID := strings.TrimSpace(b.config.MerchantID)
	if config.IsPlaceholderMerchantID(merchantID) {
		b.record(FormKindViewCart, OutcomeWarning)
		return FormResult{Warning: MissingMerchantWarning}
	}

	form := b.newForm(ViewCartLabel)
	form.add("cmd", "_cart")
	form.add("business", merchantID)
	form.add("display", "1")
	form.addOptional("lc", b.config.Locale)
	form.addOptional("currency_code", b.config.CurrencyCode)

	b.record(FormKindViewCart, OutcomeForm)
	return FormResult{Form: form}
}

// RecordNoSelection reports a slot that stayed empty because nothing was selected
func (b *PayPalFormBuilder) RecordNoSelection() {
	b.record(FormKindAddToCart, OutcomeNoSelection)
}

func (b *PayPalFormBuilder) newForm(label string) *Form {
	return &Form{
		Method:      "post",
		Action:      b.ActionURL(),
		Target:      "_top",
		SubmitLabel: label,
	}
}

func (b *PayPalFormBuilder) record(kind, outcome string) {
	if b.recorder != nil {
		b.recorder.RecordForm(kind, outcome)
	}
}

func (f *Form) add(name, value string) {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

// addOptional skips empty values so no field is ever present-but-empty
func (f *Form) addOptional(name, value string) {
	if value == "" {
		return
	}
	f.add(name, value)
}

// ClampQuantity normalises raw quantity input: anything that is not a number
// becomes 1, fractions are floored, and the result is clamped to [1, 99].
func ClampQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return MinQuantity
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return MinQuantity
	}
	f = math.Floor(f)
	if f < MinQuantity {
		return MinQuantity
	}
	if f > MaxQuantity {
		return MaxQuantity
	}
	return int(f)
}

func clamp(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
