package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// PayPal environments
const (
	PayPalEnvLive    = "live"
	PayPalEnvSandbox = "sandbox"
)

// Template defaults shipped in shop.yaml that mean "not configured yet"
const (
	PlaceholderButtonID   = "PASTE_HOSTED_BUTTON_ID_HERE"
	PlaceholderMerchantID = "YOUR_PAYPAL_MERCHANT_ID"
)

// Hosted button ids shorter than this are treated as unconfigured
const minButtonIDLength = 6

// ReturnURLs are the pages PayPal sends buyers back to
type ReturnURLs struct {
	Shopping string `yaml:"shopping_url"`
	Return   string `yaml:"return_url"`
	Cancel   string `yaml:"cancel_return_url"`
}

// PayPalConfig holds the hosted-button integration settings
type PayPalConfig struct {
	Environment   string            `yaml:"env"`
	MerchantID    string            `yaml:"business"`
	Locale        string            `yaml:"locale"`
	CurrencyCode  string            `yaml:"currency"`
	URLs          ReturnURLs        `yaml:"urls"`
	HostedButtons map[string]string `yaml:"hosted_buttons"`
}

// PayPalOverrides lets deployments swap credentials without editing shop.yaml
type PayPalOverrides struct {
	Environment  string `envconfig:"PAYPAL_ENV"`
	MerchantID   string `envconfig:"PAYPAL_BUSINESS"`
	Locale       string `envconfig:"PAYPAL_LOCALE"`
	CurrencyCode string `envconfig:"PAYPAL_CURRENCY"`
}

// LoadPayPalOverrides reads STOREFRONT_PAYPAL_* (or bare PAYPAL_*) variables
func LoadPayPalOverrides() (PayPalOverrides, error) {
	var o PayPalOverrides
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return o, fmt.Errorf("parsing paypal overrides: %w", err)
	}
	return o, nil
}

// Apply replaces every field for which the override is non-empty
func (c *PayPalConfig) Apply(o PayPalOverrides) {
	if o.Environment != "" {
		c.Environment = o.Environment
	}
	if o.MerchantID != "" {
		c.MerchantID = o.MerchantID
	}
	if o.Locale != "" {
		c.Locale = o.Locale
	}
	if o.CurrencyCode != "" {
		c.CurrencyCode = o.CurrencyCode
	}
}

// IsSandbox reports whether forms should target the sandbox endpoint.
// Anything other than "sandbox" means live.
func (c PayPalConfig) IsSandbox() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), PayPalEnvSandbox)
}

// ButtonID returns the hosted button id configured for an item key, or ""
func (c PayPalConfig) ButtonID(itemKey string) string {
	if c.HostedButtons == nil {
		return ""
	}
	return strings.TrimSpace(c.HostedButtons[itemKey])
}

// IsPlaceholderButtonID reports whether a hosted button id is missing or still the template value
func IsPlaceholderButtonID(id string) bool {
	return id == "" || strings.EqualFold(id, PlaceholderButtonID) || len(id) < minButtonIDLength
}

// IsPlaceholderMerchantID reports whether the merchant id is missing or still the template value
func IsPlaceholderMerchantID(id string) bool {
	return id == "" || strings.EqualFold(id, PlaceholderMerchantID)
}

// ResolveURLs makes relative return URLs absolute against baseURL.
// With an empty baseURL the configured values pass through unchanged.
func (c PayPalConfig) ResolveURLs(baseURL string) (ReturnURLs, error) {
	if baseURL == "" {
		return c.URLs, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return c.URLs, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if !base.IsAbs() {
		return c.URLs, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	resolve := func(raw string) (string, error) {
		if raw == "" {
			return "", nil
		}
		ref, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("invalid return url %q: %w", raw, err)
		}
		return base.ResolveReference(ref).String(), nil
	}

	var out ReturnURLs
	if out.Shopping, err = resolve(c.URLs.Shopping); err != nil {
		return c.URLs, err
	}
	if out.Return, err = resolve(c.URLs.Return); err != nil {
		return c.URLs, err
	}
	if out.Cancel, err = resolve(c.URLs.Cancel); err != nil {
		return c.URLs, err
	}
	return out, nil
}
