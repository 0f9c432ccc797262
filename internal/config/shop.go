package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openarc/ehive-shop/internal/models"
)

// Display fallbacks for an empty brand section
const (
	DefaultBrandName    = "eHive One"
	DefaultBrandTagline = "OpenArc Shop"
	DefaultContactEmail = "sales@example.com"
)

// ShopConfig is the whole declarative shop: brand text, PayPal settings and catalog.
// It is built once at startup and only read afterwards.
type ShopConfig struct {
	Brand   models.Brand   `yaml:"brand"`
	PayPal  PayPalConfig   `yaml:"paypal"`
	Catalog models.Catalog `yaml:"catalog"`
}

// LoadShopConfig reads and parses a shop YAML file
func LoadShopConfig(path string) (*ShopConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shop config: %w", err)
	}

	shop, err := ParseShopConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shop config %s: %w", path, err)
	}
	return shop, nil
}

// ParseShopConfig decodes shop YAML. Unknown keys are rejected so typos surface early.
func ParseShopConfig(data []byte) (*ShopConfig, error) {
	var shop ShopConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&shop); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if shop.PayPal.HostedButtons == nil {
		shop.PayPal.HostedButtons = map[string]string{}
	}
	return &shop, nil
}

// DisplayBrand returns the brand with empty fields replaced by the shop defaults
func (s *ShopConfig) DisplayBrand() models.Brand {
	b := s.Brand
	if b.Name == "" {
		b.Name = DefaultBrandName
	}
	if b.Subtitle == "" {
		b.Subtitle = DefaultBrandTagline
	}
	if b.ContactEmail == "" {
		b.ContactEmail = DefaultContactEmail
	}
	return b
}

// Currency returns the configured currency code or the default
func (s *ShopConfig) Currency() string {
	if s.PayPal.CurrencyCode == "" {
		return models.DefaultCurrency
	}
	return s.PayPal.CurrencyCode
}
