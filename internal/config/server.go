package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every storefront variable. Bare names work as a fallback.
const EnvPrefix = "STOREFRONT"

// Catalog sources
const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port          string `envconfig:"PORT" default:"8080"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"json"`
	CatalogPath   string `envconfig:"CATALOG_PATH" default:"config/shop.yaml"`
	CatalogSource string `envconfig:"CATALOG_SOURCE" default:"file"`
	TemplateDir   string `envconfig:"TEMPLATE_DIR" default:"templates"`
	StaticDir     string `envconfig:"STATIC_DIR" default:"static"`
	BaseURL       string `envconfig:"BASE_URL"`

	// AllowedOrigins may fetch purchase fragments cross-origin, e.g. a static
	// copy of the shop pages hosted elsewhere. Comma separated.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing server config: %w", err)
	}

	cfg.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.CatalogSource))
	switch cfg.CatalogSource {
	case CatalogSourceFile, CatalogSourcePostgres:
	default:
		return cfg, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q",
			CatalogSourceFile, CatalogSourcePostgres, cfg.CatalogSource)
	}

	return cfg, nil
}

// UsesPostgres reports whether the catalog is read from the database
func (c ServerConfig) UsesPostgres() bool {
	return c.CatalogSource == CatalogSourcePostgres
}
