package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/openarc/ehive-shop/internal/chrome"
	internalcli "github.com/openarc/ehive-shop/internal/cli"
	"github.com/openarc/ehive-shop/internal/config"
	"github.com/openarc/ehive-shop/internal/database"
	"github.com/openarc/ehive-shop/internal/handlers"
	"github.com/openarc/ehive-shop/internal/logger"
	"github.com/openarc/ehive-shop/internal/metrics"
	"github.com/openarc/ehive-shop/internal/repository"
	"github.com/openarc/ehive-shop/internal/services"
)

const serviceName = "storefront"

func newLogger(cfg config.ServerConfig) *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})
}

// loadShop reads the shop file and applies the PayPal environment overrides.
// With the postgres source the catalog and hosted buttons come from the database.
func loadShop(ctx context.Context, cfg config.ServerConfig, getenv func(string) string) (*config.ShopConfig, error) {
	shop, err := config.LoadShopConfig(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	overrides, err := config.LoadPayPalOverrides()
	if err != nil {
		return nil, err
	}
	shop.PayPal.Apply(overrides)

	if !cfg.UsesPostgres() {
		return shop, nil
	}

	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		return nil, fmt.Errorf("failed to load postgres config: %w", err)
	}
	db, err := database.Open(pgConfig)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	repo := repository.NewCatalogRepositoryWithDB(db)
	catalog, err := repo.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	buttons, err := repo.LoadHostedButtons(ctx)
	if err != nil {
		return nil, err
	}
	shop.Catalog = catalog
	shop.PayPal.HostedButtons = buttons
	return shop, nil
}

// newRegistry returns a registry with the runtime collectors registered
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// buildServerDependencies creates all dependencies needed for the server
func buildServerDependencies(cfg config.ServerConfig, shop *config.ShopConfig, logg *logger.Logger, reg *prometheus.Registry) (internalcli.ServerDependencies, error) {
	deps := internalcli.ServerDependencies{
		ServerConfig: cfg,
		Logger:       logg,
		Metrics:      reg,
	}

	urls, err := shop.PayPal.ResolveURLs(cfg.BaseURL)
	if err != nil {
		return deps, fmt.Errorf("failed to resolve paypal return urls: %w", err)
	}

	// Create service layer
	forms := services.NewFormBuilder(shop.PayPal, urls, metrics.NewFormMetrics(reg))
	storefront := services.NewStorefront(shop, forms)
	pages := chrome.NewBuilder(shop.DisplayBrand(), chrome.DefaultLinks(shop.Catalog.Products), nil)

	templateDir := cfg.TemplateDir

	notFound, err := handlers.NewNotFoundHandler(templateDir, pages, logg)
	if err != nil {
		return deps, fmt.Errorf("failed to create not found handler: %w", err)
	}
	deps.NotFoundHandler = notFound

	if deps.ShopHandler, err = handlers.NewShopHandler(templateDir, storefront, pages, logg); err != nil {
		return deps, fmt.Errorf("failed to create shop handler: %w", err)
	}
	if deps.ProductHandler, err = handlers.NewProductHandler(templateDir, storefront, pages, notFound, logg); err != nil {
		return deps, fmt.Errorf("failed to create product handler: %w", err)
	}
	if deps.CartHandler, err = handlers.NewCartHandler(templateDir, storefront, pages, logg); err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	if deps.SuccessHandler, err = handlers.NewReturnHandler(templateDir, handlers.ReturnSuccess, pages, logg); err != nil {
		return deps, fmt.Errorf("failed to create success handler: %w", err)
	}
	if deps.CancelHandler, err = handlers.NewReturnHandler(templateDir, handlers.ReturnCancel, pages, logg); err != nil {
		return deps, fmt.Errorf("failed to create cancel handler: %w", err)
	}
	if deps.FragmentHandler, err = handlers.NewFragmentHandler(templateDir, storefront, logg); err != nil {
		return deps, fmt.Errorf("failed to create fragment handler: %w", err)
	}

	return deps, nil
}
