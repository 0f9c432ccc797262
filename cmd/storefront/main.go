package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	internalcli "github.com/openarc/ehive-shop/internal/cli"
	"github.com/openarc/ehive-shop/internal/config"
	"github.com/openarc/ehive-shop/internal/database"
	"github.com/openarc/ehive-shop/internal/repository"
)

var version = "0.1.0"

var catalogFlag = &cli.StringFlag{
	Name:    "catalog",
	Aliases: []string{"c"},
	Usage:   "path to the shop YAML file (overrides CATALOG_PATH)",
}

// serverConfig loads the environment and applies the --catalog flag
func serverConfig(c *cli.Context) (config.ServerConfig, error) {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return cfg, err
	}
	if path := c.String(catalogFlag.Name); path != "" {
		cfg.CatalogPath = path
	}
	return cfg, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the storefront web server",
		Flags: []cli.Flag{catalogFlag},
		Action: func(c *cli.Context) error {
			cfg, err := serverConfig(c)
			if err != nil {
				return err
			}
			logg := newLogger(cfg)
			ctx := logg.WithFields(c.Context, map[string]any{
				"catalog_source": cfg.CatalogSource,
				"catalog_path":   cfg.CatalogPath,
			})

			shop, err := loadShop(ctx, cfg, os.Getenv)
			if err != nil {
				return fmt.Errorf("failed to load shop: %w", err)
			}

			for _, issue := range config.Inspect(shop) {
				logg.Warn(logg.WithFields(ctx, map[string]any{
					"field": issue.Field,
					"issue": issue.Message,
				}), "config.issue")
			}

			deps, err := buildServerDependencies(cfg, shop, logg, newRegistry())
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// ValidateCommand returns the validate command
func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check the shop configuration and list every issue",
		Flags: []cli.Flag{catalogFlag},
		Action: func(c *cli.Context) error {
			cfg, err := serverConfig(c)
			if err != nil {
				return err
			}

			shop, err := loadShop(c.Context, cfg, os.Getenv)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to load shop: %v", err), 2)
			}

			issues := config.Inspect(shop)
			for _, issue := range issues {
				fmt.Fprintln(c.App.Writer, issue.String())
			}
			if len(issues) > 0 {
				return cli.Exit(fmt.Sprintf("%d issue(s) found", len(issues)), 1)
			}

			fmt.Fprintln(c.App.Writer, "configuration ok")
			return nil
		},
	}
}

// ImportCommand returns the import command
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Write the shop file's catalog and hosted buttons into PostgreSQL",
		Flags: []cli.Flag{catalogFlag},
		Action: func(c *cli.Context) error {
			cfg, err := serverConfig(c)
			if err != nil {
				return err
			}
			logg := newLogger(cfg)

			shop, err := config.LoadShopConfig(cfg.CatalogPath)
			if err != nil {
				return err
			}

			pgConfig, err := config.LoadPostgresConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("failed to load postgres config: %w", err)
			}
			db, err := database.Open(pgConfig)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			if err := database.RunMigrations(db); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			repo := repository.NewCatalogRepositoryWithDB(db)
			if err := repo.SaveCatalog(c.Context, shop.Catalog, shop.PayPal.HostedButtons); err != nil {
				return err
			}

			logg.Info(logg.WithFields(c.Context, map[string]any{
				"products": len(shop.Catalog.Products),
				"addons":   len(shop.Catalog.Addons),
				"buttons":  len(shop.PayPal.HostedButtons),
			}), "catalog.imported")
			return nil
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "storefront",
		Usage:   "eHive One storefront with PayPal hosted buttons",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			ValidateCommand(),
			ImportCommand(),
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: reading .env: %v\n", err)
	}

	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
