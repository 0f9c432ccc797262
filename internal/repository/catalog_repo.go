package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/openarc/ehive-shop/internal/models"
)

// CatalogRepository stores the catalog and hosted button ids in PostgreSQL
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepositoryWithDB creates a catalog repository on a specific database connection
func NewCatalogRepositoryWithDB(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

// SaveCatalog replaces the stored catalog and button mapping in one transaction.
// Positions keep the order the catalog was given in.
func (r *CatalogRepository) SaveCatalog(ctx context.Context, catalog models.Catalog, buttons map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		"DELETE FROM hosted_buttons",
		"DELETE FROM variants",
		"DELETE FROM addons",
		"DELETE FROM products",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	for i, p := range catalog.Products {
		bullets := p.Bullets
		if bullets == nil {
			bullets = []string{}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, position, name, maker, image, description_short, description_long, bullets)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, p.ID, i, p.Name, p.Maker, p.Image, p.ShortDescription, p.LongDescription, pq.Array(bullets))
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}

		for j, v := range p.Variants {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO variants (id, product_id, position, label, price)
				VALUES ($1, $2, $3, $4, $5)
			`, v.ID, p.ID, j, v.Label, v.Price)
			if err != nil {
				return fmt.Errorf("failed to insert variant %s: %w", v.ID, err)
			}
		}
	}

	for i, a := range catalog.Addons {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO addons (id, position, name, price, image)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, i, a.Name, a.Price, a.Image)
		if err != nil {
			return fmt.Errorf("failed to insert addon %s: %w", a.ID, err)
		}
	}

	for key, id := range buttons {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO hosted_buttons (item_key, button_id) VALUES ($1, $2)
		`, key, id)
		if err != nil {
			return fmt.Errorf("failed to insert hosted button for %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// LoadCatalog reads the stored catalog in display order
func (r *CatalogRepository) LoadCatalog(ctx context.Context) (models.Catalog, error) {
	var catalog models.Catalog

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, maker, image, description_short, description_long, bullets
		FROM products
		ORDER BY position
	`)
	if err != nil {
		return catalog, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Maker, &p.Image,
			&p.ShortDescription, &p.LongDescription, pq.Array(&p.Bullets)); err != nil {
			return catalog, fmt.Errorf("failed to scan product: %w", err)
		}
		index[p.ID] = len(catalog.Products)
		catalog.Products = append(catalog.Products, p)
	}
	if err := rows.Err(); err != nil {
		return catalog, fmt.Errorf("error iterating products: %w", err)
	}

	variantRows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, label, price
		FROM variants
		ORDER BY product_id, position
	`)
	if err != nil {
		return catalog, fmt.Errorf("failed to query variants: %w", err)
	}
	defer variantRows.Close()

	for variantRows.Next() {
		var v models.Variant
		var productID string
		if err := variantRows.Scan(&v.ID, &productID, &v.Label, &v.Price); err != nil {
			return catalog, fmt.Errorf("failed to scan variant: %w", err)
		}
		i, ok := index[productID]
		if !ok {
			continue
		}
		catalog.Products[i].Variants = append(catalog.Products[i].Variants, v)
	}
	if err := variantRows.Err(); err != nil {
		return catalog, fmt.Errorf("error iterating variants: %w", err)
	}

	addonRows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, image
		FROM addons
		ORDER BY position
	`)
	if err != nil {
		return catalog, fmt.Errorf("failed to query addons: %w", err)
	}
	defer addonRows.Close()

	for addonRows.Next() {
		var a models.Addon
		if err := addonRows.Scan(&a.ID, &a.Name, &a.Price, &a.Image); err != nil {
			return catalog, fmt.Errorf("failed to scan addon: %w", err)
		}
		catalog.Addons = append(catalog.Addons, a)
	}
	if err := addonRows.Err(); err != nil {
		return catalog, fmt.Errorf("error iterating addons: %w", err)
	}

	return catalog, nil
}

// LoadHostedButtons reads the item key to hosted button id mapping
func (r *CatalogRepository) LoadHostedButtons(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT item_key, button_id FROM hosted_buttons")
	if err != nil {
		return nil, fmt.Errorf("failed to query hosted buttons: %w", err)
	}
	defer rows.Close()

	buttons := make(map[string]string)
	for rows.Next() {
		var key, id string
		if err := rows.Scan(&key, &id); err != nil {
			return nil, fmt.Errorf("failed to scan hosted button: %w", err)
		}
		buttons[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hosted buttons: %w", err)
	}

	return buttons, nil
}
