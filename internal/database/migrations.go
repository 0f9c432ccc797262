package database

import (
	"database/sql"
	"fmt"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS products (
	id VARCHAR(255) PRIMARY KEY,
	position INTEGER NOT NULL,
	name VARCHAR(255) NOT NULL,
	maker VARCHAR(255) NOT NULL DEFAULT '',
	image VARCHAR(512) NOT NULL DEFAULT '',
	description_short TEXT NOT NULL DEFAULT '',
	description_long TEXT NOT NULL DEFAULT '',
	bullets TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS variants (
	id VARCHAR(255) PRIMARY KEY,
	product_id VARCHAR(255) NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	label VARCHAR(255) NOT NULL,
	price NUMERIC NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_id, position);

CREATE TABLE IF NOT EXISTS addons (
	id VARCHAR(255) PRIMARY KEY,
	position INTEGER NOT NULL,
	name VARCHAR(255) NOT NULL,
	price NUMERIC NOT NULL,
	image VARCHAR(512) NOT NULL DEFAULT ''
);

-- older tables stored prices at a fixed scale of 2
ALTER TABLE variants ALTER COLUMN price TYPE NUMERIC;
ALTER TABLE addons ALTER COLUMN price TYPE NUMERIC;

CREATE TABLE IF NOT EXISTS hosted_buttons (
	item_key VARCHAR(255) PRIMARY KEY,
	button_id VARCHAR(255) NOT NULL
);
`

// RunMigrations creates the catalog tables
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(catalogSchema); err != nil {
		return fmt.Errorf("failed to create catalog tables: %w", err)
	}

	return nil
}
