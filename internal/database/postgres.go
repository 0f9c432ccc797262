package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/openarc/ehive-shop/internal/config"
)

// Open connects to PostgreSQL and verifies the connection
func Open(cfg *config.PostgresConfig) (*sql.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("postgres config is required")
	}

	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Catalog reads happen once at startup and on import
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
