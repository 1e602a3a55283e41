package sqlstore

import (
	"context"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		item_sku VARCHAR(64) PRIMARY KEY,
		item_price NUMERIC(12,2) NOT NULL,
		release_date TIMESTAMP NOT NULL,
		date_created TIMESTAMP NOT NULL,
		date_updated TIMESTAMP NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		item_popularity DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGSERIAL PRIMARY KEY,
		user_name TEXT NOT NULL,
		user_address TEXT NOT NULL,
		user_country TEXT NOT NULL,
		user_email TEXT NOT NULL,
		date_created TIMESTAMP NOT NULL,
		date_updated TIMESTAMP NOT NULL,
		user_popularity DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_line_id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users (user_id),
		item_sku VARCHAR(64) NOT NULL REFERENCES products (item_sku),
		qty INTEGER NOT NULL,
		item_price NUMERIC(12,2) NOT NULL,
		date_created TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_id ON orders (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_date_created ON orders (date_created)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		item_sku VARCHAR(64) PRIMARY KEY,
		item_price DECIMAL(12,2) NOT NULL,
		release_date DATETIME NOT NULL,
		date_created DATETIME NOT NULL,
		date_updated DATETIME NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		item_popularity DOUBLE NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_name VARCHAR(255) NOT NULL,
		user_address VARCHAR(512) NOT NULL,
		user_country VARCHAR(128) NOT NULL,
		user_email VARCHAR(255) NOT NULL,
		date_created DATETIME NOT NULL,
		date_updated DATETIME NOT NULL,
		user_popularity DOUBLE NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_line_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		item_sku VARCHAR(64) NOT NULL,
		qty INT NOT NULL,
		item_price DECIMAL(12,2) NOT NULL,
		date_created DATETIME NOT NULL,
		INDEX idx_orders_order_id (order_id),
		INDEX idx_orders_date_created (date_created),
		FOREIGN KEY (user_id) REFERENCES users (user_id),
		FOREIGN KEY (item_sku) REFERENCES products (item_sku)
	)`,
}

// SQLite keeps prices as TEXT so decimals round-trip exactly.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		item_sku TEXT PRIMARY KEY,
		item_price TEXT NOT NULL,
		release_date DATETIME NOT NULL,
		date_created DATETIME NOT NULL,
		date_updated DATETIME NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 1,
		item_popularity REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_name TEXT NOT NULL,
		user_address TEXT NOT NULL,
		user_country TEXT NOT NULL,
		user_email TEXT NOT NULL,
		date_created DATETIME NOT NULL,
		date_updated DATETIME NOT NULL,
		user_popularity REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_line_id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users (user_id),
		item_sku TEXT NOT NULL REFERENCES products (item_sku),
		qty INTEGER NOT NULL,
		item_price TEXT NOT NULL,
		date_created DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_id ON orders (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_date_created ON orders (date_created)`,
}

// EnsureSchema creates the products, users and orders tables if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
