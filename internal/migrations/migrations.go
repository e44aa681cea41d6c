package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the POS backend. Statements
// are idempotent so the binary can run them on every start.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT 'Other',
			price_per_unit DOUBLE PRECISION NOT NULL DEFAULT 0,
			unit TEXT NOT NULL DEFAULT 'L',
			purchase_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			stock DOUBLE PRECISION NOT NULL DEFAULT 0
		);`,
		`ALTER TABLE products ADD COLUMN IF NOT EXISTS category TEXT NOT NULL DEFAULT 'Other';`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			card_number TEXT NOT NULL UNIQUE,
			barcode TEXT,
			mobile TEXT NOT NULL DEFAULT '',
			points BIGINT NOT NULL DEFAULT 0
		);`,
		`ALTER TABLE customers ADD COLUMN IF NOT EXISTS barcode TEXT;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS customers_barcode_key ON customers(barcode);`,
		`CREATE TABLE IF NOT EXISTS redeemable_products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			points_required BIGINT NOT NULL DEFAULT 0,
			stock BIGINT NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id SERIAL PRIMARY KEY,
			product_id INTEGER NOT NULL REFERENCES products(id),
			customer_id INTEGER REFERENCES customers(id),
			units DOUBLE PRECISION NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			purchase_cost DOUBLE PRECISION NOT NULL,
			profit DOUBLE PRECISION NOT NULL,
			points_earned BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS redemptions (
			id SERIAL PRIMARY KEY,
			customer_id INTEGER NOT NULL REFERENCES customers(id),
			points_spent BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS redemption_items (
			id SERIAL PRIMARY KEY,
			redemption_id INTEGER NOT NULL REFERENCES redemptions(id),
			redeemable_product_id INTEGER NOT NULL REFERENCES redeemable_products(id),
			quantity BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS auth_users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS auth_sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER REFERENCES auth_users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS push_notifications (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
