// Package testutil provides an in-memory sqlite database wired with the POS
// schema, so store and workflow tests exercise the real SQL without a
// Postgres server.
package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Schema mirrors internal/migrations in sqlite dialect. Timestamps are TEXT
// because the store writes RFC3339 UTC strings.
var schema = []string{
	`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL DEFAULT 'Other',
		price_per_unit REAL NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT 'L',
		purchase_price REAL NOT NULL DEFAULT 0,
		stock REAL NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		card_number TEXT NOT NULL UNIQUE,
		barcode TEXT UNIQUE,
		mobile TEXT NOT NULL DEFAULT '',
		points INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE redeemable_products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		points_required INTEGER NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL REFERENCES products(id),
		customer_id INTEGER REFERENCES customers(id),
		units REAL NOT NULL,
		amount REAL NOT NULL,
		purchase_cost REAL NOT NULL,
		profit REAL NOT NULL,
		points_earned INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);`,
	`CREATE TABLE redemptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		points_spent INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);`,
	`CREATE TABLE redemption_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		redemption_id INTEGER NOT NULL REFERENCES redemptions(id),
		redeemable_product_id INTEGER NOT NULL REFERENCES redeemable_products(id),
		quantity INTEGER NOT NULL
	);`,
	`CREATE TABLE settings (
		key TEXT PRIMARY KEY,
		value REAL NOT NULL
	);`,
	`CREATE TABLE auth_users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);`,
	`CREATE TABLE auth_sessions (
		token TEXT PRIMARY KEY,
		user_id INTEGER REFERENCES auth_users(id) ON DELETE CASCADE,
		expires_at TEXT NOT NULL
	);`,
	`CREATE TABLE push_notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`,
}

// NewDB opens a fresh in-memory database with the full schema applied. The
// handle is closed when the test ends.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection keeps every statement on the same :memory: database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return db
}
