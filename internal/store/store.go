// Package store is the catalog store: all SQL for products, customers,
// redeemables, settings, sales, redemptions, notifications and auth sessions.
//
// Queries are written with ? placeholders and rebound through the driver so
// the same store runs against PostgreSQL in production and sqlite in tests.
// Stock and points decrements are single conditional updates; a decrement
// that would take a value negative matches zero rows, which callers treat as
// a domain failure and roll back.
package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store wraps the database handle and hands out scoped query handles.
type Store struct {
	db *sqlx.DB
}

// New constructs a Store.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Queries is a scoped handle for running store operations, backed either by
// the pooled connection or by one transaction.
type Queries struct {
	ext sqlx.ExtContext
}

// Queries returns a handle backed by the pooled connection, for reads and
// single-statement writes that need no transaction.
func (s *Store) Queries() *Queries {
	return &Queries{ext: s.db}
}

// WithTx runs fn inside one transaction. The transaction commits only when
// fn returns nil; any error discards every write fn made.
func (s *Store) WithTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&Queries{ext: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (q *Queries) rebind(query string) string {
	return q.ext.Rebind(query)
}

// nowUTC is the server-assigned timestamp format for created_at/expires_at
// columns. RFC3339 UTC strings order correctly in both Postgres and sqlite.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
