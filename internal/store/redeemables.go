package store

import (
	"context"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/jmoiron/sqlx"
)

const redeemableColumns = `id, name, points_required, stock`

// ListRedeemables returns the redemption catalog ordered by name.
func (q *Queries) ListRedeemables(ctx context.Context) ([]domain.Redeemable, error) {
	redeemables := []domain.Redeemable{}
	err := sqlx.SelectContext(ctx, q.ext, &redeemables,
		`SELECT `+redeemableColumns+` FROM redeemable_products ORDER BY name`)
	return redeemables, err
}

// RedeemableByName looks a redeemable up by its unique name.
func (q *Queries) RedeemableByName(ctx context.Context, name string) (domain.Redeemable, error) {
	var r domain.Redeemable
	err := sqlx.GetContext(ctx, q.ext, &r,
		q.rebind(`SELECT `+redeemableColumns+` FROM redeemable_products WHERE name = ?`), name)
	return r, err
}

// UpsertRedeemable inserts or replaces a redeemable row keyed by name.
func (q *Queries) UpsertRedeemable(ctx context.Context, r domain.Redeemable) error {
	_, err := q.ext.ExecContext(ctx, q.rebind(
		`INSERT INTO redeemable_products (name, points_required, stock)
		 VALUES (?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET
		   points_required = EXCLUDED.points_required,
		   stock = EXCLUDED.stock`),
		r.Name, r.PointsRequired, r.Stock)
	return err
}

// DecrementRedeemableStock debits stock only when enough remains. Returns
// false when the guard matched no row.
func (q *Queries) DecrementRedeemableStock(ctx context.Context, redeemableID int64, quantity int64) (bool, error) {
	res, err := q.ext.ExecContext(ctx, q.rebind(
		`UPDATE redeemable_products SET stock = stock - ? WHERE id = ? AND stock >= ?`),
		quantity, redeemableID, quantity)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
