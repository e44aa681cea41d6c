package store

import (
	"context"
	"strings"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, name, category, price_per_unit, unit, purchase_price, stock`

// ListProducts returns the full product catalog ordered by name.
func (q *Queries) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := sqlx.SelectContext(ctx, q.ext, &products,
		`SELECT `+productColumns+` FROM products ORDER BY name`)
	return products, err
}

// ProductByName looks a product up by its unique name. Returns
// sql.ErrNoRows when absent.
func (q *Queries) ProductByName(ctx context.Context, name string) (domain.Product, error) {
	var p domain.Product
	err := sqlx.GetContext(ctx, q.ext, &p,
		q.rebind(`SELECT `+productColumns+` FROM products WHERE name = ?`), name)
	return p, err
}

// UpsertProduct inserts or fully replaces a product row keyed by name.
func (q *Queries) UpsertProduct(ctx context.Context, p domain.Product) error {
	_, err := q.ext.ExecContext(ctx, q.rebind(
		`INSERT INTO products (name, category, price_per_unit, unit, purchase_price, stock)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET
		   category = EXCLUDED.category,
		   price_per_unit = EXCLUDED.price_per_unit,
		   unit = EXCLUDED.unit,
		   purchase_price = EXCLUDED.purchase_price,
		   stock = EXCLUDED.stock`),
		p.Name, p.Category, p.PricePerUnit, p.Unit, p.PurchasePrice, p.Stock)
	return err
}

// DecrementProductStock debits stock only when enough remains. Returns false
// when the guard matched no row, in which case nothing was written.
func (q *Queries) DecrementProductStock(ctx context.Context, productID int64, units float64) (bool, error) {
	res, err := q.ext.ExecContext(ctx, q.rebind(
		`UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`),
		units, productID, units)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeriveCategory maps a product name to its default category for upserts
// that do not carry one.
func DeriveCategory(name string) string {
	normalized := strings.ToLower(name)
	switch {
	case strings.Contains(normalized, "petrol"), strings.Contains(normalized, "diesel"):
		return "Fuel"
	case strings.Contains(normalized, "coolant"):
		return "Coolant"
	case strings.Contains(normalized, "oil"):
		return "Oil"
	default:
		return "Other"
	}
}
