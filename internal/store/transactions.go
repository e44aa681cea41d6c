package store

import (
	"context"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/jmoiron/sqlx"
)

// InsertSale appends one immutable sale row with a server-assigned timestamp
// and returns it.
func (q *Queries) InsertSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	sale.CreatedAt = nowUTC()
	var created domain.Sale
	err := sqlx.GetContext(ctx, q.ext, &created, q.rebind(
		`INSERT INTO sales (product_id, customer_id, units, amount, purchase_cost, profit, points_earned, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id, product_id, customer_id, units, amount, purchase_cost, profit, points_earned, created_at`),
		sale.ProductID, sale.CustomerID, sale.Units, sale.Amount,
		sale.PurchaseCost, sale.Profit, sale.PointsEarned, sale.CreatedAt)
	return created, err
}

// ListSaleRecords returns all sales with product and customer names resolved,
// newest first. Walk-in sales report the sentinel customer name.
func (q *Queries) ListSaleRecords(ctx context.Context) ([]domain.SaleRecord, error) {
	records := []domain.SaleRecord{}
	err := sqlx.SelectContext(ctx, q.ext, &records, q.rebind(
		`SELECT
		   s.units,
		   s.amount,
		   s.purchase_cost,
		   s.profit,
		   s.points_earned,
		   s.created_at,
		   p.name AS product,
		   COALESCE(c.name, ?) AS customer
		 FROM sales s
		 JOIN products p ON s.product_id = p.id
		 LEFT JOIN customers c ON s.customer_id = c.id
		 ORDER BY s.created_at DESC`),
		domain.WalkInCustomer)
	return records, err
}

// InsertRedemption appends one redemption header row and returns it.
func (q *Queries) InsertRedemption(ctx context.Context, customerID, pointsSpent int64) (domain.Redemption, error) {
	var created domain.Redemption
	err := sqlx.GetContext(ctx, q.ext, &created, q.rebind(
		`INSERT INTO redemptions (customer_id, points_spent, created_at)
		 VALUES (?, ?, ?)
		 RETURNING id, customer_id, points_spent, created_at`),
		customerID, pointsSpent, nowUTC())
	return created, err
}

// InsertRedemptionItem links one redeemable and quantity to a redemption.
func (q *Queries) InsertRedemptionItem(ctx context.Context, redemptionID, redeemableID, quantity int64) error {
	_, err := q.ext.ExecContext(ctx, q.rebind(
		`INSERT INTO redemption_items (redemption_id, redeemable_product_id, quantity)
		 VALUES (?, ?, ?)`),
		redemptionID, redeemableID, quantity)
	return err
}
