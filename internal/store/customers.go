package store

import (
	"context"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/jmoiron/sqlx"
)

const customerColumns = `id, name, card_number, barcode, mobile, points`

// ListCustomers returns all customers ordered by name.
func (q *Queries) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := sqlx.SelectContext(ctx, q.ext, &customers,
		`SELECT `+customerColumns+` FROM customers ORDER BY name`)
	return customers, err
}

// CustomerByCard looks a customer up by the normalized card number.
func (q *Queries) CustomerByCard(ctx context.Context, cardNumber string) (domain.Customer, error) {
	var c domain.Customer
	err := sqlx.GetContext(ctx, q.ext, &c,
		q.rebind(`SELECT `+customerColumns+` FROM customers WHERE card_number = ?`), cardNumber)
	return c, err
}

// CustomerByBarcode looks a customer up by the normalized barcode.
func (q *Queries) CustomerByBarcode(ctx context.Context, barcode string) (domain.Customer, error) {
	var c domain.Customer
	err := sqlx.GetContext(ctx, q.ext, &c,
		q.rebind(`SELECT `+customerColumns+` FROM customers WHERE barcode = ?`), barcode)
	return c, err
}

// CustomerByID reloads one customer row.
func (q *Queries) CustomerByID(ctx context.Context, id int64) (domain.Customer, error) {
	var c domain.Customer
	err := sqlx.GetContext(ctx, q.ext, &c,
		q.rebind(`SELECT `+customerColumns+` FROM customers WHERE id = ?`), id)
	return c, err
}

// CreateCustomer registers a new customer with zero points and returns the
// created row.
func (q *Queries) CreateCustomer(ctx context.Context, name, cardNumber string, barcode *string, mobile string) (domain.Customer, error) {
	var c domain.Customer
	err := sqlx.GetContext(ctx, q.ext, &c, q.rebind(
		`INSERT INTO customers (name, card_number, barcode, mobile, points)
		 VALUES (?, ?, ?, ?, 0)
		 RETURNING `+customerColumns),
		name, cardNumber, barcode, mobile)
	return c, err
}

// DeleteCustomerByCard removes a customer and returns the deleted row.
// Returns sql.ErrNoRows when no such card exists.
func (q *Queries) DeleteCustomerByCard(ctx context.Context, cardNumber string) (domain.Customer, error) {
	var c domain.Customer
	err := sqlx.GetContext(ctx, q.ext, &c, q.rebind(
		`DELETE FROM customers WHERE card_number = ? RETURNING `+customerColumns),
		cardNumber)
	return c, err
}

// AddCustomerPoints credits earned points to a customer balance.
func (q *Queries) AddCustomerPoints(ctx context.Context, customerID int64, points int64) error {
	_, err := q.ext.ExecContext(ctx, q.rebind(
		`UPDATE customers SET points = points + ? WHERE id = ?`),
		points, customerID)
	return err
}

// DeductCustomerPoints debits points only when the balance covers them.
// Returns false when the guard matched no row.
func (q *Queries) DeductCustomerPoints(ctx context.Context, customerID int64, points int64) (bool, error) {
	res, err := q.ext.ExecContext(ctx, q.rebind(
		`UPDATE customers SET points = points - ? WHERE id = ? AND points >= ?`),
		points, customerID, points)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
