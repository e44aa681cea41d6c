package store

import (
	"context"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/jmoiron/sqlx"
)

// PointsSettings reads the points-earning coefficients, applying defaults
// key-by-key for rows that were never persisted.
func (q *Queries) PointsSettings(ctx context.Context) (domain.PointsSettings, error) {
	settings := domain.DefaultPointsSettings()

	rows := []domain.Setting{}
	if err := sqlx.SelectContext(ctx, q.ext, &rows, `SELECT key, value FROM settings`); err != nil {
		return settings, err
	}
	for _, row := range rows {
		switch row.Key {
		case "petrol":
			settings.Petrol = row.Value
		case "diesel":
			settings.Diesel = row.Value
		case "oil":
			settings.Oil = row.Value
		case "amount":
			settings.Amount = row.Value
		}
	}
	return settings, nil
}

// UpsertSetting writes one settings row.
func (q *Queries) UpsertSetting(ctx context.Context, key string, value float64) error {
	_, err := q.ext.ExecContext(ctx, q.rebind(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`),
		key, value)
	return err
}
