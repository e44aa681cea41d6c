package store

import (
	"context"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/jmoiron/sqlx"
)

// ListNotifications returns all push notifications, newest first.
func (q *Queries) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	notifications := []domain.Notification{}
	err := sqlx.SelectContext(ctx, q.ext, &notifications,
		`SELECT id, title, message, created_at FROM push_notifications ORDER BY created_at DESC, id DESC`)
	return notifications, err
}

// CreateNotification appends one push notification and returns it.
func (q *Queries) CreateNotification(ctx context.Context, title, message string) (domain.Notification, error) {
	var n domain.Notification
	err := sqlx.GetContext(ctx, q.ext, &n, q.rebind(
		`INSERT INTO push_notifications (title, message, created_at)
		 VALUES (?, ?, ?)
		 RETURNING id, title, message, created_at`),
		title, message, nowUTC())
	return n, err
}

// DeleteNotification removes one notification by id. Deleting an unknown id
// is not an error.
func (q *Queries) DeleteNotification(ctx context.Context, id int64) error {
	_, err := q.ext.ExecContext(ctx,
		q.rebind(`DELETE FROM push_notifications WHERE id = ?`), id)
	return err
}
