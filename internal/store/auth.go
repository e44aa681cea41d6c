package store

import (
	"context"
	"time"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/jmoiron/sqlx"
)

// CreateAuthUser registers an admin account and returns its id.
func (q *Queries) CreateAuthUser(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, q.ext, &id, q.rebind(
		`INSERT INTO auth_users (email, password_hash) VALUES (?, ?) RETURNING id`),
		email, passwordHash)
	return id, err
}

// AuthUserByEmail looks an admin account up by normalized email.
func (q *Queries) AuthUserByEmail(ctx context.Context, email string) (domain.AuthUser, error) {
	var u domain.AuthUser
	err := sqlx.GetContext(ctx, q.ext, &u,
		q.rebind(`SELECT id, email, password_hash FROM auth_users WHERE email = ?`), email)
	return u, err
}

// InsertSession stores an opaque bearer token valid until expiresAt.
func (q *Queries) InsertSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := q.ext.ExecContext(ctx, q.rebind(
		`INSERT INTO auth_sessions (token, user_id, expires_at) VALUES (?, ?, ?)`),
		token, userID, expiresAt.UTC().Format(time.RFC3339))
	return err
}

// SessionByToken resolves a non-expired session. Returns sql.ErrNoRows for
// unknown or expired tokens.
func (q *Queries) SessionByToken(ctx context.Context, token string) (domain.AuthSession, error) {
	var s domain.AuthSession
	err := sqlx.GetContext(ctx, q.ext, &s, q.rebind(
		`SELECT token, user_id, expires_at FROM auth_sessions WHERE token = ? AND expires_at > ?`),
		token, nowUTC())
	return s, err
}

// DeleteSession revokes one bearer token.
func (q *Queries) DeleteSession(ctx context.Context, token string) error {
	_, err := q.ext.ExecContext(ctx,
		q.rebind(`DELETE FROM auth_sessions WHERE token = ?`), token)
	return err
}
