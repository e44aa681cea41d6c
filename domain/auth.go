package domain

// AuthUser is an admin account. Passwords are stored as bcrypt hashes.
type AuthUser struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// AuthSession is an opaque bearer-token session. Every authenticated request
// is checked against a non-expired session row.
type AuthSession struct {
	Token     string `db:"token" json:"token"`
	UserID    *int64 `db:"user_id" json:"-"`
	ExpiresAt string `db:"expires_at" json:"expiresAt"`
}
