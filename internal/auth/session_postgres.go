package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"filevault/internal/model"
)

// SessionPostgres validates session tokens against the sessions table,
// joining to users in a single query. Expiry is compared against the
// session's stored unix timestamp.
type SessionPostgres struct {
	db *sql.DB
}

// NewSessionPostgres creates a new SessionPostgres validator.
func NewSessionPostgres(db *sql.DB) *SessionPostgres {
	return &SessionPostgres{db: db}
}

var _ SessionValidator = (*SessionPostgres)(nil)

// Validate resolves token to its owning user. Expired sessions resolve to
// ErrNoSession exactly like unknown tokens.
func (v *SessionPostgres) Validate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	const q = `
		SELECT u.id, u.username, COALESCE(u.email, ''), COALESCE(u.avatar, ''), u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1 AND s.expires_at > $2
	`
	row := v.db.QueryRowContext(ctx, q, token, time.Now().Unix())

	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Avatar, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return &u, nil
}
