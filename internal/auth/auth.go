package auth

import (
	"context"
	"errors"

	"filevault/internal/model"
)

// Package auth is the session-validation collaborator. The file mediation core
// never inspects tokens itself; it receives an already-resolved user from the
// middleware, which consults a SessionValidator.

// ErrNoSession indicates the token did not resolve to a live session.
var ErrNoSession = errors.New("no valid session")

// SessionValidator resolves a session token to its user.
// Implementations return (nil, ErrNoSession) for unknown or expired sessions
// and reserve other errors for infrastructure failures.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*model.User, error)
}
