package websocket

import (
	"context"
	"errors"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
)

// ErrInvalidToken is returned when a connection token does not resolve to a live session
var ErrInvalidToken = errors.New("invalid token")

// SessionAuthenticator resolves a session token
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// SessionTokenValidator checks the token passed on the websocket upgrade request.
// Browsers cannot set headers on the upgrade, so the token travels as a query parameter.
type SessionTokenValidator struct {
	authenticator SessionAuthenticator
}

// NewSessionTokenValidator creates a new SessionTokenValidator
func NewSessionTokenValidator(authenticator SessionAuthenticator) *SessionTokenValidator {
	return &SessionTokenValidator{authenticator: authenticator}
}

// ValidateToken returns the user ID behind a session token
func (v *SessionTokenValidator) ValidateToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	session, err := v.authenticator.Authenticate(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return session.UserID, nil
}
