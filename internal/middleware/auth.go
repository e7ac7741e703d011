package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey contextKey = "user_id"
	// SessionIDKey is the context key for the session (token ID) of the request
	SessionIDKey contextKey = "session_id"
)

// Authenticator resolves a bearer token to a live session
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// AuthMiddleware provides bearer token validation middleware
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// Authenticate returns an Echo middleware that validates session tokens
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return unauthorizedError(c, "Missing or malformed authorization header")
			}

			session, err := m.authenticator.Authenticate(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					log.Error().Err(err).Msg("Token validation failed")
				}
				return unauthorizedError(c, "Invalid or expired token")
			}

			c.SetRequest(c.Request().WithContext(WithSession(c.Request().Context(), session)))
			return next(c)
		}
	}
}

// WithSession stores the session identity on ctx
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, session.UserID)
	return context.WithValue(ctx, SessionIDKey, session.ID)
}

// GetUserID extracts the authenticated user ID from the context
func GetUserID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetSessionID extracts the session ID from the context
func GetSessionID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
