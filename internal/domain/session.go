package domain

import (
	"context"
	"time"
)

// Session is an issued login token, identified by the JWT ID claim
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// LoginResult is returned after a successful PIN login
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Profile   `json:"user"`
}

// SessionStore keeps track of issued tokens so they can be revoked before expiry
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeUser(ctx context.Context, userID string) (int, error)
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}
