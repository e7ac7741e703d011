package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
)

// SessionStore keeps issued sessions in process memory.
// Sessions do not survive a restart; users log in again.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionStore creates an empty SessionStore
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
	}
}

var _ domain.SessionStore = (*SessionStore)(nil)

// Save stores or replaces a session
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

// Get returns a stored session
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

// Revoke deletes a session
func (s *SessionStore) Revoke(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// RevokeUser deletes every session of a user and returns how many were removed
func (s *SessionStore) RevokeUser(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// PurgeExpired deletes sessions expired at now
func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
