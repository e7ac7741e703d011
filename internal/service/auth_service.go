package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// LoginLimiter throttles login attempts per key
type LoginLimiter interface {
	Allow(key string) bool
}

// CategorySeeder creates the starter categories of a new user
type CategorySeeder interface {
	SeedDefaults(ctx context.Context, userID string) error
}

// AuthService handles PIN login, registration and sessions
type AuthService struct {
	userRepo domain.UserRepository
	sessions domain.SessionStore
	tokens   *TokenManager
	seeder   CategorySeeder
	limiter  LoginLimiter
	clock    util.Clock
}

// NewAuthService creates a new AuthService. limiter may be nil to disable throttling.
func NewAuthService(
	userRepo domain.UserRepository,
	sessions domain.SessionStore,
	tokens *TokenManager,
	seeder CategorySeeder,
	limiter LoginLimiter,
	clock util.Clock,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		tokens:   tokens,
		seeder:   seeder,
		limiter:  limiter,
		clock:    clock,
	}
}

// ListProfiles returns the public profile of every user for the profile picker
func (s *AuthService) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

// Register creates a user with a hashed PIN and seeds their default categories
func (s *AuthService) Register(ctx context.Context, name, pin, color string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePIN(pin); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrNameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	user, err := s.userRepo.Create(ctx, &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		PINHash:   string(hash),
		Color:     strings.TrimSpace(color),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if s.seeder != nil {
		if err := s.seeder.SeedDefaults(ctx, user.ID); err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to seed default categories")
			return nil, err
		}
	}

	log.Info().Str("user_id", user.ID).Msg("Registered new user")
	return user, nil
}

// Login checks the PIN and issues a session token
func (s *AuthService) Login(ctx context.Context, userID, pin string) (*domain.LoginResult, error) {
	if s.limiter != nil && !s.limiter.Allow(userID) {
		log.Warn().Str("user_id", userID).Msg("Login rate limit exceeded")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrWrongPIN
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)); err != nil {
		log.Info().Str("user_id", userID).Msg("Failed PIN login")
		return nil, domain.ErrWrongPIN
	}

	issued, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, &domain.Session{
		ID:        issued.ID,
		UserID:    user.ID,
		IssuedAt:  issued.IssuedAt,
		ExpiresAt: issued.ExpiresAt,
	}); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      user.Profile(),
	}, nil
}

// Authenticate validates a token and returns its live session
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokens.Parse(ctx, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if session.UserID != claims.Subject || session.Expired(s.clock.Now()) {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

// Logout revokes a single session
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	err := s.sessions.Revoke(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	return err
}

// GetUser returns the user behind a session
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ChangePIN replaces the PIN after checking the current one and revokes all sessions
func (s *AuthService) ChangePIN(ctx context.Context, userID, currentPIN, newPIN string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(currentPIN)); err != nil {
		return domain.ErrWrongPIN
	}
	if err := validatePIN(newPIN); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	updated := *user
	updated.PINHash = string(hash)
	updated.UpdatedAt = s.clock.Now().UTC()
	if _, err := s.userRepo.Update(ctx, &updated); err != nil {
		return err
	}

	revoked, err := s.sessions.RevokeUser(ctx, userID)
	if err != nil {
		return err
	}
	log.Info().Str("user_id", userID).Int("revoked_sessions", revoked).Msg("PIN changed")
	return nil
}

// PurgeExpiredSessions drops expired sessions from the store
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int, error) {
	return s.sessions.PurgeExpired(ctx, s.clock.Now())
}

func validatePIN(pin string) error {
	if len(pin) < domain.MinPINLength || len(pin) > domain.MaxPINLength {
		return domain.ErrInvalidPIN
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return domain.ErrInvalidPIN
		}
	}
	return nil
}
