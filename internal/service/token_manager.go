package service

import (
	"context"
	"errors"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
	"gopkg.in/go-jose/go-jose.v2"
	"gopkg.in/go-jose/go-jose.v2/jwt"
)

const (
	tokenIssuer   = "pocketbook"
	tokenAudience = "pocketbook-api"

	// MinSecretLength is the minimum HS256 secret size in bytes
	MinSecretLength = 32
)

// ErrInvalidToken is returned when a token fails signature or claim validation
var ErrInvalidToken = errors.New("invalid token")

// ErrWeakSecret is returned when the signing secret is too short
var ErrWeakSecret = errors.New("jwt secret must be at least 32 bytes")

// IssuedToken is a signed token and the claims it carries
type IssuedToken struct {
	Token     string
	ID        string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenClaims are the claims recovered from a valid token
type TokenClaims struct {
	ID        string
	Subject   string
	ExpiresAt time.Time
}

// TokenManager signs and validates HS256 session tokens.
// Token timestamps always use the wall clock because validation does.
type TokenManager struct {
	signer    jose.Signer
	validator *validator.Validator
	ttl       time.Duration
}

// NewTokenManager creates a TokenManager for the given secret and lifetime
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	key := []byte(secret)
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, err
	}

	jwtValidator, err := validator.New(
		func(ctx context.Context) (interface{}, error) {
			return key, nil
		},
		validator.HS256,
		tokenIssuer,
		[]string{tokenAudience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &TokenManager{
		signer:    signer,
		validator: jwtValidator,
		ttl:       ttl,
	}, nil
}

// Issue signs a new token for the subject with a fresh token ID
func (m *TokenManager) Issue(subject string) (*IssuedToken, error) {
	now := time.Now().UTC().Truncate(time.Second)
	expires := now.Add(m.ttl)
	id := uuid.NewString()

	claims := jwt.Claims{
		ID:        id,
		Subject:   subject,
		Issuer:    tokenIssuer,
		Audience:  jwt.Audience{tokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Expiry:    jwt.NewNumericDate(expires),
	}

	token, err := jwt.Signed(m.signer).Claims(claims).CompactSerialize()
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		Token:     token,
		ID:        id,
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: expires,
	}, nil
}

// Parse validates the token signature, issuer, audience and expiry
func (m *TokenManager) Parse(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := m.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" || validated.RegisteredClaims.ID == "" {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		ID:        validated.RegisteredClaims.ID,
		Subject:   validated.RegisteredClaims.Subject,
		ExpiresAt: time.Unix(validated.RegisteredClaims.Expiry, 0).UTC(),
	}, nil
}
