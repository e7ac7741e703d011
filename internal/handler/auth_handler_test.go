package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/middleware"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/repository/memory"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/testutil"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID      = "user-1"
	otherUserID     = "user-2"
	testTokenSecret = "0123456789abcdef0123456789abcdef"
)

// Helper to set up an authenticated request context
func setupAuthContext(c echo.Context, userID string) {
	ctx := middleware.WithSession(c.Request().Context(), &domain.Session{ID: "session-" + userID, UserID: userID})
	c.SetRequest(c.Request().WithContext(ctx))
}

// Helper to build a context for a JSON request
func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func assertFieldError(t *testing.T, rec *httptest.ResponseRecorder, field string) {
	t.Helper()
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, ErrorTypeValidation, problem.Type)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, field, problem.Errors[0].Field)
}

type denyLimiter struct{}

func (denyLimiter) Allow(string) bool { return false }

func setupAuthHandler(t *testing.T, limiter service.LoginLimiter) (*AuthHandler, *service.AuthService, *memory.SessionStore) {
	t.Helper()
	users := testutil.NewMockUserRepository()
	sessions := memory.NewSessionStore()
	transactions := testutil.NewMockTransactionRepository()
	categories := testutil.NewMockCategoryRepository()
	clock := util.SystemClock{}

	tokens, err := service.NewTokenManager(testTokenSecret, time.Hour)
	require.NoError(t, err)

	seeder := service.NewCategoryService(categories, transactions, testutil.NewMockRecurringTemplateRepository(transactions), clock)
	authService := service.NewAuthService(users, sessions, tokens, seeder, limiter, clock)
	return NewAuthHandler(authService), authService, sessions
}

func TestRegister_Success(t *testing.T) {
	e := echo.New()
	h, _, _ := setupAuthHandler(t, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/register", `{"name":" Alice ","pin":"1234","color":"#ff0000"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var profile domain.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, "#ff0000", profile.Color)
	assert.NotContains(t, rec.Body.String(), "pinHash")
}

func TestRegister_InvalidPIN(t *testing.T) {
	e := echo.New()
	h, _, _ := setupAuthHandler(t, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/register", `{"name":"Alice","pin":"12ab"}`)
	require.NoError(t, h.Register(c))

	assertFieldError(t, rec, "pin")
}

func TestRegister_NameTaken(t *testing.T) {
	e := echo.New()
	h, authService, _ := setupAuthHandler(t, nil)
	_, err := authService.Register(context.Background(), "Alice", "1234", "")
	require.NoError(t, err)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/register", `{"name":"alice","pin":"5678"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ErrorTypeConflict, decodeProblem(t, rec).Type)
}

func TestRegister_InvalidBody(t *testing.T) {
	e := echo.New()
	h, _, _ := setupAuthHandler(t, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/register", `{"name":`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProfiles(t *testing.T) {
	e := echo.New()
	h, authService, _ := setupAuthHandler(t, nil)
	_, err := authService.Register(context.Background(), "Alice", "1234", "#111111")
	require.NoError(t, err)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/auth/profiles", "")
	require.NoError(t, h.ListProfiles(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var profiles []domain.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "Alice", profiles[0].Name)
}

func TestLogin_Success(t *testing.T) {
	e := echo.New()
	h, authService, _ := setupAuthHandler(t, nil)
	user, err := authService.Register(context.Background(), "Alice", "1234", "")
	require.NoError(t, err)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/login", `{"userId":"`+user.ID+`","pin":"1234"}`)
	require.NoError(t, h.Login(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var response LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Token)
	assert.NotEmpty(t, response.ExpiresAt)
	assert.Equal(t, user.ID, response.User.ID)

	session, err := authService.Authenticate(context.Background(), response.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
}

func TestLogin_WrongPIN(t *testing.T) {
	e := echo.New()
	h, authService, _ := setupAuthHandler(t, nil)
	user, err := authService.Register(context.Background(), "Alice", "1234", "")
	require.NoError(t, err)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/login", `{"userId":"`+user.ID+`","pin":"9999"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ErrorTypeUnauthorized, decodeProblem(t, rec).Type)
}

func TestLogin_UnknownUserLooksLikeWrongPIN(t *testing.T) {
	e := echo.New()
	h, _, _ := setupAuthHandler(t, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/login", `{"userId":"nobody","pin":"1234"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_MissingUserID(t *testing.T) {
	e := echo.New()
	h, _, _ := setupAuthHandler(t, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/login", `{"pin":"1234"}`)
	require.NoError(t, h.Login(c))

	assertFieldError(t, rec, "userId")
}

func TestLogin_RateLimited(t *testing.T) {
	e := echo.New()
	h, _, _ := setupAuthHandler(t, denyLimiter{})

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/login", `{"userId":"user-1","pin":"1234"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, ErrorTypeRateLimit, decodeProblem(t, rec).Type)
}

func TestLogout_RevokesSession(t *testing.T) {
	e := echo.New()
	h, authService, sessions := setupAuthHandler(t, nil)
	ctx := context.Background()
	user, err := authService.Register(ctx, "Alice", "1234", "")
	require.NoError(t, err)
	result, err := authService.Login(ctx, user.ID, "1234")
	require.NoError(t, err)
	session, err := authService.Authenticate(ctx, result.Token)
	require.NoError(t, err)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/logout", "")
	c.SetRequest(c.Request().WithContext(middleware.WithSession(c.Request().Context(), session)))
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, sessions.Len())
	_, err = authService.Authenticate(ctx, result.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout_Unauthenticated(t *testing.T) {
	e := echo.New()
	h, _, _ := setupAuthHandler(t, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/auth/logout", "")
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_Success(t *testing.T) {
	e := echo.New()
	h, authService, _ := setupAuthHandler(t, nil)
	user, err := authService.Register(context.Background(), "Alice", "1234", "#00ff00")
	require.NoError(t, err)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/auth/me", "")
	setupAuthContext(c, user.ID)
	require.NoError(t, h.Me(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var profile domain.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, user.Profile(), profile)
}

func TestMe_Unauthenticated(t *testing.T) {
	e := echo.New()
	h, _, _ := setupAuthHandler(t, nil)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/auth/me", "")
	require.NoError(t, h.Me(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePIN(t *testing.T) {
	e := echo.New()
	h, authService, _ := setupAuthHandler(t, nil)
	ctx := context.Background()
	user, err := authService.Register(ctx, "Alice", "1234", "")
	require.NoError(t, err)

	t.Run("wrong current pin", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPut, "/api/v1/auth/pin", `{"currentPin":"0000","newPin":"5678"}`)
		setupAuthContext(c, user.ID)
		require.NoError(t, h.ChangePIN(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid new pin", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPut, "/api/v1/auth/pin", `{"currentPin":"1234","newPin":"12"}`)
		setupAuthContext(c, user.ID)
		require.NoError(t, h.ChangePIN(c))
		assertFieldError(t, rec, "pin")
	})

	t.Run("success", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPut, "/api/v1/auth/pin", `{"currentPin":"1234","newPin":"5678"}`)
		setupAuthContext(c, user.ID)
		require.NoError(t, h.ChangePIN(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, err := authService.Login(ctx, user.ID, "5678")
		assert.NoError(t, err)
	})
}
