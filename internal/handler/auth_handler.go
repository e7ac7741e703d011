package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/middleware"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles profile selection, PIN login and session endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the register request body
type RegisterRequest struct {
	Name  string `json:"name"`
	PIN   string `json:"pin"`
	Color string `json:"color"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	UserID string `json:"userId"`
	PIN    string `json:"pin"`
}

// ChangePINRequest represents the change PIN request body
type ChangePINRequest struct {
	CurrentPIN string `json:"currentPin"`
	NewPIN     string `json:"newPin"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt string         `json:"expiresAt"`
	User      domain.Profile `json:"user"`
}

// ListProfiles godoc
// @Summary List profiles
// @Description List every local profile for the profile picker
// @Tags auth
// @Produce json
// @Success 200 {array} domain.Profile
// @Failure 500 {object} ProblemDetails
// @Router /auth/profiles [get]
func (h *AuthHandler) ListProfiles(c echo.Context) error {
	profiles, err := h.authService.ListProfiles(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to list profiles")
	}
	return c.JSON(http.StatusOK, profiles)
}

// Register godoc
// @Summary Register a profile
// @Description Create a new profile protected by a 4 to 8 digit PIN
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Profile registration request"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.PIN, req.Color)
	if err != nil {
		return respondError(c, err, "Failed to register profile")
	}

	return c.JSON(http.StatusCreated, user.Profile())
}

// Login godoc
// @Summary Log in with a PIN
// @Description Exchange a profile id and PIN for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return NewFieldError(c, "userId", "Profile is required")
	}

	result, err := h.authService.Login(c.Request().Context(), req.UserID, req.PIN)
	if err != nil {
		return respondError(c, err, "Failed to log in")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     result.Token,
		ExpiresAt: formatTimestamp(result.ExpiresAt),
		User:      result.User,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revoke the current session token
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ProblemDetails
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
		return respondError(c, err, "Failed to log out")
	}
	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary Current profile
// @Description Return the profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ProblemDetails
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to get profile")
	}
	return c.JSON(http.StatusOK, user.Profile())
}

// ChangePIN godoc
// @Summary Change PIN
// @Description Replace the PIN after verifying the current one. All sessions are revoked.
// @Tags auth
// @Accept json
// @Security BearerAuth
// @Param request body ChangePINRequest true "Change PIN request"
// @Success 204
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /auth/pin [put]
func (h *AuthHandler) ChangePIN(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ChangePINRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.authService.ChangePIN(c.Request().Context(), userID, req.CurrentPIN, req.NewPIN); err != nil {
		return respondError(c, err, "Failed to change PIN")
	}

	return c.NoContent(http.StatusNoContent)
}
