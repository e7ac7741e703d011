package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://pocketbook.app/errors/validation"
	ErrorTypeNotFound     = "https://pocketbook.app/errors/not-found"
	ErrorTypeUnauthorized = "https://pocketbook.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://pocketbook.app/errors/forbidden"
	ErrorTypeConflict     = "https://pocketbook.app/errors/conflict"
	ErrorTypeRateLimit    = "https://pocketbook.app/errors/rate-limit"
	ErrorTypeUnavailable  = "https://pocketbook.app/errors/unavailable"
	ErrorTypeInternal     = "https://pocketbook.app/errors/internal"
)

func problem(c echo.Context, status int, errType, title, detail string) error {
	return c.JSON(status, ProblemDetails{
		Type:     errType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewFieldError creates a validation error response for a single field
func NewFieldError(c echo.Context, field, message string) error {
	return NewValidationError(c, "Validation failed", []ValidationError{
		{Field: field, Message: message},
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail)
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return problem(c, http.StatusForbidden, ErrorTypeForbidden, "Forbidden", detail)
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return problem(c, http.StatusConflict, ErrorTypeConflict, "Conflict", detail)
}

// NewTooManyRequestsError creates a rate limit error response
func NewTooManyRequestsError(c echo.Context, detail string) error {
	return problem(c, http.StatusTooManyRequests, ErrorTypeRateLimit, "Rate Limit Exceeded", detail)
}

// NewServiceUnavailableError creates a service unavailable error response
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return problem(c, http.StatusServiceUnavailable, ErrorTypeUnavailable, "Service Unavailable", detail)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail)
}

// fieldErrors maps validation errors to the request field they concern
var fieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrNameRequired, "name", "Name is required"},
	{domain.ErrNameTooLong, "name", "Name must be 50 characters or less"},
	{domain.ErrInvalidPIN, "pin", "PIN must be 4 to 8 digits"},
	{domain.ErrInvalidAmount, "amount", "Amount must be positive, with at most 2 decimal places and 12 integer digits"},
	{domain.ErrInvalidDate, "date", "Must be a valid date in YYYY-MM-DD format"},
	{domain.ErrInvalidMonth, "month", "Month must be between 0 and 11"},
	{domain.ErrNotesTooLong, "notes", "Notes must be 500 characters or less"},
	{domain.ErrInvalidTransactionType, "type", "Type must be one of: income, expense"},
	{domain.ErrInvalidFrequency, "frequency", "Frequency must be one of: weekly, biweekly, monthly, quarterly, yearly"},
	{domain.ErrCategoryNotFound, "categoryId", "Category not found"},
	{domain.ErrCategoryMismatch, "categoryId", "Category type does not match transaction type"},
}

// respondError maps a service error to a Problem Details response.
// Unexpected errors are logged with msg and returned as 500.
func respondError(c echo.Context, err error, msg string) error {
	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			return NewFieldError(c, fe.field, fe.message)
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrUserNotFound):
		return NewNotFoundError(c, "User not found")
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found")
	case errors.Is(err, domain.ErrRecurringNotFound):
		return NewNotFoundError(c, "Recurring template not found")
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, "Resource not found")
	case errors.Is(err, domain.ErrNameTaken):
		return NewConflictError(c, "Name is already taken")
	case errors.Is(err, domain.ErrCategoryInUse):
		return NewConflictError(c, "Category is used by transactions or recurring templates")
	case errors.Is(err, domain.ErrInactiveTemplate):
		return NewConflictError(c, "Recurring template is inactive")
	case errors.Is(err, domain.ErrDueDateConflict):
		return NewConflictError(c, "Recurring template was processed concurrently, please retry")
	case errors.Is(err, domain.ErrAlreadyExists):
		return NewConflictError(c, "Resource already exists")
	case errors.Is(err, domain.ErrWrongPIN):
		return NewUnauthorizedError(c, "Incorrect PIN")
	case errors.Is(err, domain.ErrUnauthorized):
		return NewUnauthorizedError(c, "Authentication required")
	case errors.Is(err, domain.ErrTooManyAttempts):
		return NewTooManyRequestsError(c, "Too many login attempts, try again later")
	case errors.Is(err, domain.ErrBackupDisabled):
		return NewServiceUnavailableError(c, "Backup storage is not configured")
	}

	log.Error().Err(err).Str("path", c.Path()).Msg(msg)
	return NewInternalError(c, msg)
}
