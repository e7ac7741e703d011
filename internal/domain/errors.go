package domain

import "errors"

// Domain errors
var (
	ErrNotFound               = errors.New("resource not found")
	ErrAlreadyExists          = errors.New("resource already exists")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrUserNotFound           = errors.New("user not found")
	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name exceeds maximum length")
	ErrNameTaken              = errors.New("name is already taken")
	ErrInvalidPIN             = errors.New("pin must be 4 to 8 digits")
	ErrWrongPIN               = errors.New("incorrect pin")
	ErrTooManyAttempts        = errors.New("too many login attempts")
	ErrSessionNotFound        = errors.New("session not found or revoked")
	ErrInvalidAmount          = errors.New("amount must be positive with at most 2 decimal places and 12 integer digits")
	ErrInvalidDate            = errors.New("date must be a valid YYYY-MM-DD calendar date")
	ErrInvalidMonth           = errors.New("month must be between 0 and 11")
	ErrNotesTooLong           = errors.New("notes exceed maximum length")
	ErrBackupDisabled         = errors.New("backup storage is not configured")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryInUse          = errors.New("category is referenced by transactions or recurring templates")
	ErrCategoryMismatch       = errors.New("category type does not match transaction type")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidTransactionType = errors.New("type must be income or expense")
	ErrRecurringNotFound      = errors.New("recurring template not found")
	ErrInactiveTemplate       = errors.New("recurring template is inactive")
	ErrInvalidFrequency       = errors.New("frequency must be one of weekly, biweekly, monthly, quarterly, yearly")
	ErrDueDateConflict        = errors.New("recurring template was advanced concurrently")
)

// Validation constants
const (
	MaxNameLength  = 50
	MaxNotesLength = 500
	MinPINLength   = 4
	MaxPINLength   = 8
)
