package domain

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the closed set of schedules a recurring template can follow
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Frequencies lists every supported frequency in display order
var Frequencies = []Frequency{
	FrequencyWeekly,
	FrequencyBiweekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyYearly,
}

// ParseFrequency converts raw input into a Frequency.
// A missing value falls back to monthly; anything else outside the enum is rejected.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FrequencyMonthly, nil
	}
	f := Frequency(s)
	if !f.IsValid() {
		return "", ErrInvalidFrequency
	}
	return f, nil
}

// IsValid reports whether f is one of the supported frequencies
func (f Frequency) IsValid() bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON rejects unknown frequencies at decode time
func (f *Frequency) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidFrequency
	}
	parsed, err := ParseFrequency(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// RecurringTemplate is a user-defined rule that periodically produces a transaction.
// StartDate and NextDueDate are calendar dates in YYYY-MM-DD form.
type RecurringTemplate struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Frequency   Frequency       `json:"frequency"`
	StartDate   string          `json:"startDate"`
	NextDueDate string          `json:"nextDueDate"`
	IsActive    bool            `json:"isActive"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// IsDue reports whether the template should materialize on the given day.
// Both values are YYYY-MM-DD strings, so lexical order is calendar order.
func (t *RecurringTemplate) IsDue(today string) bool {
	return t.IsActive && t.NextDueDate <= today
}

// Materialization is the unit of work that inserts a spawned transaction and
// advances the template. Stores must apply both or neither, and only when the
// stored NextDueDate still equals ExpectedNextDueDate.
type Materialization struct {
	UserID              string
	TemplateID          string
	ExpectedNextDueDate string
	NextDueDate         string
	Transaction         *Transaction
}

// CreateRecurringTemplateInput holds the fields accepted when creating a template
type CreateRecurringTemplateInput struct {
	Name       string
	CategoryID string
	Amount     decimal.Decimal
	Type       TransactionType
	Frequency  Frequency
	StartDate  string
	Notes      string
}

// UpdateRecurringTemplateInput holds optional fields; nil leaves the value unchanged
type UpdateRecurringTemplateInput struct {
	Name        *string
	CategoryID  *string
	Amount      *decimal.Decimal
	Type        *TransactionType
	Frequency   *Frequency
	StartDate   *string
	NextDueDate *string
	IsActive    *bool
	Notes       *string
}

// UpcomingOccurrence is a projected due date for a template within a preview window
type UpcomingOccurrence struct {
	Template *RecurringTemplate `json:"template"`
	Dates    []string           `json:"dates"`
}

type RecurringTemplateRepository interface {
	Create(ctx context.Context, template *RecurringTemplate) (*RecurringTemplate, error)
	GetByID(ctx context.Context, userID, id string) (*RecurringTemplate, error)
	ListByUser(ctx context.Context, userID string) ([]*RecurringTemplate, error)
	// Update writes the template only while the stored next due date still equals
	// expectedNextDueDate, otherwise it fails with ErrDueDateConflict
	Update(ctx context.Context, template *RecurringTemplate, expectedNextDueDate string) (*RecurringTemplate, error)
	Delete(ctx context.Context, userID, id string) error
	Materialize(ctx context.Context, m Materialization) (*Transaction, error)
}
