package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Amount limits, matching NUMERIC(14, 2)
const (
	AmountDecimalPlaces = 2
	AmountIntegerDigits = 12
)

var maxAmount = decimal.New(1, AmountIntegerDigits)

// ValidateAmount accepts positive amounts with at most two decimal places and
// twelve integer digits. Trailing zeros do not count as decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThanOrEqual(maxAmount) {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(AmountDecimalPlaces)) {
		return ErrInvalidAmount
	}
	return nil
}

// IsValid reports whether t is income or expense
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single income or expense entry. Date is YYYY-MM-DD.
// RecurringID is a weak back-reference to the template that spawned it.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
	Notes       string          `json:"notes"`
	IsRecurring bool            `json:"isRecurring"`
	RecurringID *string         `json:"recurringId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TransactionFilters narrows a transaction listing. Month is 1-12.
type TransactionFilters struct {
	Year        *int
	Month       *time.Month
	Type        *TransactionType
	CategoryID  *string
	RecurringID *string
}

// CreateTransactionInput holds the fields accepted when recording a transaction
type CreateTransactionInput struct {
	CategoryID string
	Amount     decimal.Decimal
	Type       TransactionType
	Date       string
	Notes      string
}

// UpdateTransactionInput holds optional fields; nil leaves the value unchanged
type UpdateTransactionInput struct {
	CategoryID *string
	Amount     *decimal.Decimal
	Type       *TransactionType
	Date       *string
	Notes      *string
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	GetByID(ctx context.Context, userID, id string) (*Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*Transaction, error)
	Update(ctx context.Context, transaction *Transaction) (*Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}
