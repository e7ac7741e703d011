package service

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/testutil"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactionService() (*TransactionService, *testutil.MockTransactionRepository, *testutil.MockEventPublisher) {
	transactions := testutil.NewMockTransactionRepository()
	categories := testutil.NewMockCategoryRepository()
	categories.AddCategory(&domain.Category{ID: "food", UserID: "user-1", Name: "Food", Type: domain.TransactionTypeExpense})
	categories.AddCategory(&domain.Category{ID: "salary", UserID: "user-1", Name: "Salary", Type: domain.TransactionTypeIncome})

	publisher := testutil.NewMockEventPublisher()
	svc := NewTransactionService(transactions, categories, util.NewMockClock("2024-03-15"))
	svc.SetEventPublisher(publisher)
	return svc, transactions, publisher
}

func TestTransactionService_CreateTransaction(t *testing.T) {
	svc, transactions, publisher := setupTransactionService()

	created, err := svc.CreateTransaction(context.Background(), "user-1", domain.CreateTransactionInput{
		CategoryID: "food",
		Amount:     decimal.RequireFromString("12.34"),
		Type:       domain.TransactionTypeExpense,
		Date:       "2024-03-01",
		Notes:      "  lunch ",
	})
	require.NoError(t, err)
	assert.Equal(t, "lunch", created.Notes)
	assert.False(t, created.IsRecurring)
	assert.Nil(t, created.RecurringID)
	assert.Equal(t, 1, transactions.Count())
	assert.Equal(t, []string{"transaction.created"}, publisher.Types("user-1"))
}

func TestTransactionService_CreateTransaction_DefaultsToToday(t *testing.T) {
	svc, _, _ := setupTransactionService()

	created, err := svc.CreateTransaction(context.Background(), "user-1", domain.CreateTransactionInput{
		CategoryID: "salary",
		Amount:     decimal.NewFromInt(10),
		Type:       domain.TransactionTypeIncome,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", created.Date)
}

func TestTransactionService_CreateTransaction_Validation(t *testing.T) {
	svc, transactions, _ := setupTransactionService()

	tests := []struct {
		name     string
		input    domain.CreateTransactionInput
		expected error
	}{
		{"zero amount", domain.CreateTransactionInput{CategoryID: "food", Amount: decimal.Zero, Type: domain.TransactionTypeExpense}, domain.ErrInvalidAmount},
		{"bad type", domain.CreateTransactionInput{CategoryID: "food", Amount: decimal.NewFromInt(1), Type: "gift"}, domain.ErrInvalidTransactionType},
		{"bad date", domain.CreateTransactionInput{CategoryID: "food", Amount: decimal.NewFromInt(1), Type: domain.TransactionTypeExpense, Date: "2024-13-01"}, domain.ErrInvalidDate},
		{"missing category", domain.CreateTransactionInput{CategoryID: "nope", Amount: decimal.NewFromInt(1), Type: domain.TransactionTypeExpense}, domain.ErrCategoryNotFound},
		{"type mismatch", domain.CreateTransactionInput{CategoryID: "salary", Amount: decimal.NewFromInt(1), Type: domain.TransactionTypeExpense}, domain.ErrCategoryMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTransaction(context.Background(), "user-1", tt.input)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
	assert.Equal(t, 0, transactions.Count())
}

func TestTransactionService_ListTransactions_Filters(t *testing.T) {
	svc, transactions, _ := setupTransactionService()
	recurringID := "tpl-1"
	transactions.AddTransaction(&domain.Transaction{ID: "a", UserID: "user-1", Date: "2024-03-01", Type: domain.TransactionTypeExpense, CategoryID: "food"})
	transactions.AddTransaction(&domain.Transaction{ID: "b", UserID: "user-1", Date: "2024-03-20", Type: domain.TransactionTypeIncome, CategoryID: "salary", RecurringID: &recurringID, IsRecurring: true})
	transactions.AddTransaction(&domain.Transaction{ID: "c", UserID: "user-1", Date: "2024-02-29", Type: domain.TransactionTypeExpense, CategoryID: "food"})
	transactions.AddTransaction(&domain.Transaction{ID: "d", UserID: "user-1", Date: "2023-03-10", Type: domain.TransactionTypeExpense, CategoryID: "food"})
	transactions.AddTransaction(&domain.Transaction{ID: "e", UserID: "user-2", Date: "2024-03-05", Type: domain.TransactionTypeExpense, CategoryID: "food"})

	ids := func(txs []*domain.Transaction) []string {
		out := make([]string, 0, len(txs))
		for _, tx := range txs {
			out = append(out, tx.ID)
		}
		return out
	}

	all, err := svc.ListTransactions(context.Background(), "user-1", domain.TransactionFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(all))

	year := 2024
	march := time.March
	inMarch, err := svc.ListTransactions(context.Background(), "user-1", domain.TransactionFilters{Year: &year, Month: &march})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(inMarch))

	expense := domain.TransactionTypeExpense
	expenses, err := svc.ListTransactions(context.Background(), "user-1", domain.TransactionFilters{Year: &year, Type: &expense})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(expenses))

	spawned, err := svc.ListTransactions(context.Background(), "user-1", domain.TransactionFilters{RecurringID: &recurringID})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(spawned))
}

func TestTransactionService_UpdateAndDelete(t *testing.T) {
	svc, transactions, publisher := setupTransactionService()
	recurringID := "tpl-1"
	transactions.AddTransaction(&domain.Transaction{ID: "a", UserID: "user-1", Date: "2024-03-01", Type: domain.TransactionTypeExpense, CategoryID: "food", Amount: decimal.NewFromInt(5), RecurringID: &recurringID, IsRecurring: true})

	amount := decimal.NewFromInt(7)
	date := "2024-03-02"
	updated, err := svc.UpdateTransaction(context.Background(), "user-1", "a", domain.UpdateTransactionInput{Amount: &amount, Date: &date})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(amount))
	assert.Equal(t, "2024-03-02", updated.Date)
	assert.Equal(t, "tpl-1", *updated.RecurringID)

	income := domain.TransactionTypeIncome
	_, err = svc.UpdateTransaction(context.Background(), "user-1", "a", domain.UpdateTransactionInput{Type: &income})
	assert.ErrorIs(t, err, domain.ErrCategoryMismatch)

	_, err = svc.UpdateTransaction(context.Background(), "user-2", "a", domain.UpdateTransactionInput{Amount: &amount})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	require.NoError(t, svc.DeleteTransaction(context.Background(), "user-1", "a"))
	assert.ErrorIs(t, svc.DeleteTransaction(context.Background(), "user-1", "a"), domain.ErrTransactionNotFound)
	assert.Equal(t, []string{"transaction.updated", "transaction.deleted"}, publisher.Types("user-1"))
}
