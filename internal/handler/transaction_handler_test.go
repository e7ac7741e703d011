package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/testutil"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactionHandler() (*TransactionHandler, *testutil.MockTransactionRepository) {
	transactions := testutil.NewMockTransactionRepository()
	categories := testutil.NewMockCategoryRepository()
	categories.AddCategory(&domain.Category{ID: "cat-food", UserID: testUserID, Name: "Food", Type: domain.TransactionTypeExpense})
	categories.AddCategory(&domain.Category{ID: "cat-salary", UserID: testUserID, Name: "Salary", Type: domain.TransactionTypeIncome})
	categories.AddCategory(&domain.Category{ID: "cat-other", UserID: otherUserID, Name: "Food", Type: domain.TransactionTypeExpense})

	transactionService := service.NewTransactionService(transactions, categories, util.NewMockClock("2025-03-15"))
	return NewTransactionHandler(transactionService), transactions
}

func addTestTransaction(repo *testutil.MockTransactionRepository, id, userID, categoryID string, txType domain.TransactionType, amount int64, date string) {
	repo.AddTransaction(&domain.Transaction{
		ID:         id,
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(amount),
		Type:       txType,
		Date:       date,
		CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	h, repo := setupTransactionHandler()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions",
		`{"categoryId":"cat-food","amount":"42.5","type":"expense","date":"2025-03-10","notes":" lunch "}`)
	setupAuthContext(c, testUserID)
	require.NoError(t, h.CreateTransaction(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var response TransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.ID)
	assert.Equal(t, "42.50", response.Amount)
	assert.Equal(t, "expense", response.Type)
	assert.Equal(t, "2025-03-10", response.Date)
	assert.Equal(t, "lunch", response.Notes)
	assert.False(t, response.IsRecurring)
	assert.Nil(t, response.RecurringID)
	assert.Equal(t, 1, repo.Count())
}

func TestCreateTransaction_DefaultsToToday(t *testing.T) {
	e := echo.New()
	h, _ := setupTransactionHandler()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions", `{"categoryId":"cat-salary","amount":"1000","type":"income"}`)
	setupAuthContext(c, testUserID)
	require.NoError(t, h.CreateTransaction(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var response TransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "2025-03-15", response.Date)
	assert.Equal(t, "1000.00", response.Amount)
}

func TestCreateTransaction_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed amount", `{"categoryId":"cat-food","amount":"abc","type":"expense"}`, "amount"},
		{"zero amount", `{"categoryId":"cat-food","amount":"0","type":"expense"}`, "amount"},
		{"negative amount", `{"categoryId":"cat-food","amount":"-5","type":"expense"}`, "amount"},
		{"sub-cent amount", `{"categoryId":"cat-food","amount":"0.001","type":"expense"}`, "amount"},
		{"three decimal places", `{"categoryId":"cat-food","amount":"1.005","type":"expense"}`, "amount"},
		{"thirteen integer digits", `{"categoryId":"cat-food","amount":"1000000000000","type":"expense"}`, "amount"},
		{"unknown type", `{"categoryId":"cat-food","amount":"5","type":"transfer"}`, "type"},
		{"impossible date", `{"categoryId":"cat-food","amount":"5","type":"expense","date":"2025-02-30"}`, "date"},
		{"malformed date", `{"categoryId":"cat-food","amount":"5","type":"expense","date":"03/10/2025"}`, "date"},
		{"unknown category", `{"categoryId":"missing","amount":"5","type":"expense"}`, "categoryId"},
		{"other user's category", `{"categoryId":"cat-other","amount":"5","type":"expense"}`, "categoryId"},
		{"category type mismatch", `{"categoryId":"cat-food","amount":"5","type":"income"}`, "categoryId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h, repo := setupTransactionHandler()

			c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions", tt.body)
			setupAuthContext(c, testUserID)
			require.NoError(t, h.CreateTransaction(c))

			assertFieldError(t, rec, tt.field)
			assert.Equal(t, 0, repo.Count())
		})
	}
}

func TestCreateTransaction_Unauthenticated(t *testing.T) {
	e := echo.New()
	h, _ := setupTransactionHandler()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions", `{"categoryId":"cat-food","amount":"5","type":"expense"}`)
	require.NoError(t, h.CreateTransaction(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetTransactions_Filters(t *testing.T) {
	h, repo := setupTransactionHandler()
	addTestTransaction(repo, "tx-jan", testUserID, "cat-food", domain.TransactionTypeExpense, 10, "2025-01-10")
	addTestTransaction(repo, "tx-feb", testUserID, "cat-food", domain.TransactionTypeExpense, 20, "2025-02-01")
	addTestTransaction(repo, "tx-feb-income", testUserID, "cat-salary", domain.TransactionTypeIncome, 500, "2025-02-25")
	addTestTransaction(repo, "tx-old", testUserID, "cat-food", domain.TransactionTypeExpense, 30, "2024-01-05")
	addTestTransaction(repo, "tx-other", otherUserID, "cat-other", domain.TransactionTypeExpense, 40, "2025-01-10")

	tests := []struct {
		name  string
		query string
		ids   []string
	}{
		{"no filters, newest first", "", []string{"tx-feb-income", "tx-feb", "tx-jan", "tx-old"}},
		{"january 2025 (0-indexed month)", "?month=0&year=2025", []string{"tx-jan"}},
		{"february any year", "?month=1", []string{"tx-feb-income", "tx-feb"}},
		{"year only", "?year=2024", []string{"tx-old"}},
		{"type", "?type=income", []string{"tx-feb-income"}},
		{"category", "?categoryId=cat-food&year=2025", []string{"tx-feb", "tx-jan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c, rec := newJSONContext(e, http.MethodGet, "/api/v1/transactions"+tt.query, "")
			setupAuthContext(c, testUserID)
			require.NoError(t, h.GetTransactions(c))

			require.Equal(t, http.StatusOK, rec.Code)
			var response []TransactionResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			ids := make([]string, len(response))
			for i, tx := range response {
				ids[i] = tx.ID
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestGetTransactions_InvalidParams(t *testing.T) {
	tests := []struct {
		query string
		field string
	}{
		{"?month=12", "month"},
		{"?month=-1", "month"},
		{"?month=jan", "month"},
		{"?year=0", "year"},
		{"?type=refund", "type"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			e := echo.New()
			h, _ := setupTransactionHandler()

			c, rec := newJSONContext(e, http.MethodGet, "/api/v1/transactions"+tt.query, "")
			setupAuthContext(c, testUserID)
			require.NoError(t, h.GetTransactions(c))

			assertFieldError(t, rec, tt.field)
		})
	}
}

func TestGetTransactions_EmptyListIsArray(t *testing.T) {
	e := echo.New()
	h, _ := setupTransactionHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/transactions", "")
	setupAuthContext(c, testUserID)
	require.NoError(t, h.GetTransactions(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetTransaction_OtherUser(t *testing.T) {
	e := echo.New()
	h, repo := setupTransactionHandler()
	addTestTransaction(repo, "tx-other", otherUserID, "cat-other", domain.TransactionTypeExpense, 40, "2025-01-10")

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/transactions/tx-other", "")
	c.SetParamNames("id")
	c.SetParamValues("tx-other")
	setupAuthContext(c, testUserID)
	require.NoError(t, h.GetTransaction(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTransaction_Partial(t *testing.T) {
	e := echo.New()
	h, repo := setupTransactionHandler()
	addTestTransaction(repo, "tx-1", testUserID, "cat-food", domain.TransactionTypeExpense, 10, "2025-03-01")

	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/transactions/tx-1", `{"amount":"12.34"}`)
	c.SetParamNames("id")
	c.SetParamValues("tx-1")
	setupAuthContext(c, testUserID)
	require.NoError(t, h.UpdateTransaction(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var response TransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "12.34", response.Amount)
	assert.Equal(t, "2025-03-01", response.Date)
	assert.Equal(t, "cat-food", response.CategoryID)
}

func TestUpdateTransaction_RejectsUnstorableAmount(t *testing.T) {
	for _, amount := range []string{"0.001", "12.345", "1000000000000"} {
		t.Run(amount, func(t *testing.T) {
			e := echo.New()
			h, repo := setupTransactionHandler()
			addTestTransaction(repo, "tx-1", testUserID, "cat-food", domain.TransactionTypeExpense, 10, "2025-03-01")

			c, rec := newJSONContext(e, http.MethodPut, "/api/v1/transactions/tx-1", `{"amount":"`+amount+`"}`)
			c.SetParamNames("id")
			c.SetParamValues("tx-1")
			setupAuthContext(c, testUserID)
			require.NoError(t, h.UpdateTransaction(c))

			assertFieldError(t, rec, "amount")
			stored, err := repo.GetByID(c.Request().Context(), testUserID, "tx-1")
			require.NoError(t, err)
			assert.Equal(t, "10.00", stored.Amount.StringFixed(2))
		})
	}
}

func TestUpdateTransaction_TypeChangeNeedsMatchingCategory(t *testing.T) {
	e := echo.New()
	h, repo := setupTransactionHandler()
	addTestTransaction(repo, "tx-1", testUserID, "cat-food", domain.TransactionTypeExpense, 10, "2025-03-01")

	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/transactions/tx-1", `{"type":"income"}`)
	c.SetParamNames("id")
	c.SetParamValues("tx-1")
	setupAuthContext(c, testUserID)
	require.NoError(t, h.UpdateTransaction(c))

	assertFieldError(t, rec, "categoryId")
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	e := echo.New()
	h, _ := setupTransactionHandler()

	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/transactions/missing", `{"notes":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	setupAuthContext(c, testUserID)
	require.NoError(t, h.UpdateTransaction(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTransaction(t *testing.T) {
	e := echo.New()
	h, repo := setupTransactionHandler()
	addTestTransaction(repo, "tx-1", testUserID, "cat-food", domain.TransactionTypeExpense, 10, "2025-03-01")

	c, rec := newJSONContext(e, http.MethodDelete, "/api/v1/transactions/tx-1", "")
	c.SetParamNames("id")
	c.SetParamValues("tx-1")
	setupAuthContext(c, testUserID)
	require.NoError(t, h.DeleteTransaction(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, repo.Count())
}
