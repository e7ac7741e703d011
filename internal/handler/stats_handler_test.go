package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/testutil"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStatsHandler() *StatsHandler {
	categories := testutil.NewMockCategoryRepository()
	categories.AddCategory(&domain.Category{ID: "cat-food", UserID: testUserID, Name: "Food", Type: domain.TransactionTypeExpense})
	categories.AddCategory(&domain.Category{ID: "cat-salary", UserID: testUserID, Name: "Salary", Type: domain.TransactionTypeIncome})

	transactions := testutil.NewMockTransactionRepository()
	addTestTransaction(transactions, "tx-1", testUserID, "cat-salary", domain.TransactionTypeIncome, 1000, "2025-02-05")
	addTestTransaction(transactions, "tx-2", testUserID, "cat-food", domain.TransactionTypeExpense, 200, "2025-02-10")
	addTestTransaction(transactions, "tx-3", testUserID, "cat-salary", domain.TransactionTypeIncome, 1500, "2025-03-01")
	addTestTransaction(transactions, "tx-4", testUserID, "cat-food", domain.TransactionTypeExpense, 300, "2025-03-05")
	addTestTransaction(transactions, "tx-5", testUserID, "cat-gone", domain.TransactionTypeExpense, 50, "2024-12-31")
	addTestTransaction(transactions, "tx-bob", otherUserID, "cat-bob", domain.TransactionTypeIncome, 9999, "2025-03-02")

	templates := testutil.NewMockRecurringTemplateRepository(transactions)
	addTestTemplate(templates, "rec-1", testUserID, "cat-food", domain.FrequencyMonthly, "2025-04-01", true)
	addTestTemplate(templates, "rec-2", testUserID, "cat-food", domain.FrequencyMonthly, "2025-04-01", false)

	statsService := service.NewStatsService(transactions, categories, templates, util.NewMockClock("2025-03-15"))
	return NewStatsHandler(statsService)
}

func getStats(t *testing.T, handlerFunc echo.HandlerFunc, target string, out interface{}) int {
	t.Helper()
	e := echo.New()
	c, rec := newJSONContext(e, http.MethodGet, target, "")
	setupAuthContext(c, testUserID)
	require.NoError(t, handlerFunc(c))
	if rec.Code == http.StatusOK && out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func TestGetSummary_ClientAnchor(t *testing.T) {
	h := setupStatsHandler()

	var response SummaryResponse
	status := getStats(t, h.GetSummary, "/api/v1/stats/summary?month=1&year=2025", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, AnchorSourceClient, response.AnchorSource)
	assert.Equal(t, 2025, response.Month.Year)
	assert.Equal(t, 1, response.Month.Month)
	assert.Equal(t, "1000.00", response.Month.Income)
	assert.Equal(t, "200.00", response.Month.Expenses)
	assert.Equal(t, "800.00", response.Month.Net)
	assert.Equal(t, 2, response.Month.Count)
	assert.Equal(t, CategoryTotalsResponse{Income: "0.00", Expenses: "200.00"}, response.Month.ByCategory["Food"])

	assert.Equal(t, "1000.00", response.YearToDate.Income)
	assert.Equal(t, "200.00", response.YearToDate.Expenses)
	assert.Equal(t, "2500.00", response.AllTime.Income)
	assert.Equal(t, "550.00", response.AllTime.Expenses)
	assert.Equal(t, 5, response.AllTime.Count)
	assert.Equal(t, 1, response.ActiveRecurring)
}

func TestGetSummary_ServerAnchor(t *testing.T) {
	h := setupStatsHandler()

	var response SummaryResponse
	status := getStats(t, h.GetSummary, "/api/v1/stats/summary", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, AnchorSourceServer, response.AnchorSource)
	assert.Equal(t, 2025, response.Month.Year)
	assert.Equal(t, 2, response.Month.Month)
	assert.Equal(t, "1500.00", response.Month.Income)
	assert.Equal(t, "2500.00", response.YearToDate.Income)
	assert.Equal(t, "500.00", response.YearToDate.Expenses)
}

func TestGetSummary_PartialAnchorUsesServerForMissingPart(t *testing.T) {
	h := setupStatsHandler()

	var response SummaryResponse
	status := getStats(t, h.GetSummary, "/api/v1/stats/summary?month=11", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, AnchorSourceServer, response.AnchorSource)
	assert.Equal(t, 2025, response.Month.Year)
	assert.Equal(t, 11, response.Month.Month)
	assert.Equal(t, 0, response.Month.Count)
	assert.Equal(t, "0.00", response.Month.Net)
}

func TestGetSummary_InvalidAnchor(t *testing.T) {
	h := setupStatsHandler()

	for _, query := range []string{"?month=12&year=2025", "?month=1&year=abc"} {
		t.Run(query, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, getStats(t, h.GetSummary, "/api/v1/stats/summary"+query, nil))
		})
	}
}

func TestGetMonthly_OldestFirst(t *testing.T) {
	h := setupStatsHandler()

	var response MonthlyResponse
	status := getStats(t, h.GetMonthly, "/api/v1/stats/monthly?months=4&month=2&year=2025", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, AnchorSourceClient, response.AnchorSource)
	require.Len(t, response.Months, 4)

	assert.Equal(t, 2024, response.Months[0].Year)
	assert.Equal(t, 11, response.Months[0].Month)
	assert.Equal(t, "50.00", response.Months[0].Expenses)
	assert.Equal(t, CategoryTotalsResponse{Income: "0.00", Expenses: "50.00"}, response.Months[0].ByCategory[domain.UncategorizedName])

	assert.Equal(t, 0, response.Months[1].Month)
	assert.Equal(t, 0, response.Months[1].Count)
	assert.Equal(t, 1, response.Months[2].Month)
	assert.Equal(t, 2, response.Months[3].Month)
	assert.Equal(t, "1200.00", response.Months[3].Net)
}

func TestGetMonthly_DefaultWindow(t *testing.T) {
	h := setupStatsHandler()

	var response MonthlyResponse
	status := getStats(t, h.GetMonthly, "/api/v1/stats/monthly", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, AnchorSourceServer, response.AnchorSource)
	assert.Len(t, response.Months, service.DefaultStatsMonths)
}

func TestGetMonthly_InvalidWindow(t *testing.T) {
	h := setupStatsHandler()

	for _, query := range []string{"?months=0", "?months=25", "?months=six"} {
		t.Run(query, func(t *testing.T) {
			e := echo.New()
			c, rec := newJSONContext(e, http.MethodGet, "/api/v1/stats/monthly"+query, "")
			setupAuthContext(c, testUserID)
			require.NoError(t, h.GetMonthly(c))
			assertFieldError(t, rec, "months")
		})
	}
}

func TestGetComparison(t *testing.T) {
	h := setupStatsHandler()

	var response ComparisonResponse
	status := getStats(t, h.GetComparison, "/api/v1/stats/comparison?month=2&year=2025", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, response.Current.Month)
	assert.Equal(t, 1, response.Previous.Month)

	assert.Equal(t, "500.00", response.Income.Amount)
	require.NotNil(t, response.Income.Percent)
	assert.Equal(t, "50.00", *response.Income.Percent)

	assert.Equal(t, "100.00", response.Expenses.Amount)
	require.NotNil(t, response.Expenses.Percent)
	assert.Equal(t, "50.00", *response.Expenses.Percent)

	assert.Equal(t, "400.00", response.Net.Amount)
	require.NotNil(t, response.Net.Percent)
	assert.Equal(t, "50.00", *response.Net.Percent)
}

func TestGetComparison_ZeroBaseHasNoPercent(t *testing.T) {
	h := setupStatsHandler()

	var response ComparisonResponse
	status := getStats(t, h.GetComparison, "/api/v1/stats/comparison?month=1&year=2025", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, response.Previous.Month)
	assert.Equal(t, "1000.00", response.Income.Amount)
	assert.Nil(t, response.Income.Percent)
}

func TestGetComparison_JanuaryComparesWithPreviousDecember(t *testing.T) {
	h := setupStatsHandler()

	var response ComparisonResponse
	status := getStats(t, h.GetComparison, "/api/v1/stats/comparison?month=0&year=2025", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2024, response.Previous.Year)
	assert.Equal(t, 11, response.Previous.Month)
	assert.Equal(t, "50.00", response.Net.Amount)
	require.NotNil(t, response.Net.Percent)
	assert.Equal(t, "100.00", *response.Net.Percent)
}

func TestGetYearly(t *testing.T) {
	h := setupStatsHandler()

	var response YearlyResponse
	status := getStats(t, h.GetYearly, "/api/v1/stats/yearly?year=2025", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, AnchorSourceClient, response.AnchorSource)
	assert.Equal(t, 2025, response.Year)
	assert.Equal(t, "2500.00", response.Income)
	assert.Equal(t, "500.00", response.Expenses)
	assert.Equal(t, "2000.00", response.Net)
	assert.Equal(t, 4, response.Count)
	require.Len(t, response.Months, 12)
	assert.Equal(t, 0, response.Months[0].Month)
	assert.Equal(t, 11, response.Months[11].Month)
	assert.Equal(t, "1500.00", response.Months[2].Income)
	assert.Equal(t, CategoryTotalsResponse{Income: "2500.00", Expenses: "0.00"}, response.ByCategory["Salary"])
}

func TestGetYearly_DefaultsToServerYear(t *testing.T) {
	h := setupStatsHandler()

	var response YearlyResponse
	status := getStats(t, h.GetYearly, "/api/v1/stats/yearly", &response)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, AnchorSourceServer, response.AnchorSource)
	assert.Equal(t, 2025, response.Year)
}
