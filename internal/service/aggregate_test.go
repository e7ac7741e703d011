package service

import (
	"testing"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date string, txType domain.TransactionType, amount string, categoryID string) *domain.Transaction {
	return &domain.Transaction{
		ID:         date + string(txType) + amount + categoryID,
		UserID:     "user-1",
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Type:       txType,
		Date:       date,
	}
}

var testCategoryNames = map[string]string{
	"cat-salary": "Salary",
	"cat-food":   "Food",
	"cat-rent":   "Housing",
}

func sampleTransactions() []*domain.Transaction {
	return []*domain.Transaction{
		tx("2024-01-31", domain.TransactionTypeExpense, "20.00", "cat-food"),
		tx("2024-02-01", domain.TransactionTypeIncome, "3000.00", "cat-salary"),
		tx("2024-02-15", domain.TransactionTypeExpense, "45.50", "cat-food"),
		tx("2024-02-29", domain.TransactionTypeExpense, "1200.00", "cat-rent"),
		tx("2024-03-01", domain.TransactionTypeIncome, "3000.00", "cat-salary"),
		tx("2024-03-15", domain.TransactionTypeExpense, "60.25", "cat-food"),
		tx("2024-03-15", domain.TransactionTypeExpense, "14.75", "cat-food"),
		tx("2024-03-20", domain.TransactionTypeIncome, "50.00", "cat-deleted"),
		tx("2023-03-15", domain.TransactionTypeExpense, "999.00", "cat-food"),
	}
}

func TestAggregateMonth_MatchesCalendarMonthOnly(t *testing.T) {
	txs := []*domain.Transaction{tx("2024-03-15", domain.TransactionTypeExpense, "10", "cat-food")}

	march := AggregateMonth(txs, testCategoryNames, 2024, time.March)
	assert.Equal(t, 1, march.Count)

	february := AggregateMonth(txs, testCategoryNames, 2024, time.February)
	assert.Equal(t, 0, february.Count)
}

func TestAggregateMonth_MonthBoundaries(t *testing.T) {
	txs := sampleTransactions()

	feb := AggregateMonth(txs, testCategoryNames, 2024, time.February)
	assert.Equal(t, 3, feb.Count)
	assert.Equal(t, "3000", feb.Income.String())
	assert.Equal(t, "1245.5", feb.Expenses.String())
	assert.Equal(t, "1754.5", feb.Net.String())

	jan := AggregateMonth(txs, testCategoryNames, 2024, time.January)
	assert.Equal(t, 1, jan.Count)
	assert.Equal(t, "20", jan.Expenses.String())
}

func TestAggregateMonth_CategoryBreakdown(t *testing.T) {
	march := AggregateMonth(sampleTransactions(), testCategoryNames, 2024, time.March)

	require.Contains(t, march.ByCategory, "Food")
	assert.Equal(t, "75", march.ByCategory["Food"].Expenses.String())
	assert.True(t, march.ByCategory["Food"].Income.IsZero())

	require.Contains(t, march.ByCategory, domain.UncategorizedName)
	assert.Equal(t, "50", march.ByCategory[domain.UncategorizedName].Income.String())

	assert.NotContains(t, march.ByCategory, "Housing")
}

func TestAggregateMonth_BreakdownSumsEqualTotals(t *testing.T) {
	txs := sampleTransactions()
	for month := time.January; month <= time.December; month++ {
		agg := AggregateMonth(txs, testCategoryNames, 2024, month)

		income := decimal.Zero
		expenses := decimal.Zero
		for _, c := range agg.ByCategory {
			income = income.Add(c.Income)
			expenses = expenses.Add(c.Expenses)
		}
		assert.True(t, income.Equal(agg.Income), "income %s", month)
		assert.True(t, expenses.Equal(agg.Expenses), "expenses %s", month)
	}
}

func TestAggregateMonth_IgnoresMalformedDates(t *testing.T) {
	txs := []*domain.Transaction{
		tx("", domain.TransactionTypeExpense, "1", "cat-food"),
		tx("2024-3-15", domain.TransactionTypeExpense, "1", "cat-food"),
	}
	agg := AggregateMonth(txs, testCategoryNames, 2024, time.March)
	assert.Equal(t, 0, agg.Count)
	assert.True(t, agg.Expenses.IsZero())
}

func TestAggregateMonths_OldestFirstAcrossYear(t *testing.T) {
	months := AggregateMonths(sampleTransactions(), testCategoryNames, 2024, time.February, 4)
	require.Len(t, months, 4)

	assert.Equal(t, 2023, months[0].Year)
	assert.Equal(t, time.November, months[0].Month)
	assert.Equal(t, time.December, months[1].Month)
	assert.Equal(t, 2024, months[2].Year)
	assert.Equal(t, time.January, months[2].Month)
	assert.Equal(t, time.February, months[3].Month)
	assert.Equal(t, 3, months[3].Count)

	assert.Empty(t, AggregateMonths(sampleTransactions(), testCategoryNames, 2024, time.February, 0))
}

func TestAggregateYear(t *testing.T) {
	year := AggregateYear(sampleTransactions(), testCategoryNames, 2024)

	require.Len(t, year.Months, 12)
	assert.Equal(t, 8, year.Count)
	assert.Equal(t, "6050", year.Income.String())
	assert.Equal(t, "1340.5", year.Expenses.String())
	assert.Equal(t, "4709.5", year.Net.String())
	assert.Equal(t, "140.5", year.ByCategory["Food"].Expenses.String())

	other := AggregateYear(sampleTransactions(), testCategoryNames, 2023)
	assert.Equal(t, 1, other.Count)
}

func TestCompareMonths(t *testing.T) {
	cmp := CompareMonths(sampleTransactions(), testCategoryNames, 2024, time.March)

	assert.Equal(t, time.February, cmp.Previous.Month)
	assert.Equal(t, "50", cmp.Income.Amount.String())
	require.NotNil(t, cmp.Income.Percent)
	assert.Equal(t, "1.67", cmp.Income.Percent.StringFixed(2))

	assert.Equal(t, "-1170.5", cmp.Expenses.Amount.String())
	require.NotNil(t, cmp.Expenses.Percent)
	assert.Equal(t, "-93.98", cmp.Expenses.Percent.StringFixed(2))
}

func TestCompareMonths_ZeroBaseOmitsPercent(t *testing.T) {
	cmp := CompareMonths(sampleTransactions(), testCategoryNames, 2024, time.January)

	assert.Equal(t, 2023, cmp.Previous.Year)
	assert.Equal(t, time.December, cmp.Previous.Month)
	assert.Nil(t, cmp.Expenses.Percent)
	assert.Equal(t, "20", cmp.Expenses.Amount.String())
}

func TestSumTotals(t *testing.T) {
	all := SumTotals(sampleTransactions(), nil)
	assert.Equal(t, 9, all.Count)
	assert.Equal(t, "2339.5", all.Expenses.String())

	onlyIncome := SumTotals(sampleTransactions(), func(tx *domain.Transaction) bool {
		return tx.Type == domain.TransactionTypeIncome
	})
	assert.Equal(t, 3, onlyIncome.Count)
	assert.True(t, onlyIncome.Expenses.IsZero())
}
