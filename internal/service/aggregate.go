package service

import (
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AggregateMonth sums the transactions dated in the given calendar month.
// Dates are matched on their YYYY-MM prefix, never through a time.Time, so the
// host zone cannot shift a transaction into a neighbouring month.
// categoryNames maps category IDs to display names; unknown IDs are grouped
// under domain.UncategorizedName.
func AggregateMonth(transactions []*domain.Transaction, categoryNames map[string]string, year int, month time.Month) *domain.MonthlyAggregate {
	agg := &domain.MonthlyAggregate{
		Year:       year,
		Month:      month,
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		Net:        decimal.Zero,
		ByCategory: make(map[string]*domain.CategoryTotals),
	}

	for _, tx := range transactions {
		if !util.InMonth(tx.Date, year, month) {
			continue
		}
		addToBreakdown(agg.ByCategory, categoryName(categoryNames, tx.CategoryID), tx)
		switch tx.Type {
		case domain.TransactionTypeIncome:
			agg.Income = agg.Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			agg.Expenses = agg.Expenses.Add(tx.Amount)
		}
		agg.Count++
	}

	agg.Net = agg.Income.Sub(agg.Expenses)
	return agg
}

// AggregateMonths returns n consecutive months ending at the anchor, oldest first
func AggregateMonths(transactions []*domain.Transaction, categoryNames map[string]string, anchorYear int, anchorMonth time.Month, n int) []*domain.MonthlyAggregate {
	if n <= 0 {
		return []*domain.MonthlyAggregate{}
	}

	result := make([]*domain.MonthlyAggregate, n)
	for i := 0; i < n; i++ {
		year, month := util.MonthsBack(anchorYear, anchorMonth, n-1-i)
		result[i] = AggregateMonth(transactions, categoryNames, year, month)
	}
	return result
}

// AggregateYear returns January through December of year along with year totals
func AggregateYear(transactions []*domain.Transaction, categoryNames map[string]string, year int) *domain.YearlyAggregate {
	agg := &domain.YearlyAggregate{
		Year:       year,
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		Net:        decimal.Zero,
		Months:     make([]*domain.MonthlyAggregate, 0, 12),
		ByCategory: make(map[string]*domain.CategoryTotals),
	}

	for month := time.January; month <= time.December; month++ {
		m := AggregateMonth(transactions, categoryNames, year, month)
		agg.Months = append(agg.Months, m)
		agg.Income = agg.Income.Add(m.Income)
		agg.Expenses = agg.Expenses.Add(m.Expenses)
		agg.Count += m.Count
		mergeBreakdown(agg.ByCategory, m.ByCategory)
	}

	agg.Net = agg.Income.Sub(agg.Expenses)
	return agg
}

// CompareMonths compares the anchor month with the month before it
func CompareMonths(transactions []*domain.Transaction, categoryNames map[string]string, year int, month time.Month) *domain.MonthComparison {
	prevYear, prevMonth := util.PreviousMonth(year, month)
	current := AggregateMonth(transactions, categoryNames, year, month)
	previous := AggregateMonth(transactions, categoryNames, prevYear, prevMonth)

	return &domain.MonthComparison{
		Current:  current,
		Previous: previous,
		Income:   change(current.Income, previous.Income),
		Expenses: change(current.Expenses, previous.Expenses),
		Net:      change(current.Net, previous.Net),
	}
}

// SumTotals rolls up transactions for which keep returns true
func SumTotals(transactions []*domain.Transaction, keep func(*domain.Transaction) bool) domain.Totals {
	totals := domain.Totals{Income: decimal.Zero, Expenses: decimal.Zero, Net: decimal.Zero}
	for _, tx := range transactions {
		if keep != nil && !keep(tx) {
			continue
		}
		switch tx.Type {
		case domain.TransactionTypeIncome:
			totals.Income = totals.Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			totals.Expenses = totals.Expenses.Add(tx.Amount)
		}
		totals.Count++
	}
	totals.Net = totals.Income.Sub(totals.Expenses)
	return totals
}

// CategoryNames indexes categories by ID for aggregation
func CategoryNames(categories []*domain.Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func categoryName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return domain.UncategorizedName
}

func addToBreakdown(breakdown map[string]*domain.CategoryTotals, name string, tx *domain.Transaction) {
	totals, ok := breakdown[name]
	if !ok {
		totals = &domain.CategoryTotals{Income: decimal.Zero, Expenses: decimal.Zero}
		breakdown[name] = totals
	}
	switch tx.Type {
	case domain.TransactionTypeIncome:
		totals.Income = totals.Income.Add(tx.Amount)
	case domain.TransactionTypeExpense:
		totals.Expenses = totals.Expenses.Add(tx.Amount)
	}
}

func mergeBreakdown(dst, src map[string]*domain.CategoryTotals) {
	for name, t := range src {
		existing, ok := dst[name]
		if !ok {
			dst[name] = &domain.CategoryTotals{Income: t.Income, Expenses: t.Expenses}
			continue
		}
		existing.Income = existing.Income.Add(t.Income)
		existing.Expenses = existing.Expenses.Add(t.Expenses)
	}
}

// change reports the delta between two values; the percentage is omitted for a zero base
func change(current, previous decimal.Decimal) domain.Change {
	c := domain.Change{Amount: current.Sub(previous)}
	if !previous.IsZero() {
		pct := c.Amount.Div(previous.Abs()).Mul(hundred).Round(2)
		c.Percent = &pct
	}
	return c
}
