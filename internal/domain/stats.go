package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotals holds per-type sums for a single category
type CategoryTotals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// MonthlyAggregate summarizes a user's transactions in one calendar month
type MonthlyAggregate struct {
	Year       int                        `json:"year"`
	Month      time.Month                 `json:"month"`
	Income     decimal.Decimal            `json:"income"`
	Expenses   decimal.Decimal            `json:"expenses"`
	Net        decimal.Decimal            `json:"net"`
	Count      int                        `json:"count"`
	ByCategory map[string]*CategoryTotals `json:"byCategory"`
}

// YearlyAggregate summarizes a calendar year month by month
type YearlyAggregate struct {
	Year       int                        `json:"year"`
	Income     decimal.Decimal            `json:"income"`
	Expenses   decimal.Decimal            `json:"expenses"`
	Net        decimal.Decimal            `json:"net"`
	Count      int                        `json:"count"`
	Months     []*MonthlyAggregate        `json:"months"`
	ByCategory map[string]*CategoryTotals `json:"byCategory"`
}

// Totals is a plain income/expense roll-up
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Count    int             `json:"count"`
}

// Change describes the movement of one metric between two months.
// Percent is nil when the previous value is zero.
type Change struct {
	Amount  decimal.Decimal  `json:"amount"`
	Percent *decimal.Decimal `json:"percent"`
}

// MonthComparison compares an anchor month with the month before it
type MonthComparison struct {
	Current  *MonthlyAggregate `json:"current"`
	Previous *MonthlyAggregate `json:"previous"`
	Income   Change            `json:"income"`
	Expenses Change            `json:"expenses"`
	Net      Change            `json:"net"`
}

// StatsSummary is the dashboard view for an anchor month
type StatsSummary struct {
	Month           *MonthlyAggregate `json:"month"`
	YearToDate      Totals            `json:"yearToDate"`
	AllTime         Totals            `json:"allTime"`
	ActiveRecurring int               `json:"activeRecurring"`
}
