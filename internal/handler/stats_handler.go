package handler

import (
	"net/http"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/middleware"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// StatsHandler serves the month and year aggregates
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// CategoryTotalsResponse holds per-type sums for one category
type CategoryTotalsResponse struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

// MonthlyAggregateResponse is one month of totals. month is 0-indexed.
type MonthlyAggregateResponse struct {
	Year       int                               `json:"year"`
	Month      int                               `json:"month"`
	Income     string                            `json:"income"`
	Expenses   string                            `json:"expenses"`
	Net        string                            `json:"net"`
	Count      int                               `json:"count"`
	ByCategory map[string]CategoryTotalsResponse `json:"byCategory"`
}

// TotalsResponse is a plain income/expense roll-up
type TotalsResponse struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
	Count    int    `json:"count"`
}

// ChangeResponse is the movement of one metric. percent is null when the base is zero.
type ChangeResponse struct {
	Amount  string  `json:"amount"`
	Percent *string `json:"percent"`
}

// SummaryResponse is the dashboard view for an anchor month
type SummaryResponse struct {
	AnchorSource    string                   `json:"anchorSource"`
	Month           MonthlyAggregateResponse `json:"month"`
	YearToDate      TotalsResponse           `json:"yearToDate"`
	AllTime         TotalsResponse           `json:"allTime"`
	ActiveRecurring int                      `json:"activeRecurring"`
}

// MonthlyResponse lists consecutive months ending at the anchor, oldest first
type MonthlyResponse struct {
	AnchorSource string                     `json:"anchorSource"`
	Months       []MonthlyAggregateResponse `json:"months"`
}

// ComparisonResponse compares the anchor month with the month before it
type ComparisonResponse struct {
	AnchorSource string                   `json:"anchorSource"`
	Current      MonthlyAggregateResponse `json:"current"`
	Previous     MonthlyAggregateResponse `json:"previous"`
	Income       ChangeResponse           `json:"income"`
	Expenses     ChangeResponse           `json:"expenses"`
	Net          ChangeResponse           `json:"net"`
}

// YearlyResponse is a calendar year broken down by month
type YearlyResponse struct {
	AnchorSource string                            `json:"anchorSource"`
	Year         int                               `json:"year"`
	Income       string                            `json:"income"`
	Expenses     string                            `json:"expenses"`
	Net          string                            `json:"net"`
	Count        int                               `json:"count"`
	Months       []MonthlyAggregateResponse        `json:"months"`
	ByCategory   map[string]CategoryTotalsResponse `json:"byCategory"`
}

func toCategoryTotals(in map[string]*domain.CategoryTotals) map[string]CategoryTotalsResponse {
	out := make(map[string]CategoryTotalsResponse, len(in))
	for name, totals := range in {
		out[name] = CategoryTotalsResponse{
			Income:   formatAmount(totals.Income),
			Expenses: formatAmount(totals.Expenses),
		}
	}
	return out
}

func toMonthlyResponse(m *domain.MonthlyAggregate) MonthlyAggregateResponse {
	return MonthlyAggregateResponse{
		Year:       m.Year,
		Month:      formatMonth(m.Month),
		Income:     formatAmount(m.Income),
		Expenses:   formatAmount(m.Expenses),
		Net:        formatAmount(m.Net),
		Count:      m.Count,
		ByCategory: toCategoryTotals(m.ByCategory),
	}
}

func toTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		Income:   formatAmount(t.Income),
		Expenses: formatAmount(t.Expenses),
		Net:      formatAmount(t.Net),
		Count:    t.Count,
	}
}

func toChangeResponse(ch domain.Change) ChangeResponse {
	resp := ChangeResponse{Amount: formatAmount(ch.Amount)}
	if ch.Percent != nil {
		pct := ch.Percent.StringFixed(2)
		resp.Percent = &pct
	}
	return resp
}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Anchor month totals, year-to-date and all-time totals. month is 0-indexed; missing values use the server clock.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (0-11)"
// @Param year query int false "Year"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ProblemDetails
// @Router /stats/summary [get]
func (h *StatsHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, month, source, perr := anchorParams(c, h.statsService.DefaultAnchor)
	if perr != nil {
		return respondParamError(c, perr)
	}

	summary, err := h.statsService.Summary(c.Request().Context(), userID, year, month)
	if err != nil {
		return respondError(c, err, "Failed to compute summary")
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		AnchorSource:    source,
		Month:           toMonthlyResponse(summary.Month),
		YearToDate:      toTotalsResponse(summary.YearToDate),
		AllTime:         toTotalsResponse(summary.AllTime),
		ActiveRecurring: summary.ActiveRecurring,
	})
}

// GetMonthly godoc
// @Summary Monthly trend
// @Description The last n months ending at the anchor month, oldest first
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param months query int false "Number of months (1-24, default 6)"
// @Param month query int false "Anchor month (0-11)"
// @Param year query int false "Anchor year"
// @Success 200 {object} MonthlyResponse
// @Failure 400 {object} ProblemDetails
// @Router /stats/monthly [get]
func (h *StatsHandler) GetMonthly(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	n, perr := queryInt(c, "months", service.DefaultStatsMonths)
	if perr != nil {
		return respondParamError(c, perr)
	}
	if n < 1 || n > service.MaxStatsMonths {
		return NewFieldError(c, "months", "Months must be between 1 and 24")
	}

	year, month, source, perr := anchorParams(c, h.statsService.DefaultAnchor)
	if perr != nil {
		return respondParamError(c, perr)
	}

	months, err := h.statsService.Monthly(c.Request().Context(), userID, year, month, n)
	if err != nil {
		return respondError(c, err, "Failed to compute monthly stats")
	}

	response := MonthlyResponse{AnchorSource: source, Months: make([]MonthlyAggregateResponse, len(months))}
	for i, m := range months {
		response.Months[i] = toMonthlyResponse(m)
	}
	return c.JSON(http.StatusOK, response)
}

// GetComparison godoc
// @Summary Month over month comparison
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (0-11)"
// @Param year query int false "Year"
// @Success 200 {object} ComparisonResponse
// @Failure 400 {object} ProblemDetails
// @Router /stats/comparison [get]
func (h *StatsHandler) GetComparison(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, month, source, perr := anchorParams(c, h.statsService.DefaultAnchor)
	if perr != nil {
		return respondParamError(c, perr)
	}

	cmp, err := h.statsService.Comparison(c.Request().Context(), userID, year, month)
	if err != nil {
		return respondError(c, err, "Failed to compare months")
	}

	return c.JSON(http.StatusOK, ComparisonResponse{
		AnchorSource: source,
		Current:      toMonthlyResponse(cmp.Current),
		Previous:     toMonthlyResponse(cmp.Previous),
		Income:       toChangeResponse(cmp.Income),
		Expenses:     toChangeResponse(cmp.Expenses),
		Net:          toChangeResponse(cmp.Net),
	})
}

// GetYearly godoc
// @Summary Yearly breakdown
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Success 200 {object} YearlyResponse
// @Failure 400 {object} ProblemDetails
// @Router /stats/yearly [get]
func (h *StatsHandler) GetYearly(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, hasYear, perr := queryYear(c, "year")
	if perr != nil {
		return respondParamError(c, perr)
	}
	source := AnchorSourceClient
	if !hasYear {
		year, _ = h.statsService.DefaultAnchor()
		source = AnchorSourceServer
	}

	agg, err := h.statsService.Yearly(c.Request().Context(), userID, year)
	if err != nil {
		return respondError(c, err, "Failed to compute yearly stats")
	}

	response := YearlyResponse{
		AnchorSource: source,
		Year:         agg.Year,
		Income:       formatAmount(agg.Income),
		Expenses:     formatAmount(agg.Expenses),
		Net:          formatAmount(agg.Net),
		Count:        agg.Count,
		Months:       make([]MonthlyAggregateResponse, len(agg.Months)),
		ByCategory:   toCategoryTotals(agg.ByCategory),
	}
	for i, m := range agg.Months {
		response.Months[i] = toMonthlyResponse(m)
	}
	return c.JSON(http.StatusOK, response)
}
