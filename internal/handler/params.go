package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Anchor sources reported in stats responses
const (
	AnchorSourceClient = "client"
	AnchorSourceServer = "server"
)

const (
	minYear = 1
	maxYear = 9999
)

// paramError carries the field a query or body value failed on
type paramError struct {
	field   string
	message string
}

func (e *paramError) Error() string {
	return e.field + ": " + e.message
}

func respondParamError(c echo.Context, err *paramError) error {
	return NewFieldError(c, err.field, err.message)
}

// queryMonth parses a 0-indexed month query value (0 = January).
// ok is false when the parameter is absent.
func queryMonth(c echo.Context, name string) (month time.Month, ok bool, perr *paramError) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 11 {
		return 0, false, &paramError{field: name, message: "Month must be between 0 and 11"}
	}
	return time.Month(n + 1), true, nil
}

// queryYear parses a four-digit year query value
func queryYear(c echo.Context, name string) (year int, ok bool, perr *paramError) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minYear || n > maxYear {
		return 0, false, &paramError{field: name, message: "Year must be between 1 and 9999"}
	}
	return n, true, nil
}

// queryInt parses an optional integer query value, returning def when absent
func queryInt(c echo.Context, name string, def int) (int, *paramError) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{field: name, message: "Must be an integer"}
	}
	return n, nil
}

// anchorParams resolves the year/month a stats request is anchored at.
// Missing parts fall back to the server clock and the source is reported as server.
func anchorParams(c echo.Context, defaultAnchor func() (int, time.Month)) (int, time.Month, string, *paramError) {
	month, hasMonth, perr := queryMonth(c, "month")
	if perr != nil {
		return 0, 0, "", perr
	}
	year, hasYear, perr := queryYear(c, "year")
	if perr != nil {
		return 0, 0, "", perr
	}
	if hasMonth && hasYear {
		return year, month, AnchorSourceClient, nil
	}

	serverYear, serverMonth := defaultAnchor()
	if !hasYear {
		year = serverYear
	}
	if !hasMonth {
		month = serverMonth
	}
	return year, month, AnchorSourceServer, nil
}

// parseAmount parses a positive decimal amount sent as a string
func parseAmount(raw string) (decimal.Decimal, *paramError) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &paramError{field: "amount", message: "Must be a valid decimal number"}
	}
	return amount, nil
}

// formatMonth converts a calendar month to the 0-indexed form used by clients
func formatMonth(m time.Month) int {
	return int(m) - 1
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTransactionType(raw string) (domain.TransactionType, *paramError) {
	t := domain.TransactionType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", &paramError{field: "type", message: "Type must be one of: income, expense"}
	}
	return t, nil
}
