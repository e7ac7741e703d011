package util

import (
	"strconv"
	"time"
)

// DateLayout is the calendar date format used for every stored date
const DateLayout = "2006-01-02"

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// MonthsBack returns the year and month n months before the given one
func MonthsBack(year int, month time.Month, n int) (int, time.Month) {
	return splitMonthIndex(year*12 + int(month-1) - n)
}

// splitMonthIndex turns a zero-based month count since year 0 back into a
// year and month, flooring for counts before year 0
func splitMonthIndex(total int) (int, time.Month) {
	year, m := total/12, total%12
	if m < 0 {
		m += 12
		year--
	}
	return year, time.Month(m + 1)
}

// CalculateActualDate returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year int, month time.Month, targetDay int) time.Time {
	// Get last day of month by going to day 0 of next month
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped adds n calendar months keeping the day of month,
// clamped to the last day of the target month.
// time.AddDate would roll Jan 31 + 1 month over into March.
func AddMonthsClamped(t time.Time, n int) time.Time {
	year, month := splitMonthIndex(t.Year()*12 + int(t.Month()-1) + n)
	return CalculateActualDate(year, month, t.Day())
}

// ParseDate parses a strict YYYY-MM-DD calendar date at UTC midnight
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, &time.ParseError{Layout: DateLayout, Value: s, Message: ": wrong length"}
	}
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// IsValidDate reports whether s is a real calendar date in YYYY-MM-DD form
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// FormatDate renders the calendar date of t, ignoring its clock and zone offset
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SplitYearMonth extracts year and month from the leading "YYYY-MM" of a date
// string without building a time value, so no zone conversion can shift the month.
func SplitYearMonth(date string) (int, time.Month, bool) {
	if len(date) < 7 || date[4] != '-' {
		return 0, 0, false
	}
	year, err := strconv.Atoi(date[0:4])
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(date[5:7])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// InMonth reports whether a YYYY-MM-DD date falls in the given year and month
func InMonth(date string, year int, month time.Month) bool {
	y, m, ok := SplitYearMonth(date)
	return ok && y == year && m == month
}
