package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name          string
		year          int
		month         time.Month
		expectedYear  int
		expectedMonth time.Month
	}{
		{"mid year", 2024, time.June, 2024, time.May},
		{"january wraps", 2024, time.January, 2023, time.December},
		{"december", 2024, time.December, 2024, time.November},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := PreviousMonth(tt.year, tt.month)
			assert.Equal(t, tt.expectedYear, y)
			assert.Equal(t, tt.expectedMonth, m)
		})
	}
}

func TestMonthsBack(t *testing.T) {
	y, m := MonthsBack(2024, time.March, 0)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.March, m)

	y, m = MonthsBack(2024, time.March, 3)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	y, m = MonthsBack(2024, time.January, 25)
	assert.Equal(t, 2021, y)
	assert.Equal(t, time.December, m)

	y, m = MonthsBack(1, time.January, 1)
	assert.Equal(t, 0, y)
	assert.Equal(t, time.December, m)

	y, m = MonthsBack(1, time.January, 13)
	assert.Equal(t, -1, y)
	assert.Equal(t, time.December, m)

	y, m = MonthsBack(1, time.March, 15)
	assert.Equal(t, -1, y)
	assert.Equal(t, time.December, m)
}

func TestCalculateActualDate(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		targetDay int
		expected  string
	}{
		{"day fits", 2024, time.March, 15, "2024-03-15"},
		{"31st in april", 2024, time.April, 31, "2024-04-30"},
		{"31st in leap february", 2024, time.February, 31, "2024-02-29"},
		{"29th in common february", 2023, time.February, 29, "2023-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateActualDate(tt.year, tt.month, tt.targetDay)
			assert.Equal(t, tt.expected, FormatDate(got))
		})
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		months   int
		expected string
	}{
		{"plain month", "2024-01-15", 1, "2024-02-15"},
		{"jan 31 leap year", "2024-01-31", 1, "2024-02-29"},
		{"jan 31 common year", "2023-01-31", 1, "2023-02-28"},
		{"quarter from nov 30", "2023-11-30", 3, "2024-02-29"},
		{"year from leap day", "2024-02-29", 12, "2025-02-28"},
		{"december rolls year", "2024-12-10", 1, "2025-01-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := ParseDate(tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, FormatDate(AddMonthsClamped(start, tt.months)))
		})
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{"2024-01-01", "2024-02-29", "1999-12-31"}
	for _, s := range valid {
		assert.True(t, IsValidDate(s), s)
	}

	invalid := []string{"", "2024-1-01", "2024-02-30", "2023-02-29", "2024/01/01", "2024-01-01T00:00:00Z", "abcd-ef-gh"}
	for _, s := range invalid {
		assert.False(t, IsValidDate(s), s)
	}
}

func TestSplitYearMonth(t *testing.T) {
	y, m, ok := SplitYearMonth("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.March, m)

	_, _, ok = SplitYearMonth("2024-13-01")
	assert.False(t, ok)

	_, _, ok = SplitYearMonth("24-03")
	assert.False(t, ok)
}

func TestInMonth_NoZoneShift(t *testing.T) {
	// 2024-03-01 at midnight UTC is still February in UTC-5; the string compare must not care.
	assert.True(t, InMonth("2024-03-01", 2024, time.March))
	assert.False(t, InMonth("2024-03-01", 2024, time.February))
	assert.True(t, InMonth("2024-03-15", 2024, time.March))
	assert.False(t, InMonth("2024-03-15", 2023, time.March))
}

func TestMockClock(t *testing.T) {
	clock := NewMockClock("2024-01-15")
	assert.Equal(t, "2024-01-15", Today(clock))

	clock.SetDate("2024-02-29")
	assert.Equal(t, "2024-02-29", Today(clock))
}
