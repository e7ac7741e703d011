package service

import (
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
)

// ComputeNextDueDate returns the due date that follows current for the given frequency.
// Month-based frequencies keep the day of month and clamp it to the last day of the
// target month, so 2024-01-31 monthly becomes 2024-02-29.
func ComputeNextDueDate(current string, frequency domain.Frequency) (string, error) {
	date, err := util.ParseDate(current)
	if err != nil {
		return "", domain.ErrInvalidDate
	}

	next, err := advance(date, frequency)
	if err != nil {
		return "", err
	}
	return util.FormatDate(next), nil
}

func advance(date time.Time, frequency domain.Frequency) (time.Time, error) {
	switch frequency {
	case domain.FrequencyWeekly:
		return date.AddDate(0, 0, 7), nil
	case domain.FrequencyBiweekly:
		return date.AddDate(0, 0, 14), nil
	case domain.FrequencyMonthly:
		return util.AddMonthsClamped(date, 1), nil
	case domain.FrequencyQuarterly:
		return util.AddMonthsClamped(date, 3), nil
	case domain.FrequencyYearly:
		return util.AddMonthsClamped(date, 12), nil
	default:
		return time.Time{}, domain.ErrInvalidFrequency
	}
}

// UpcomingDueDates lists the due dates of a template from its next due date up to
// and including until, capped at limit entries.
func UpcomingDueDates(template *domain.RecurringTemplate, until string, limit int) ([]string, error) {
	dates := make([]string, 0)
	current := template.NextDueDate
	for current <= until && len(dates) < limit {
		dates = append(dates, current)
		next, err := ComputeNextDueDate(current, template.Frequency)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return dates, nil
}
