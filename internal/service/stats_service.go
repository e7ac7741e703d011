package service

import (
	"context"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
)

const (
	// DefaultStatsMonths is the default window of the monthly breakdown
	DefaultStatsMonths = 6
	// MaxStatsMonths caps the monthly breakdown window
	MaxStatsMonths = 24
)

// StatsService serves aggregate statistics over a user's transactions
type StatsService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	templateRepo    domain.RecurringTemplateRepository
	clock           util.Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(
	transactionRepo domain.TransactionRepository,
	categoryRepo domain.CategoryRepository,
	templateRepo domain.RecurringTemplateRepository,
	clock util.Clock,
) *StatsService {
	return &StatsService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		templateRepo:    templateRepo,
		clock:           clock,
	}
}

// DefaultAnchor returns the server's current year and month.
// Clients in another zone may be in a different month, so callers should pass
// an explicit anchor whenever they can.
func (s *StatsService) DefaultAnchor() (int, time.Month) {
	year, month, _ := util.SplitYearMonth(util.Today(s.clock))
	return year, month
}

// Summary returns the anchor month, year-to-date and all-time totals
func (s *StatsService) Summary(ctx context.Context, userID string, year int, month time.Month) (*domain.StatsSummary, error) {
	transactions, names, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	templates, err := s.templateRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	active := 0
	for _, t := range templates {
		if t.IsActive {
			active++
		}
	}

	yearToDate := SumTotals(transactions, func(tx *domain.Transaction) bool {
		y, m, ok := util.SplitYearMonth(tx.Date)
		return ok && y == year && m <= month
	})

	return &domain.StatsSummary{
		Month:           AggregateMonth(transactions, names, year, month),
		YearToDate:      yearToDate,
		AllTime:         SumTotals(transactions, nil),
		ActiveRecurring: active,
	}, nil
}

// Monthly returns n months ending at the anchor, oldest first
func (s *StatsService) Monthly(ctx context.Context, userID string, year int, month time.Month, n int) ([]*domain.MonthlyAggregate, error) {
	if n < 1 || n > MaxStatsMonths {
		return nil, domain.ErrInvalidInput
	}
	if oldest, _ := util.MonthsBack(year, month, n-1); oldest < 1 {
		return nil, domain.ErrInvalidInput
	}
	transactions, names, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AggregateMonths(transactions, names, year, month, n), nil
}

// Comparison compares the anchor month with the previous month
func (s *StatsService) Comparison(ctx context.Context, userID string, year int, month time.Month) (*domain.MonthComparison, error) {
	transactions, names, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return CompareMonths(transactions, names, year, month), nil
}

// Yearly returns the month-by-month breakdown of a calendar year
func (s *StatsService) Yearly(ctx context.Context, userID string, year int) (*domain.YearlyAggregate, error) {
	transactions, names, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AggregateYear(transactions, names, year), nil
}

func (s *StatsService) load(ctx context.Context, userID string) ([]*domain.Transaction, map[string]string, error) {
	transactions, err := s.transactionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return transactions, CategoryNames(categories), nil
}
