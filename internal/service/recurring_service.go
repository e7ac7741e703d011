package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/metrics"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultMaxCatchUpPeriods bounds how many missed periods one sweep replays per template
	DefaultMaxCatchUpPeriods = 60

	// MaxUpcomingDays is the widest preview window for upcoming due dates
	MaxUpcomingDays = 366

	maxUpcomingPerTemplate = 60

	sweepKey = "recurring-sweep"

	recurringTag = "Recurring"
	manualTag    = "Manual"
)

// RecurringServiceConfig holds options for the recurring engine
type RecurringServiceConfig struct {
	// CatchUp replays every missed period in one sweep instead of advancing once
	CatchUp           bool
	MaxCatchUpPeriods int
}

// RecurringService manages recurring templates and materializes their transactions
type RecurringService struct {
	userRepo       domain.UserRepository
	templateRepo   domain.RecurringTemplateRepository
	categoryRepo   domain.CategoryRepository
	clock          util.Clock
	logger         zerolog.Logger
	catchUp        bool
	maxCatchUp     int
	sweep          singleflight.Group
	eventPublisher websocket.EventPublisher
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(
	userRepo domain.UserRepository,
	templateRepo domain.RecurringTemplateRepository,
	categoryRepo domain.CategoryRepository,
	clock util.Clock,
	logger zerolog.Logger,
	config RecurringServiceConfig,
) *RecurringService {
	if config.MaxCatchUpPeriods <= 0 {
		config.MaxCatchUpPeriods = DefaultMaxCatchUpPeriods
	}
	return &RecurringService{
		userRepo:     userRepo,
		templateRepo: templateRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
		logger:       logger.With().Str("component", "recurring").Logger(),
		catchUp:      config.CatchUp,
		maxCatchUp:   config.MaxCatchUpPeriods,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *RecurringService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *RecurringService) publishEvent(userID string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateTemplate validates and stores a new template with nextDueDate = startDate
func (s *RecurringService) CreateTemplate(ctx context.Context, userID string, input domain.CreateRecurringTemplateInput) (*domain.RecurringTemplate, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if !input.Frequency.IsValid() {
		return nil, domain.ErrInvalidFrequency
	}
	if !util.IsValidDate(input.StartDate) {
		return nil, domain.ErrInvalidDate
	}
	if len(input.Notes) > domain.MaxNotesLength {
		return nil, domain.ErrNotesTooLong
	}
	if err := s.checkCategory(ctx, userID, input.CategoryID, input.Type); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	template := &domain.RecurringTemplate{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Type:        input.Type,
		Frequency:   input.Frequency,
		StartDate:   input.StartDate,
		NextDueDate: input.StartDate,
		IsActive:    true,
		Notes:       strings.TrimSpace(input.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.RecurringCreated(created))
	return created, nil
}

// GetTemplate returns one template owned by the user
func (s *RecurringService) GetTemplate(ctx context.Context, userID, id string) (*domain.RecurringTemplate, error) {
	return s.templateRepo.GetByID(ctx, userID, id)
}

// ListTemplates returns every template owned by the user
func (s *RecurringService) ListTemplates(ctx context.Context, userID string) ([]*domain.RecurringTemplate, error) {
	return s.templateRepo.ListByUser(ctx, userID)
}

// UpdateTemplate applies a partial update. Moving the start date of a template that
// has never materialized moves its next due date with it.
func (s *RecurringService) UpdateTemplate(ctx context.Context, userID, id string, input domain.UpdateRecurringTemplateInput) (*domain.RecurringTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	readNextDue := template.NextDueDate

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		template.Name = name
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		template.Amount = *input.Amount
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, domain.ErrInvalidTransactionType
		}
		template.Type = *input.Type
	}
	if input.CategoryID != nil {
		template.CategoryID = *input.CategoryID
	}
	if input.CategoryID != nil || input.Type != nil {
		if err := s.checkCategory(ctx, userID, template.CategoryID, template.Type); err != nil {
			return nil, err
		}
	}
	if input.Frequency != nil {
		if !input.Frequency.IsValid() {
			return nil, domain.ErrInvalidFrequency
		}
		template.Frequency = *input.Frequency
	}
	if input.StartDate != nil {
		if !util.IsValidDate(*input.StartDate) {
			return nil, domain.ErrInvalidDate
		}
		if template.NextDueDate == template.StartDate {
			template.NextDueDate = *input.StartDate
		}
		template.StartDate = *input.StartDate
	}
	if input.NextDueDate != nil {
		if !util.IsValidDate(*input.NextDueDate) {
			return nil, domain.ErrInvalidDate
		}
		template.NextDueDate = *input.NextDueDate
	}
	if template.NextDueDate < template.StartDate {
		return nil, domain.ErrInvalidDate
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}
	if input.Notes != nil {
		if len(*input.Notes) > domain.MaxNotesLength {
			return nil, domain.ErrNotesTooLong
		}
		template.Notes = strings.TrimSpace(*input.Notes)
	}
	template.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.templateRepo.Update(ctx, template, readNextDue)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.RecurringUpdated(updated))
	return updated, nil
}

// DeleteTemplate removes a template. Transactions it spawned keep their back-reference.
func (s *RecurringService) DeleteTemplate(ctx context.Context, userID, id string) error {
	if err := s.templateRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.RecurringDeleted(map[string]string{"id": id}))
	return nil
}

// ListUpcoming previews the due dates of active templates within the next days days
func (s *RecurringService) ListUpcoming(ctx context.Context, userID string, days int) ([]*domain.UpcomingOccurrence, error) {
	if days < 0 || days > MaxUpcomingDays {
		return nil, domain.ErrInvalidInput
	}

	templates, err := s.templateRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today, err := util.ParseDate(util.Today(s.clock))
	if err != nil {
		return nil, err
	}
	until := util.FormatDate(today.AddDate(0, 0, days))
	result := make([]*domain.UpcomingOccurrence, 0)
	for _, t := range templates {
		if !t.IsActive || t.NextDueDate > until {
			continue
		}
		dates, err := UpcomingDueDates(t, until, maxUpcomingPerTemplate)
		if err != nil {
			return nil, err
		}
		result = append(result, &domain.UpcomingOccurrence{Template: t, Dates: dates})
	}
	return result, nil
}

// ProcessDue runs the scheduled sweep over every user and returns how many
// transactions were materialized. Concurrent callers share one in-flight sweep.
// A sweep cut short still reports what it materialized alongside the error.
func (s *RecurringService) ProcessDue(ctx context.Context) (int, error) {
	v, err, shared := s.sweep.Do(sweepKey, func() (interface{}, error) {
		return s.processDue(ctx)
	})
	if shared {
		s.logger.Debug().Msg("Joined in-flight recurring sweep")
	}
	n, _ := v.(int)
	return n, err
}

func (s *RecurringService) processDue(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		metrics.RecurringSweepDuration.Observe(time.Since(start).Seconds())
	}()

	today := util.Today(s.clock)
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	failures := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		templates, err := s.templateRepo.ListByUser(ctx, user.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list recurring templates")
			metrics.RecurringSweepFailures.Inc()
			failures++
			continue
		}

		for _, t := range templates {
			if !t.IsDue(today) {
				continue
			}
			n, err := s.sweepTemplate(ctx, t, today)
			total += n
			if err != nil {
				if errors.Is(err, domain.ErrDueDateConflict) {
					s.logger.Debug().
						Str("user_id", user.ID).
						Str("recurring_id", t.ID).
						Msg("Recurring template advanced concurrently, skipping")
					continue
				}
				s.logger.Error().
					Err(err).
					Str("user_id", user.ID).
					Str("recurring_id", t.ID).
					Msg("Failed to materialize recurring template")
				metrics.RecurringSweepFailures.Inc()
				failures++
			}
		}
	}

	s.logger.Info().
		Str("today", today).
		Int("users", len(users)).
		Int("materialized", total).
		Int("failures", failures).
		Dur("elapsed", time.Since(start)).
		Msg("Completed recurring sweep")

	return total, nil
}

// sweepTemplate materializes a due template once, or repeatedly in catch-up mode,
// and reports how many transactions were written before any error.
func (s *RecurringService) sweepTemplate(ctx context.Context, t *domain.RecurringTemplate, today string) (int, error) {
	count := 0
	for t.IsDue(today) && count < s.maxCatchUp {
		next, err := ComputeNextDueDate(t.NextDueDate, t.Frequency)
		if err != nil {
			return count, err
		}

		tx, err := s.templateRepo.Materialize(ctx, domain.Materialization{
			UserID:              t.UserID,
			TemplateID:          t.ID,
			ExpectedNextDueDate: t.NextDueDate,
			NextDueDate:         next,
			Transaction:         s.spawn(t, t.NextDueDate, recurringTag),
		})
		if err != nil {
			return count, err
		}

		count++
		metrics.RecurringMaterialized.WithLabelValues(metrics.TriggerSweep).Inc()
		t.NextDueDate = next
		s.publishEvent(t.UserID, websocket.TransactionCreated(tx))
		s.publishEvent(t.UserID, websocket.RecurringProcessed(t))

		if !s.catchUp {
			break
		}
	}
	return count, nil
}

// ProcessTemplate materializes a template on demand. The transaction is dated today
// and the next due date is computed from today, not from the stored due date.
func (s *RecurringService) ProcessTemplate(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	t, err := s.templateRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, domain.ErrInactiveTemplate
	}

	today := util.Today(s.clock)
	next, err := ComputeNextDueDate(today, t.Frequency)
	if err != nil {
		return nil, err
	}

	tx, err := s.templateRepo.Materialize(ctx, domain.Materialization{
		UserID:              userID,
		TemplateID:          t.ID,
		ExpectedNextDueDate: t.NextDueDate,
		NextDueDate:         next,
		Transaction:         s.spawn(t, today, manualTag),
	})
	if err != nil {
		return nil, err
	}

	metrics.RecurringMaterialized.WithLabelValues(metrics.TriggerManual).Inc()
	t.NextDueDate = next
	s.publishEvent(userID, websocket.TransactionCreated(tx))
	s.publishEvent(userID, websocket.RecurringProcessed(t))

	s.logger.Info().
		Str("user_id", userID).
		Str("recurring_id", t.ID).
		Str("date", today).
		Str("next_due_date", next).
		Msg("Manually processed recurring template")

	return tx, nil
}

func (s *RecurringService) spawn(t *domain.RecurringTemplate, date, tag string) *domain.Transaction {
	now := s.clock.Now().UTC()
	recurringID := t.ID
	return &domain.Transaction{
		ID:          uuid.NewString(),
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Type:        t.Type,
		Date:        date,
		Notes:       materializedNotes(t, tag),
		IsRecurring: true,
		RecurringID: &recurringID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// materializedNotes tags the template notes, falling back to the template name
func materializedNotes(t *domain.RecurringTemplate, tag string) string {
	base := strings.TrimSpace(t.Notes)
	if base == "" {
		base = t.Name
	}
	return base + " (" + tag + ")"
}

func (s *RecurringService) checkCategory(ctx context.Context, userID, categoryID string, txType domain.TransactionType) error {
	category, err := s.categoryRepo.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) || errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	if category.Type != txType {
		return domain.ErrCategoryMismatch
	}
	return nil
}

// validateName checks a trimmed display name
func validateName(name string) error {
	if name == "" {
		return domain.ErrNameRequired
	}
	if len([]rune(name)) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}
	return nil
}
