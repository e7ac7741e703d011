package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/websocket"
	"github.com/google/uuid"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	clock           util.Clock
	eventPublisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, clock util.Clock) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *TransactionService) publishEvent(userID string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// ListTransactions returns the user's transactions matching the filters, newest first
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, filters domain.TransactionFilters) ([]*domain.Transaction, error) {
	all, err := s.transactionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Transaction, 0, len(all))
	for _, tx := range all {
		if matchesFilters(tx, filters) {
			result = append(result, tx)
		}
	}
	return result, nil
}

func matchesFilters(tx *domain.Transaction, f domain.TransactionFilters) bool {
	if f.Year != nil || f.Month != nil {
		year, month, ok := util.SplitYearMonth(tx.Date)
		if !ok {
			return false
		}
		if f.Year != nil && year != *f.Year {
			return false
		}
		if f.Month != nil && month != *f.Month {
			return false
		}
	}
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}
	if f.CategoryID != nil && tx.CategoryID != *f.CategoryID {
		return false
	}
	if f.RecurringID != nil && (tx.RecurringID == nil || *tx.RecurringID != *f.RecurringID) {
		return false
	}
	return true
}

// GetTransaction returns one transaction owned by the user
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, userID, id)
}

// CreateTransaction records a transaction entered by the user. An empty date means today.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, input domain.CreateTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}

	date := input.Date
	if date == "" {
		date = util.Today(s.clock)
	}
	if !util.IsValidDate(date) {
		return nil, domain.ErrInvalidDate
	}

	notes := strings.TrimSpace(input.Notes)
	if len(notes) > domain.MaxNotesLength {
		return nil, domain.ErrNotesTooLong
	}

	if err := s.checkCategory(ctx, userID, input.CategoryID, input.Type); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	transaction := &domain.Transaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		CategoryID: input.CategoryID,
		Amount:     input.Amount,
		Type:       input.Type,
		Date:       date,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.transactionRepo.Create(ctx, transaction)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.TransactionCreated(created))
	return created, nil
}

// UpdateTransaction applies a partial update. The recurring back-reference is kept.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, id string, input domain.UpdateTransactionInput) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	transaction := *existing

	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		transaction.Amount = *input.Amount
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, domain.ErrInvalidTransactionType
		}
		transaction.Type = *input.Type
	}
	if input.CategoryID != nil {
		transaction.CategoryID = *input.CategoryID
	}
	if input.CategoryID != nil || input.Type != nil {
		if err := s.checkCategory(ctx, userID, transaction.CategoryID, transaction.Type); err != nil {
			return nil, err
		}
	}
	if input.Date != nil {
		if !util.IsValidDate(*input.Date) {
			return nil, domain.ErrInvalidDate
		}
		transaction.Date = *input.Date
	}
	if input.Notes != nil {
		notes := strings.TrimSpace(*input.Notes)
		if len(notes) > domain.MaxNotesLength {
			return nil, domain.ErrNotesTooLong
		}
		transaction.Notes = notes
	}
	transaction.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.transactionRepo.Update(ctx, &transaction)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.TransactionUpdated(updated))
	return updated, nil
}

// DeleteTransaction removes a transaction owned by the user
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.transactionRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.TransactionDeleted(map[string]string{"id": id}))
	return nil
}

func (s *TransactionService) checkCategory(ctx context.Context, userID, categoryID string, txType domain.TransactionType) error {
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
