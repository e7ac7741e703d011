package service

import (
	"context"
	"strings"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
	templateRepo    domain.RecurringTemplateRepository
	clock           util.Clock
	eventPublisher  websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo domain.CategoryRepository,
	transactionRepo domain.TransactionRepository,
	templateRepo domain.RecurringTemplateRepository,
	clock util.Clock,
) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		templateRepo:    templateRepo,
		clock:           clock,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CategoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CategoryService) publishEvent(userID string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateCategoryInput holds the input for creating a category
type CreateCategoryInput struct {
	Name  string
	Type  domain.TransactionType
	Color string
	Icon  string
}

// UpdateCategoryInput holds the optional fields for updating a category
type UpdateCategoryInput struct {
	Name  *string
	Color *string
	Icon  *string
}

// SeedDefaults creates the default categories for a new user
func (s *CategoryService) SeedDefaults(ctx context.Context, userID string) error {
	now := s.clock.Now().UTC()
	for _, def := range domain.DefaultCategories {
		category := def
		category.ID = uuid.NewString()
		category.UserID = userID
		category.CreatedAt = now
		category.UpdatedAt = now
		if _, err := s.categoryRepo.Create(ctx, &category); err != nil {
			return err
		}
	}
	log.Info().Str("user_id", userID).Int("count", len(domain.DefaultCategories)).Msg("Seeded default categories")
	return nil
}

// ListCategories returns the user's categories
func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]*domain.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

// CreateCategory validates and stores a new category
func (s *CategoryService) CreateCategory(ctx context.Context, userID string, input CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if err := s.checkNameFree(ctx, userID, "", name, input.Type); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	category := &domain.Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Type:      input.Type,
		Color:     strings.TrimSpace(input.Color),
		Icon:      strings.TrimSpace(input.Icon),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.categoryRepo.Create(ctx, category)
}

// UpdateCategory renames or restyles a category. Its type is fixed after creation.
func (s *CategoryService) UpdateCategory(ctx context.Context, userID, id string, input UpdateCategoryInput) (*domain.Category, error) {
	existing, err := s.categoryRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	category := *existing

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		if err := s.checkNameFree(ctx, userID, id, name, category.Type); err != nil {
			return nil, err
		}
		category.Name = name
	}
	if input.Color != nil {
		category.Color = strings.TrimSpace(*input.Color)
	}
	if input.Icon != nil {
		category.Icon = strings.TrimSpace(*input.Icon)
	}
	category.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.categoryRepo.Update(ctx, &category)
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.CategoryUpdated(updated))
	return updated, nil
}

// DeleteCategory removes a category that no transaction or template references
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id string) error {
	if _, err := s.categoryRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	transactions, err := s.transactionRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, tx := range transactions {
		if tx.CategoryID == id {
			return domain.ErrCategoryInUse
		}
	}

	templates, err := s.templateRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, t := range templates {
		if t.CategoryID == id {
			return domain.ErrCategoryInUse
		}
	}

	if err := s.categoryRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.CategoryDeleted(map[string]string{"id": id}))
	return nil
}

func (s *CategoryService) checkNameFree(ctx context.Context, userID, selfID, name string, txType domain.TransactionType) error {
	existing, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c.ID != selfID && c.Type == txType && strings.EqualFold(c.Name, name) {
			return domain.ErrNameTaken
		}
	}
	return nil
}
