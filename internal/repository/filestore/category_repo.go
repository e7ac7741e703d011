package filestore

import (
	"context"
	"sort"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/google/uuid"
)

// CategoryRepository implements domain.CategoryRepository on per-user documents
type CategoryRepository struct {
	store *Store
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// Create stores a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	err := r.store.updateUser(category.UserID, func(doc *userDocument) error {
		doc.Categories = append(doc.Categories, category)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID retrieves a category owned by userID
func (r *CategoryRepository) GetByID(ctx context.Context, userID, id string) (*domain.Category, error) {
	var found *domain.Category
	err := r.store.viewUser(userID, func(doc *userDocument) error {
		for _, c := range doc.Categories {
			if c.ID == id {
				found = c
				return nil
			}
		}
		return domain.ErrCategoryNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByUser returns the user's categories ordered by name
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Category, error) {
	categories := []*domain.Category{}
	err := r.store.viewUser(userID, func(doc *userDocument) error {
		categories = append(categories, doc.Categories...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Update replaces a category owned by the same user
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	err := r.store.updateUser(category.UserID, func(doc *userDocument) error {
		for i, c := range doc.Categories {
			if c.ID == category.ID {
				doc.Categories[i] = category
				return nil
			}
		}
		return domain.ErrCategoryNotFound
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category owned by userID
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	return r.store.updateUser(userID, func(doc *userDocument) error {
		for i, c := range doc.Categories {
			if c.ID == id {
				doc.Categories = append(doc.Categories[:i], doc.Categories[i+1:]...)
				return nil
			}
		}
		return domain.ErrCategoryNotFound
	})
}
