package filestore

import (
	"context"
	"sort"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/google/uuid"
)

// RecurringTemplateRepository implements domain.RecurringTemplateRepository on per-user documents
type RecurringTemplateRepository struct {
	store *Store
}

// NewRecurringTemplateRepository creates a new RecurringTemplateRepository
func NewRecurringTemplateRepository(store *Store) *RecurringTemplateRepository {
	return &RecurringTemplateRepository{store: store}
}

// Create stores a new template
func (r *RecurringTemplateRepository) Create(ctx context.Context, template *domain.RecurringTemplate) (*domain.RecurringTemplate, error) {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	err := r.store.updateUser(template.UserID, func(doc *userDocument) error {
		doc.RecurringTemplates = append(doc.RecurringTemplates, template)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

// GetByID retrieves a template owned by userID
func (r *RecurringTemplateRepository) GetByID(ctx context.Context, userID, id string) (*domain.RecurringTemplate, error) {
	var found *domain.RecurringTemplate
	err := r.store.viewUser(userID, func(doc *userDocument) error {
		found = findTemplate(doc, id)
		if found == nil {
			return domain.ErrRecurringNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByUser returns the user's templates ordered by next due date
func (r *RecurringTemplateRepository) ListByUser(ctx context.Context, userID string) ([]*domain.RecurringTemplate, error) {
	templates := []*domain.RecurringTemplate{}
	err := r.store.viewUser(userID, func(doc *userDocument) error {
		templates = append(templates, doc.RecurringTemplates...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(templates, func(i, j int) bool {
		if templates[i].NextDueDate != templates[j].NextDueDate {
			return templates[i].NextDueDate < templates[j].NextDueDate
		}
		return templates[i].ID < templates[j].ID
	})
	return templates, nil
}

// Update replaces a template owned by the same user unless a sweep advanced it since it was read
func (r *RecurringTemplateRepository) Update(ctx context.Context, template *domain.RecurringTemplate, expectedNextDueDate string) (*domain.RecurringTemplate, error) {
	err := r.store.updateUser(template.UserID, func(doc *userDocument) error {
		for i, t := range doc.RecurringTemplates {
			if t.ID == template.ID {
				if t.NextDueDate != expectedNextDueDate {
					return domain.ErrDueDateConflict
				}
				doc.RecurringTemplates[i] = template
				return nil
			}
		}
		return domain.ErrRecurringNotFound
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

// Delete removes a template. Transactions it spawned are kept.
func (r *RecurringTemplateRepository) Delete(ctx context.Context, userID, id string) error {
	return r.store.updateUser(userID, func(doc *userDocument) error {
		for i, t := range doc.RecurringTemplates {
			if t.ID == id {
				doc.RecurringTemplates = append(doc.RecurringTemplates[:i], doc.RecurringTemplates[i+1:]...)
				return nil
			}
		}
		return domain.ErrRecurringNotFound
	})
}

// Materialize appends the spawned transaction and advances the template in a
// single document write, provided the stored next due date is still the expected one.
func (r *RecurringTemplateRepository) Materialize(ctx context.Context, m domain.Materialization) (*domain.Transaction, error) {
	tx := m.Transaction
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	err := r.store.updateUser(m.UserID, func(doc *userDocument) error {
		t := findTemplate(doc, m.TemplateID)
		if t == nil {
			return domain.ErrRecurringNotFound
		}
		if t.NextDueDate != m.ExpectedNextDueDate {
			return domain.ErrDueDateConflict
		}
		t.NextDueDate = m.NextDueDate
		t.UpdatedAt = tx.CreatedAt
		doc.Transactions = append(doc.Transactions, tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func findTemplate(doc *userDocument, id string) *domain.RecurringTemplate {
	for _, t := range doc.RecurringTemplates {
		if t.ID == id {
			return t
		}
	}
	return nil
}
