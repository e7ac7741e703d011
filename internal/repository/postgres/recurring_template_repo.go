package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const templateColumns = `id, user_id, name, category_id, amount, type, frequency, start_date, next_due_date, is_active, notes, created_at, updated_at`

// RecurringTemplateRepository implements domain.RecurringTemplateRepository using PostgreSQL
type RecurringTemplateRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringTemplateRepository creates a new RecurringTemplateRepository
func NewRecurringTemplateRepository(pool *pgxpool.Pool) *RecurringTemplateRepository {
	return &RecurringTemplateRepository{pool: pool}
}

type templateParams struct {
	id, userID, categoryID pgtype.UUID
	amount                 pgtype.Numeric
	startDate, nextDueDate pgtype.Date
}

func toTemplateParams(t *domain.RecurringTemplate) (*templateParams, error) {
	var (
		p   templateParams
		ok  bool
		err error
	)
	if p.id, ok = parseID(t.ID); !ok {
		return nil, domain.ErrRecurringNotFound
	}
	if p.userID, ok = parseID(t.UserID); !ok {
		return nil, domain.ErrRecurringNotFound
	}
	if p.categoryID, ok = parseID(t.CategoryID); !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if p.amount, err = decimalToPgNumeric(t.Amount); err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if p.startDate, err = dateToPg(t.StartDate); err != nil {
		return nil, err
	}
	if p.nextDueDate, err = dateToPg(t.NextDueDate); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new recurring template
func (r *RecurringTemplateRepository) Create(ctx context.Context, template *domain.RecurringTemplate) (*domain.RecurringTemplate, error) {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	p, err := toTemplateParams(template)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO recurring_templates (id, user_id, name, category_id, amount, type, frequency, start_date, next_due_date, is_active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+templateColumns,
		p.id, p.userID, template.Name, p.categoryID, p.amount, string(template.Type), string(template.Frequency),
		p.startDate, p.nextDueDate, template.IsActive, template.Notes, template.CreatedAt, template.UpdatedAt)
	return scanTemplate(row)
}

// GetByID retrieves a template owned by userID
func (r *RecurringTemplateRepository) GetByID(ctx context.Context, userID, id string) (*domain.RecurringTemplate, error) {
	pgID, ok := parseID(id)
	pgUserID, userOK := parseID(userID)
	if !ok || !userOK {
		return nil, domain.ErrRecurringNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+templateColumns+` FROM recurring_templates WHERE id = $1 AND user_id = $2`, pgID, pgUserID)
	return r.one(row)
}

// ListByUser returns the user's templates ordered by next due date
func (r *RecurringTemplateRepository) ListByUser(ctx context.Context, userID string) ([]*domain.RecurringTemplate, error) {
	pgUserID, ok := parseID(userID)
	if !ok {
		return []*domain.RecurringTemplate{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+templateColumns+` FROM recurring_templates
		WHERE user_id = $1
		ORDER BY next_due_date, id`, pgUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*domain.RecurringTemplate{}
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, rows.Err()
}

// Update updates a template owned by the same user. The write is conditional on
// next_due_date still holding expectedNextDueDate.
func (r *RecurringTemplateRepository) Update(ctx context.Context, template *domain.RecurringTemplate, expectedNextDueDate string) (*domain.RecurringTemplate, error) {
	p, err := toTemplateParams(template)
	if err != nil {
		return nil, err
	}
	expected, err := dateToPg(expectedNextDueDate)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE recurring_templates
		SET name = $3, category_id = $4, amount = $5, type = $6, frequency = $7,
		    start_date = $8, next_due_date = $9, is_active = $10, notes = $11, updated_at = $12
		WHERE id = $1 AND user_id = $2 AND next_due_date = $13
		RETURNING `+templateColumns,
		p.id, p.userID, template.Name, p.categoryID, p.amount, string(template.Type), string(template.Frequency),
		p.startDate, p.nextDueDate, template.IsActive, template.Notes, template.UpdatedAt, expected)
	updated, err := r.one(row)
	if errors.Is(err, domain.ErrRecurringNotFound) {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM recurring_templates WHERE id = $1 AND user_id = $2)`,
			p.id, p.userID).Scan(&exists); err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDueDateConflict
		}
	}
	return updated, err
}

// Delete removes a template. Spawned transactions keep their recurring_id.
func (r *RecurringTemplateRepository) Delete(ctx context.Context, userID, id string) error {
	pgID, ok := parseID(id)
	pgUserID, userOK := parseID(userID)
	if !ok || !userOK {
		return domain.ErrRecurringNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_templates WHERE id = $1 AND user_id = $2`, pgID, pgUserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecurringNotFound
	}
	return nil
}

// Materialize inserts the spawned transaction and advances next_due_date in one
// database transaction. The advance only applies while next_due_date still holds
// the expected value.
func (r *RecurringTemplateRepository) Materialize(ctx context.Context, m domain.Materialization) (*domain.Transaction, error) {
	pgID, ok := parseID(m.TemplateID)
	pgUserID, userOK := parseID(m.UserID)
	if !ok || !userOK {
		return nil, domain.ErrRecurringNotFound
	}
	expected, err := dateToPg(m.ExpectedNextDueDate)
	if err != nil {
		return nil, err
	}
	next, err := dateToPg(m.NextDueDate)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE recurring_templates
		SET next_due_date = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2 AND next_due_date = $3`,
		pgID, pgUserID, expected, next, m.Transaction.CreatedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM recurring_templates WHERE id = $1 AND user_id = $2)`,
			pgID, pgUserID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, domain.ErrDueDateConflict
	}

	created, err := insertTransaction(ctx, tx, m.Transaction)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *RecurringTemplateRepository) one(row pgx.Row) (*domain.RecurringTemplate, error) {
	template, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return template, nil
}

func scanTemplate(row pgRow) (*domain.RecurringTemplate, error) {
	var (
		id, userID, categoryID pgtype.UUID
		amount                 pgtype.Numeric
		startDate, nextDueDate pgtype.Date
		txType, frequency      string
		t                      domain.RecurringTemplate
	)
	if err := row.Scan(&id, &userID, &t.Name, &categoryID, &amount, &txType, &frequency,
		&startDate, &nextDueDate, &t.IsActive, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.ID = uuidToString(id)
	t.UserID = uuidToString(userID)
	t.CategoryID = uuidToString(categoryID)
	t.Amount = pgNumericToDecimal(amount)
	t.Type = domain.TransactionType(txType)
	t.Frequency = domain.Frequency(frequency)
	t.StartDate = pgDateToString(startDate)
	t.NextDueDate = pgDateToString(nextDueDate)
	return &t, nil
}
