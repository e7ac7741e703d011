package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `id, user_id, name, type, color, icon, created_at, updated_at`

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	id, ok := parseID(category.ID)
	userID, userOK := parseID(category.UserID)
	if !ok || !userOK {
		return nil, domain.ErrInvalidInput
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, user_id, name, type, color, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+categoryColumns,
		id, userID, category.Name, string(category.Type), category.Color, category.Icon, category.CreatedAt, category.UpdatedAt)
	return scanCategory(row)
}

// GetByID retrieves a category owned by userID
func (r *CategoryRepository) GetByID(ctx context.Context, userID, id string) (*domain.Category, error) {
	pgID, ok := parseID(id)
	pgUserID, userOK := parseID(userID)
	if !ok || !userOK {
		return nil, domain.ErrCategoryNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`, pgID, pgUserID)
	return r.one(row)
}

// ListByUser returns the user's categories ordered by name
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Category, error) {
	pgUserID, ok := parseID(userID)
	if !ok {
		return []*domain.Category{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY name, id`, pgUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update updates a category owned by the same user
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	pgID, ok := parseID(category.ID)
	pgUserID, userOK := parseID(category.UserID)
	if !ok || !userOK {
		return nil, domain.ErrCategoryNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE categories SET name = $3, color = $4, icon = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
		RETURNING `+categoryColumns,
		pgID, pgUserID, category.Name, category.Color, category.Icon, category.UpdatedAt)
	return r.one(row)
}

// Delete removes a category owned by userID
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	pgID, ok := parseID(id)
	pgUserID, userOK := parseID(userID)
	if !ok || !userOK {
		return domain.ErrCategoryNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, pgID, pgUserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) one(row pgx.Row) (*domain.Category, error) {
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func scanCategory(row pgRow) (*domain.Category, error) {
	var (
		id, userID pgtype.UUID
		txType     string
		category   domain.Category
	)
	if err := row.Scan(&id, &userID, &category.Name, &txType, &category.Color, &category.Icon, &category.CreatedAt, &category.UpdatedAt); err != nil {
		return nil, err
	}
	category.ID = uuidToString(id)
	category.UserID = uuidToString(userID)
	category.Type = domain.TransactionType(txType)
	return &category, nil
}
