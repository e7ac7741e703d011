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

const userColumns = `id, name, pin_hash, color, created_at, updated_at`

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetAll returns every user in registration order
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	pgID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, pgID)
	return r.one(row)
}

// GetByName retrieves a user by case-insensitive name
func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(name) = lower($1)`, name)
	return r.one(row)
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	pgID, ok := parseID(user.ID)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, pin_hash, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		pgID, user.Name, user.PINHash, user.Color, user.CreatedAt, user.UpdatedAt)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}
	return created, nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	pgID, ok := parseID(user.ID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET name = $2, pin_hash = $3, color = $4, updated_at = $5
		WHERE id = $1
		RETURNING `+userColumns,
		pgID, user.Name, user.PINHash, user.Color, user.UpdatedAt)
	updated, err := r.one(row)
	if err != nil && isUniqueViolation(err) {
		return nil, domain.ErrNameTaken
	}
	return updated, err
}

func (r *UserRepository) one(row pgx.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgRow) (*domain.User, error) {
	var (
		id   pgtype.UUID
		user domain.User
	)
	if err := row.Scan(&id, &user.Name, &user.PINHash, &user.Color, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	user.ID = uuidToString(id)
	return &user, nil
}
