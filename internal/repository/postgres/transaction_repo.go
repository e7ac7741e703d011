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

const transactionColumns = `id, user_id, category_id, amount, type, date, notes, is_recurring, recurring_id, created_at, updated_at`

// querier is satisfied by *pgxpool.Pool and pgx.Tx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	return insertTransaction(ctx, r.pool, transaction)
}

// GetByID retrieves a transaction owned by userID
func (r *TransactionRepository) GetByID(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	pgID, ok := parseID(id)
	pgUserID, userOK := parseID(userID)
	if !ok || !userOK {
		return nil, domain.ErrTransactionNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`, pgID, pgUserID)
	return r.one(row)
}

// ListByUser returns the user's transactions, newest date first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	pgUserID, ok := parseID(userID)
	if !ok {
		return []*domain.Transaction{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`, pgUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// Update updates a transaction owned by the same user
func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	pgID, ok := parseID(transaction.ID)
	pgUserID, userOK := parseID(transaction.UserID)
	categoryID, categoryOK := parseID(transaction.CategoryID)
	if !ok || !userOK {
		return nil, domain.ErrTransactionNotFound
	}
	if !categoryOK {
		return nil, domain.ErrCategoryNotFound
	}
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	date, err := dateToPg(transaction.Date)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET category_id = $3, amount = $4, type = $5, date = $6, notes = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
		RETURNING `+transactionColumns,
		pgID, pgUserID, categoryID, amount, string(transaction.Type), date, transaction.Notes, transaction.UpdatedAt)
	return r.one(row)
}

// Delete removes a transaction owned by userID
func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	pgID, ok := parseID(id)
	pgUserID, userOK := parseID(userID)
	if !ok || !userOK {
		return domain.ErrTransactionNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, pgID, pgUserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) one(row pgx.Row) (*domain.Transaction, error) {
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// insertTransaction is shared by Create and recurring materialization
func insertTransaction(ctx context.Context, q querier, transaction *domain.Transaction) (*domain.Transaction, error) {
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	id, ok := parseID(transaction.ID)
	userID, userOK := parseID(transaction.UserID)
	if !ok || !userOK {
		return nil, domain.ErrInvalidInput
	}
	categoryID, ok := parseID(transaction.CategoryID)
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	date, err := dateToPg(transaction.Date)
	if err != nil {
		return nil, err
	}

	var recurringID pgtype.UUID
	if transaction.RecurringID != nil {
		recurringID, _ = parseID(*transaction.RecurringID)
	}

	row := q.QueryRow(ctx, `
		INSERT INTO transactions (id, user_id, category_id, amount, type, date, notes, is_recurring, recurring_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+transactionColumns,
		id, userID, categoryID, amount, string(transaction.Type), date, transaction.Notes,
		transaction.IsRecurring, recurringID, transaction.CreatedAt, transaction.UpdatedAt)
	return scanTransaction(row)
}

func scanTransaction(row pgRow) (*domain.Transaction, error) {
	var (
		id, userID, categoryID, recurringID pgtype.UUID
		amount                              pgtype.Numeric
		date                                pgtype.Date
		txType                              string
		t                                   domain.Transaction
	)
	if err := row.Scan(&id, &userID, &categoryID, &amount, &txType, &date, &t.Notes,
		&t.IsRecurring, &recurringID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.ID = uuidToString(id)
	t.UserID = uuidToString(userID)
	t.CategoryID = uuidToString(categoryID)
	t.Amount = pgNumericToDecimal(amount)
	t.Type = domain.TransactionType(txType)
	t.Date = pgDateToString(date)
	if recurringID.Valid {
		rid := uuidToString(recurringID)
		t.RecurringID = &rid
	}
	return &t, nil
}
