package filestore

import (
	"context"
	"sort"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/google/uuid"
)

// TransactionRepository implements domain.TransactionRepository on per-user documents
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create stores a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	err := r.store.updateUser(transaction.UserID, func(doc *userDocument) error {
		doc.Transactions = append(doc.Transactions, transaction)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetByID retrieves a transaction owned by userID
func (r *TransactionRepository) GetByID(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	var found *domain.Transaction
	err := r.store.viewUser(userID, func(doc *userDocument) error {
		for _, tx := range doc.Transactions {
			if tx.ID == id {
				found = tx
				return nil
			}
		}
		return domain.ErrTransactionNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByUser returns the user's transactions, newest date first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	transactions := []*domain.Transaction{}
	err := r.store.viewUser(userID, func(doc *userDocument) error {
		transactions = append(transactions, doc.Transactions...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortTransactions(transactions)
	return transactions, nil
}

// Update replaces a transaction owned by the same user
func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	err := r.store.updateUser(transaction.UserID, func(doc *userDocument) error {
		for i, tx := range doc.Transactions {
			if tx.ID == transaction.ID {
				doc.Transactions[i] = transaction
				return nil
			}
		}
		return domain.ErrTransactionNotFound
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// Delete removes a transaction owned by userID
func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	return r.store.updateUser(userID, func(doc *userDocument) error {
		for i, tx := range doc.Transactions {
			if tx.ID == id {
				doc.Transactions = append(doc.Transactions[:i], doc.Transactions[i+1:]...)
				return nil
			}
		}
		return domain.ErrTransactionNotFound
	})
}

func sortTransactions(transactions []*domain.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		if transactions[i].Date != transactions[j].Date {
			return transactions[i].Date > transactions[j].Date
		}
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
}
