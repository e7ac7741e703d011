package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return store
}

func TestUserRepository(t *testing.T) {
	store := openStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bob, err := repo.Create(ctx, &domain.User{Name: "Bob", PINHash: "hash-b", CreatedAt: now.Add(time.Hour)})
	require.NoError(t, err)
	assert.NotEmpty(t, bob.ID)
	_, err = repo.Create(ctx, &domain.User{ID: "alice", Name: "Alice", PINHash: "hash-a", CreatedAt: now})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Name: "ALICE"})
	assert.ErrorIs(t, err, domain.ErrNameTaken)
	_, err = repo.Create(ctx, &domain.User{ID: "../escape", Name: "Eve"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	users, err = NewUserRepository(store).GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "hash-a", users[0].PINHash)

	found, err := repo.GetByName(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, found.ID)

	found.PINHash = "rotated"
	_, err = repo.Update(ctx, found)
	require.NoError(t, err)
	reloaded, err := repo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotated", reloaded.PINHash)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.Update(ctx, &domain.User{ID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCategoryRepository_Ownership(t *testing.T) {
	store := openStore(t)
	repo := NewCategoryRepository(store)
	ctx := context.Background()

	cat, err := repo.Create(ctx, &domain.Category{UserID: "user-1", Name: "Rent", Type: domain.TransactionTypeExpense})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "user-1", cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rent", got.Name)

	_, err = repo.GetByID(ctx, "user-2", cat.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "user-2", cat.ID), domain.ErrCategoryNotFound)

	got.Name = "Housing"
	_, err = repo.Update(ctx, got)
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Housing", list[0].Name)

	require.NoError(t, repo.Delete(ctx, "user-1", cat.ID))
	list, err = repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactionRepository(t *testing.T) {
	store := openStore(t)
	repo := NewTransactionRepository(store)
	ctx := context.Background()

	for _, date := range []string{"2024-01-05", "2024-03-01", "2024-02-10"} {
		_, err := repo.Create(ctx, &domain.Transaction{
			UserID: "user-1",
			Amount: decimal.RequireFromString("12.34"),
			Type:   domain.TransactionTypeExpense,
			Date:   date,
		})
		require.NoError(t, err)
	}

	list, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-03-01", list[0].Date)
	assert.Equal(t, "2024-01-05", list[2].Date)
	assert.True(t, list[0].Amount.Equal(decimal.RequireFromString("12.34")))

	tx := list[1]
	tx.Notes = "groceries"
	_, err = repo.Update(ctx, tx)
	require.NoError(t, err)
	got, err := repo.GetByID(ctx, "user-1", tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Notes)

	_, err = repo.GetByID(ctx, "user-2", tx.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	require.NoError(t, repo.Delete(ctx, "user-1", tx.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "user-1", tx.ID), domain.ErrTransactionNotFound)
}

func seedTemplate(t *testing.T, repo *RecurringTemplateRepository) *domain.RecurringTemplate {
	t.Helper()
	tmpl, err := repo.Create(context.Background(), &domain.RecurringTemplate{
		UserID:      "user-1",
		Name:        "Rent",
		Amount:      decimal.NewFromInt(1200),
		Type:        domain.TransactionTypeExpense,
		Frequency:   domain.FrequencyMonthly,
		StartDate:   "2024-01-01",
		NextDueDate: "2024-01-01",
		IsActive:    true,
	})
	require.NoError(t, err)
	return tmpl
}

func materialization(tmpl *domain.RecurringTemplate, expected, next string) domain.Materialization {
	recurringID := tmpl.ID
	return domain.Materialization{
		UserID:              tmpl.UserID,
		TemplateID:          tmpl.ID,
		ExpectedNextDueDate: expected,
		NextDueDate:         next,
		Transaction: &domain.Transaction{
			UserID:      tmpl.UserID,
			Amount:      tmpl.Amount,
			Type:        tmpl.Type,
			Date:        expected,
			IsRecurring: true,
			RecurringID: &recurringID,
			CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestRecurringTemplateRepository_Materialize(t *testing.T) {
	store := openStore(t)
	templates := NewRecurringTemplateRepository(store)
	transactions := NewTransactionRepository(store)
	ctx := context.Background()

	tmpl := seedTemplate(t, templates)

	tx, err := templates.Materialize(ctx, materialization(tmpl, "2024-01-01", "2024-02-01"))
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)

	got, err := templates.GetByID(ctx, "user-1", tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", got.NextDueDate)

	list, err := transactions.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-01-01", list[0].Date)
	require.NotNil(t, list[0].RecurringID)
	assert.Equal(t, tmpl.ID, *list[0].RecurringID)

	// stale expectation: nothing is written
	_, err = templates.Materialize(ctx, materialization(tmpl, "2024-01-01", "2024-02-01"))
	assert.ErrorIs(t, err, domain.ErrDueDateConflict)
	list, err = transactions.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = templates.Materialize(ctx, domain.Materialization{UserID: "user-2", TemplateID: tmpl.ID, Transaction: &domain.Transaction{}})
	assert.ErrorIs(t, err, domain.ErrRecurringNotFound)
}

func TestRecurringTemplateRepository_UpdateRequiresUnchangedDueDate(t *testing.T) {
	store := openStore(t)
	templates := NewRecurringTemplateRepository(store)
	transactions := NewTransactionRepository(store)
	ctx := context.Background()

	tmpl := seedTemplate(t, templates)
	stale, err := templates.GetByID(ctx, "user-1", tmpl.ID)
	require.NoError(t, err)

	_, err = templates.Materialize(ctx, materialization(tmpl, "2024-01-01", "2024-02-01"))
	require.NoError(t, err)

	stale.Notes = "edited"
	_, err = templates.Update(ctx, stale, "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrDueDateConflict)

	got, err := templates.GetByID(ctx, "user-1", tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", got.NextDueDate)
	assert.Empty(t, got.Notes)

	got.Notes = "edited"
	_, err = templates.Update(ctx, got, "2024-02-01")
	require.NoError(t, err)
	got, err = templates.GetByID(ctx, "user-1", tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Notes)
	assert.Equal(t, "2024-02-01", got.NextDueDate)

	_, err = templates.Update(ctx, &domain.RecurringTemplate{ID: "ghost", UserID: "user-1"}, "2024-02-01")
	assert.ErrorIs(t, err, domain.ErrRecurringNotFound)

	list, err := transactions.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecurringTemplateRepository_ConcurrentMaterialize(t *testing.T) {
	store := openStore(t)
	templates := NewRecurringTemplateRepository(store)
	transactions := NewTransactionRepository(store)
	tmpl := seedTemplate(t, templates)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, conflicts := 0, 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := templates.Materialize(context.Background(), materialization(tmpl, "2024-01-01", "2024-02-01"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrDueDateConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 7, conflicts)
	list, err := transactions.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecurringTemplateRepository_DeleteKeepsTransactions(t *testing.T) {
	store := openStore(t)
	templates := NewRecurringTemplateRepository(store)
	transactions := NewTransactionRepository(store)
	ctx := context.Background()

	tmpl := seedTemplate(t, templates)
	_, err := templates.Materialize(ctx, materialization(tmpl, "2024-01-01", "2024-02-01"))
	require.NoError(t, err)

	require.NoError(t, templates.Delete(ctx, "user-1", tmpl.ID))
	_, err = templates.GetByID(ctx, "user-1", tmpl.ID)
	assert.ErrorIs(t, err, domain.ErrRecurringNotFound)

	list, err := transactions.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_AtomicWriteLeavesNoTempFiles(t *testing.T) {
	store := openStore(t)
	repo := NewCategoryRepository(store)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(context.Background(), &domain.Category{UserID: "user-1", Name: "c"})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user-1.json", entries[0].Name())

	info, err := os.Stat(filepath.Join(store.Dir(), "user-1.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileMode), info.Mode().Perm())
}

func TestStore_CorruptFile(t *testing.T) {
	store := openStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "user-1.json"), []byte("{not json"), 0o600))

	_, err := NewTransactionRepository(store).ListByUser(context.Background(), "user-1")
	assert.Error(t, err)
}
