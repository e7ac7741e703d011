package testutil

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mu       sync.Mutex
	ByID     map[string]*domain.User
	GetAllFn func(ctx context.Context) ([]*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID: make(map[string]*domain.User),
	}
}

// GetAll returns every user ordered by creation time
func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*domain.User, 0, len(m.ByID))
	for _, u := range m.ByID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByName retrieves a user by case-insensitive name
func (m *MockUserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.ByID {
		if strings.EqualFold(u.Name, name) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create stores a new user, assigning an ID when missing
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	m.ByID[user.ID] = user
	return user, nil
}

// Update replaces an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ByID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	m.ByID[user.ID] = user
	return user, nil
}

// AddUser adds a user directly to the mock repository
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByID[user.ID] = user
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	mu         sync.Mutex
	Categories map[string]*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[string]*domain.Category),
	}
}

// Create stores a new category
func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category owned by userID
func (m *MockCategoryRepository) GetByID(ctx context.Context, userID, id string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Categories[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// ListByUser returns a user's categories ordered by name
func (m *MockCategoryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Category, 0)
	for _, c := range m.Categories {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update replaces a category owned by the same user
func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Categories[category.ID]; !ok || c.UserID != category.UserID {
		return nil, domain.ErrCategoryNotFound
	}
	m.Categories[category.ID] = category
	return category, nil
}

// Delete removes a category owned by userID
func (m *MockCategoryRepository) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Categories[id]; !ok || c.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// AddCategory adds a category directly to the mock repository
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Categories[category.ID] = category
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	mu           sync.Mutex
	Transactions map[string]*domain.Transaction
	CreateFn     func(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	ListFn       func(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[string]*domain.Transaction),
	}
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(transaction)
	return transaction, nil
}

func (m *MockTransactionRepository) insertLocked(transaction *domain.Transaction) {
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	m.Transactions[transaction.ID] = transaction
}

// GetByID retrieves a transaction owned by userID
func (m *MockTransactionRepository) GetByID(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx, ok := m.Transactions[id]; ok && tx.UserID == userID {
		return tx, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// ListByUser returns a user's transactions, newest date first
func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Transaction, 0)
	for _, tx := range m.Transactions {
		if tx.UserID == userID {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Update replaces a transaction owned by the same user
func (m *MockTransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx, ok := m.Transactions[transaction.ID]; !ok || tx.UserID != transaction.UserID {
		return nil, domain.ErrTransactionNotFound
	}
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// Delete removes a transaction owned by userID
func (m *MockTransactionRepository) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx, ok := m.Transactions[id]; !ok || tx.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// AddTransaction adds a transaction directly to the mock repository
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions[transaction.ID] = transaction
}

// Count returns how many transactions are stored
func (m *MockTransactionRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Transactions)
}

// MockRecurringTemplateRepository is a mock implementation of domain.RecurringTemplateRepository.
// Materialize writes spawned transactions into the linked transaction mock.
type MockRecurringTemplateRepository struct {
	mu            sync.Mutex
	Templates     map[string]*domain.RecurringTemplate
	Transactions  *MockTransactionRepository
	MaterializeFn func(ctx context.Context, m domain.Materialization) (*domain.Transaction, error)
	Writes        int
}

// NewMockRecurringTemplateRepository creates a new MockRecurringTemplateRepository
func NewMockRecurringTemplateRepository(transactions *MockTransactionRepository) *MockRecurringTemplateRepository {
	return &MockRecurringTemplateRepository{
		Templates:    make(map[string]*domain.RecurringTemplate),
		Transactions: transactions,
	}
}

// Create stores a new template
func (m *MockRecurringTemplateRepository) Create(ctx context.Context, template *domain.RecurringTemplate) (*domain.RecurringTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	m.Templates[template.ID] = template
	m.Writes++
	return template, nil
}

// GetByID returns a copy of a template owned by userID
func (m *MockRecurringTemplateRepository) GetByID(ctx context.Context, userID, id string) (*domain.RecurringTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.Templates[id]; ok && t.UserID == userID {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrRecurringNotFound
}

// ListByUser returns copies of a user's templates ordered by next due date
func (m *MockRecurringTemplateRepository) ListByUser(ctx context.Context, userID string) ([]*domain.RecurringTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.RecurringTemplate, 0)
	for _, t := range m.Templates {
		if t.UserID == userID {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].NextDueDate != result[j].NextDueDate {
			return result[i].NextDueDate < result[j].NextDueDate
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update replaces a template owned by the same user while its next due date is unchanged
func (m *MockRecurringTemplateRepository) Update(ctx context.Context, template *domain.RecurringTemplate, expectedNextDueDate string) (*domain.RecurringTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Templates[template.ID]
	if !ok || t.UserID != template.UserID {
		return nil, domain.ErrRecurringNotFound
	}
	if t.NextDueDate != expectedNextDueDate {
		return nil, domain.ErrDueDateConflict
	}
	copied := *template
	m.Templates[template.ID] = &copied
	m.Writes++
	return template, nil
}

// Delete removes a template owned by userID
func (m *MockRecurringTemplateRepository) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.Templates[id]; !ok || t.UserID != userID {
		return domain.ErrRecurringNotFound
	}
	delete(m.Templates, id)
	m.Writes++
	return nil
}

// Materialize inserts the transaction and advances the template when the stored
// next due date still matches the expected one
func (m *MockRecurringTemplateRepository) Materialize(ctx context.Context, mat domain.Materialization) (*domain.Transaction, error) {
	if m.MaterializeFn != nil {
		return m.MaterializeFn(ctx, mat)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.Templates[mat.TemplateID]
	if !ok || t.UserID != mat.UserID {
		return nil, domain.ErrRecurringNotFound
	}
	if t.NextDueDate != mat.ExpectedNextDueDate {
		return nil, domain.ErrDueDateConflict
	}

	m.Transactions.mu.Lock()
	m.Transactions.insertLocked(mat.Transaction)
	m.Transactions.mu.Unlock()

	t.NextDueDate = mat.NextDueDate
	t.UpdatedAt = time.Now().UTC()
	m.Writes++
	return mat.Transaction, nil
}

// AddTemplate adds a template directly to the mock repository
func (m *MockRecurringTemplateRepository) AddTemplate(template *domain.RecurringTemplate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Templates[template.ID] = template
}

// Get returns the stored template without ownership checks
func (m *MockRecurringTemplateRepository) Get(id string) *domain.RecurringTemplate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.Templates[id]; ok {
		copied := *t
		return &copied
	}
	return nil
}

// MockBackupStore is an in-memory domain.BackupStore
type MockBackupStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Times   map[string]time.Time
	PutFn   func(ctx context.Context, key string, body io.Reader, size int64) error
}

// NewMockBackupStore creates a new MockBackupStore
func NewMockBackupStore() *MockBackupStore {
	return &MockBackupStore{
		Objects: make(map[string][]byte),
		Times:   make(map[string]time.Time),
	}
}

// Put stores the object body under key
func (m *MockBackupStore) Put(ctx context.Context, key string, body io.Reader, size int64) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, key, body, size)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = buf.Bytes()
	m.Times[key] = time.Now().UTC()
	return nil
}

// List returns objects under prefix, newest first
func (m *MockBackupStore) List(ctx context.Context, prefix string) ([]domain.BackupObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.BackupObject, 0)
	for key, body := range m.Objects {
		if strings.HasPrefix(key, prefix) {
			result = append(result, domain.BackupObject{Key: key, Size: int64(len(body)), LastModified: m.Times[key]})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key > result[j].Key })
	return result, nil
}

// MockEventPublisher records published events per user
type MockEventPublisher struct {
	mu     sync.Mutex
	Events map[string][]websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{Events: make(map[string][]websocket.Event)}
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID string, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events[userID] = append(m.Events[userID], event)
}

// Types returns the event types published for a user, in order
func (m *MockEventPublisher) Types(userID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.Events[userID]))
	for _, e := range m.Events[userID] {
		types = append(types, e.Type)
	}
	return types
}
