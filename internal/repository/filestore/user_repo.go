package filestore

import (
	"context"
	"sort"
	"strings"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/google/uuid"
)

// UserRepository implements domain.UserRepository on users.json
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetAll returns every user in registration order
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	r.store.usersMu.Lock()
	defer r.store.usersMu.Unlock()

	users, err := r.store.readUsers()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.store.usersMu.Lock()
	defer r.store.usersMu.Unlock()

	users, err := r.store.readUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByName retrieves a user by case-insensitive name
func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	r.store.usersMu.Lock()
	defer r.store.usersMu.Unlock()

	users, err := r.store.readUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Name, name) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create appends a user. Names stay unique case-insensitively.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.store.usersMu.Lock()
	defer r.store.usersMu.Unlock()

	users, err := r.store.readUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Name, user.Name) {
			return nil, domain.ErrNameTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, err := r.store.userPath(user.ID); err != nil {
		return nil, err
	}

	users = append(users, user)
	if err := r.store.writeUsers(users); err != nil {
		return nil, err
	}
	return user, nil
}

// Update replaces an existing user
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.store.usersMu.Lock()
	defer r.store.usersMu.Unlock()

	users, err := r.store.readUsers()
	if err != nil {
		return nil, err
	}
	for i, u := range users {
		if u.ID == user.ID {
			users[i] = user
			if err := r.store.writeUsers(users); err != nil {
				return nil, err
			}
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
