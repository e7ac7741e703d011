package domain

import (
	"context"
	"time"
)

// User represents a local profile protected by a PIN
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PINHash   string    `json:"pinHash"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile is the public view of a user shown on the profile picker
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Profile returns the public view of the user
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Color: u.Color}
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetAll(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByName(ctx context.Context, name string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
}
