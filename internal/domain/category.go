package domain

import (
	"context"
	"time"
)

// UncategorizedName labels amounts whose category no longer exists
const UncategorizedName = "Uncategorized"

type Category struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Color     string          `json:"color"`
	Icon      string          `json:"icon"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DefaultCategories are seeded for every new user
var DefaultCategories = []Category{
	{Name: "Salary", Type: TransactionTypeIncome, Color: "#22c55e", Icon: "briefcase"},
	{Name: "Freelance", Type: TransactionTypeIncome, Color: "#10b981", Icon: "laptop"},
	{Name: "Other Income", Type: TransactionTypeIncome, Color: "#14b8a6", Icon: "plus-circle"},
	{Name: "Food", Type: TransactionTypeExpense, Color: "#f97316", Icon: "utensils"},
	{Name: "Housing", Type: TransactionTypeExpense, Color: "#ef4444", Icon: "home"},
	{Name: "Transport", Type: TransactionTypeExpense, Color: "#3b82f6", Icon: "car"},
	{Name: "Utilities", Type: TransactionTypeExpense, Color: "#eab308", Icon: "zap"},
	{Name: "Entertainment", Type: TransactionTypeExpense, Color: "#a855f7", Icon: "film"},
	{Name: "Health", Type: TransactionTypeExpense, Color: "#ec4899", Icon: "heart"},
	{Name: "Shopping", Type: TransactionTypeExpense, Color: "#6366f1", Icon: "shopping-bag"},
	{Name: "Other", Type: TransactionTypeExpense, Color: "#64748b", Icon: "more-horizontal"},
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, userID, id string) (*Category, error)
	ListByUser(ctx context.Context, userID string) ([]*Category, error)
	Update(ctx context.Context, category *Category) (*Category, error)
	Delete(ctx context.Context, userID, id string) error
}
