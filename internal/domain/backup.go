package domain

import (
	"context"
	"io"
	"time"
)

// UserSnapshot is a full export of one user's records
type UserSnapshot struct {
	User               Profile              `json:"user"`
	Categories         []*Category          `json:"categories"`
	Transactions       []*Transaction       `json:"transactions"`
	RecurringTemplates []*RecurringTemplate `json:"recurringTemplates"`
	ExportedAt         time.Time            `json:"exportedAt"`
}

// BackupObject describes a stored snapshot
type BackupObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// BackupStore persists snapshot blobs in object storage
type BackupStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64) error
	List(ctx context.Context, prefix string) ([]BackupObject, error)
}
