package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const backupKeyLayout = "20060102T150405Z"

// BackupService exports a user's records and ships snapshots to object storage
type BackupService struct {
	userRepo        domain.UserRepository
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
	templateRepo    domain.RecurringTemplateRepository
	store           domain.BackupStore
	clock           util.Clock
}

// NewBackupService creates a new BackupService. store may be nil when backups are disabled.
func NewBackupService(
	userRepo domain.UserRepository,
	categoryRepo domain.CategoryRepository,
	transactionRepo domain.TransactionRepository,
	templateRepo domain.RecurringTemplateRepository,
	store domain.BackupStore,
	clock util.Clock,
) *BackupService {
	return &BackupService{
		userRepo:        userRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		templateRepo:    templateRepo,
		store:           store,
		clock:           clock,
	}
}

// Enabled reports whether snapshots can be uploaded
func (s *BackupService) Enabled() bool {
	return s.store != nil
}

// Export collects every record owned by the user
func (s *BackupService) Export(ctx context.Context, userID string) (*domain.UserSnapshot, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.UserSnapshot{
		User:       user.Profile(),
		ExportedAt: s.clock.Now().UTC(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := s.categoryRepo.ListByUser(gctx, userID)
		snapshot.Categories = categories
		return err
	})
	g.Go(func() error {
		transactions, err := s.transactionRepo.ListByUser(gctx, userID)
		snapshot.Transactions = transactions
		return err
	})
	g.Go(func() error {
		templates, err := s.templateRepo.ListByUser(gctx, userID)
		snapshot.RecurringTemplates = templates
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(snapshot.Transactions, func(i, j int) bool {
		return snapshot.Transactions[i].Date < snapshot.Transactions[j].Date
	})
	return snapshot, nil
}

// Upload writes a JSON snapshot to backups/<userId>/<timestamp>.json
func (s *BackupService) Upload(ctx context.Context, userID string) (*domain.BackupObject, error) {
	if s.store == nil {
		return nil, domain.ErrBackupDisabled
	}

	snapshot, err := s.Export(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%s%s.json", backupPrefix(userID), snapshot.ExportedAt.Format(backupKeyLayout))
	if err := s.store.Put(ctx, key, bytes.NewReader(body), int64(len(body))); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("key", key).Msg("Failed to upload backup")
		return nil, err
	}

	log.Info().Str("user_id", userID).Str("key", key).Int("size", len(body)).Msg("Backup uploaded")
	return &domain.BackupObject{
		Key:          key,
		Size:         int64(len(body)),
		LastModified: snapshot.ExportedAt,
	}, nil
}

// List returns the user's stored snapshots, newest first
func (s *BackupService) List(ctx context.Context, userID string) ([]domain.BackupObject, error) {
	if s.store == nil {
		return nil, domain.ErrBackupDisabled
	}
	return s.store.List(ctx, backupPrefix(userID))
}

func backupPrefix(userID string) string {
	return "backups/" + userID + "/"
}
