// Package filestore keeps every user's records in a JSON document on disk.
// users.json lists the profiles; <userId>.json holds categories, transactions and
// recurring templates. Writes replace a whole file through a temp file and rename.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
)

const (
	usersFile = "users.json"
	fileMode  = 0o600
)

// userDocument is the on-disk layout of <userId>.json
type userDocument struct {
	Categories         []*domain.Category          `json:"categories"`
	Transactions       []*domain.Transaction       `json:"transactions"`
	RecurringTemplates []*domain.RecurringTemplate `json:"recurringTemplates"`
}

// Store serializes access to the data directory
type Store struct {
	dir string

	usersMu sync.Mutex

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// Open prepares dir for use, creating it when missing
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the data directory
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) userLock(userID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	return mu
}

func (s *Store) userPath(userID string) (string, error) {
	if userID == "" || userID == "." || userID == ".." || strings.ContainsAny(userID, `/\`) {
		return "", fmt.Errorf("invalid user id %q: %w", userID, domain.ErrInvalidInput)
	}
	return filepath.Join(s.dir, userID+".json"), nil
}

// readUser loads a user document; a missing file is an empty document
func (s *Store) readUser(userID string) (*userDocument, error) {
	path, err := s.userPath(userID)
	if err != nil {
		return nil, err
	}
	doc := &userDocument{}
	if err := readJSON(path, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// viewUser runs fn against a fresh copy of the user's document under the user lock
func (s *Store) viewUser(userID string, fn func(doc *userDocument) error) error {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	doc, err := s.readUser(userID)
	if err != nil {
		return err
	}
	return fn(doc)
}

// updateUser runs fn under the user lock and persists the document when fn succeeds
func (s *Store) updateUser(userID string, fn func(doc *userDocument) error) error {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	doc, err := s.readUser(userID)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	path, _ := s.userPath(userID)
	return writeJSON(path, doc)
}

func (s *Store) readUsers() ([]*domain.User, error) {
	var users []*domain.User
	if err := readJSON(filepath.Join(s.dir, usersFile), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) writeUsers(users []*domain.User) error {
	return writeJSON(filepath.Join(s.dir, usersFile), users)
}

func readJSON(path string, v any) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, fileMode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
