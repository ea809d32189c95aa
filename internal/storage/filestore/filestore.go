// Package filestore implements the storage.KV contract with one JSON
// document per key under a local data directory. This is the default
// backend for single-user local use.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists each key as a file named "<key>.json" inside dir.
//
// Invariant: writes are atomic at the file level (temp file + rename), so a
// crash mid-write never leaves a torn document behind.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// New creates the data directory if needed and returns a Store over it.
//
// Precondition: dir must be a writable path.
// Postcondition: Returns a usable Store or a non-nil error.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Get returns the document stored under key, or found=false if absent.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return data, true, nil
}

// Put writes value under key atomically.
//
// Postcondition: a subsequent Get returns exactly value, or the previous
// document if the rename never happened.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, "."+s.filename(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for key %q: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file for key %q: %w", key, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("committing key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are a silent no-op.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *Store) Close() error { return nil }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, s.filename(key))
}

// filename maps a logical key to a safe file name. Keys are short
// lowercase identifiers; the replacement guards against separators only.
func (s *Store) filename(key string) string {
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return safe + ".json"
}
