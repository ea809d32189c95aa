package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KVStore implements storage.KV over a single documents table. Each logical
// collection key maps to one jsonb row that is rewritten in full on every
// mutation.
type KVStore struct {
	db   *pgxpool.Pool
	pool *Pool
}

// NewKVStore creates a KVStore backed by the given pool.
//
// Precondition: pool must be a valid, open connection pool whose schema has
// been migrated (see migrations/).
func NewKVStore(pool *Pool) *KVStore {
	return &KVStore{db: pool.DB(), pool: pool}
}

// Get returns the document stored under key, or found=false if absent.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(ctx,
		`SELECT value FROM documents WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("selecting key %q: %w", key, err)
	}
	return value, true, nil
}

// Put upserts value under key.
//
// Postcondition: a subsequent Get returns exactly value.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO documents (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upserting key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are a silent no-op.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM documents WHERE key = $1`, key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying pool.
func (s *KVStore) Close() error {
	s.pool.Close()
	return nil
}
