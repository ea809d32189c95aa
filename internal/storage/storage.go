// Package storage defines the key-value backing store contract used for
// local persistence. Collections are rewritten in full under their logical
// key on every mutation; there is no delta persistence.
package storage

import "context"

// Logical keys for every persisted collection.
const (
	KeyItems       = "items"
	KeyNPCs        = "npcs"
	KeyCities      = "cities"
	KeyShops       = "saved-shops"
	KeyShopTypes   = "shop-types"
	KeyItemTypes   = "item-types"
	KeySystemTags  = "system-tags"
	KeyRarityTags  = "rarity-tags"
	KeyAppSettings = "app-settings"
)

// KV is a process-local, best-effort durable key-value store.
//
// Implementations MUST be safe for concurrent use.
type KV interface {
	// Get returns the value stored under key. The boolean reports whether
	// the key was present; a missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the store.
	Close() error
}
