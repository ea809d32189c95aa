package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/storage"
)

// UnknownLocationBucket is the display group for archived shops without a
// location.
const UnknownLocationBucket = "unknown location"

// Archive holds the saved shop snapshots. Saving is an upsert by id that
// preserves position; archived copies are immutable snapshots, detached
// from the editing session until loaded again.
type Archive struct {
	mu      sync.Mutex
	kv      storage.KV
	logger  *zap.Logger
	session *Session
	shops   []Shop
}

// NewArchive creates an archive bound to the editing session. The binding
// exists so deleting the currently loaded shop can clear the session's
// current pointer.
//
// Precondition: kv, logger, and session must be non-nil.
func NewArchive(kv storage.KV, logger *zap.Logger, session *Session) *Archive {
	return &Archive{kv: kv, logger: logger, session: session}
}

// Load reads the persisted archive. An absent or unparsable document
// yields an empty archive.
func (a *Archive) Load(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, found, err := a.kv.Get(ctx, storage.KeyShops)
	if err != nil {
		return fmt.Errorf("loading saved shops: %w", err)
	}
	if !found {
		return nil
	}
	var shops []Shop
	if err := json.Unmarshal(data, &shops); err != nil {
		a.logger.Warn("discarding unparsable shop archive", zap.Error(err))
		return nil
	}
	a.shops = shops
	return nil
}

// Save upserts the shop by id: an existing entry is replaced in place,
// otherwise the shop is appended.
//
// Postcondition: saving twice with the same id leaves the archive length
// unchanged.
func (a *Archive) Save(ctx context.Context, s Shop) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored := s.Clone()
	replaced := false
	for idx := range a.shops {
		if a.shops[idx].ID == stored.ID {
			a.shops[idx] = stored
			replaced = true
			break
		}
	}
	if !replaced {
		a.shops = append(a.shops, stored)
	}
	return a.persist(ctx)
}

// Delete removes the shop with the given id. If that shop is currently
// loaded in the session, the current pointer is cleared too. Missing ids
// are a silent no-op.
func (a *Archive) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	kept := a.shops[:0]
	removed := false
	for _, s := range a.shops {
		if s.ID == id {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	a.shops = kept
	if !removed {
		return nil
	}
	if a.session.CurrentID() == id {
		a.session.Clear()
	}
	return a.persist(ctx)
}

// LoadShop copies the archived shop with the given id into the session as
// the new current shop. Later edits to the current shop do not touch the
// archived record until the next Save.
func (a *Archive) LoadShop(id string) (Shop, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, s := range a.shops {
		if s.ID == id {
			a.session.SetCurrent(s)
			return s.Clone(), true
		}
	}
	return Shop{}, false
}

// All returns a copy of every archived shop in archive order.
func (a *Archive) All() []Shop {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Shop, 0, len(a.shops))
	for _, s := range a.shops {
		out = append(out, s.Clone())
	}
	return out
}

// GroupByLocation buckets archived shops by location label for display.
// Shops without a location land in UnknownLocationBucket. This is pure
// presentation grouping, not a stored relationship.
func (a *Archive) GroupByLocation() map[string][]Shop {
	a.mu.Lock()
	defer a.mu.Unlock()

	groups := make(map[string][]Shop)
	for _, s := range a.shops {
		bucket := s.Location
		if bucket == "" {
			bucket = UnknownLocationBucket
		}
		groups[bucket] = append(groups[bucket], s.Clone())
	}
	return groups
}

// persist rewrites the full archive document. Callers must hold the lock.
func (a *Archive) persist(ctx context.Context) error {
	data, err := json.Marshal(a.shops)
	if err != nil {
		return fmt.Errorf("encoding saved shops: %w", err)
	}
	if err := a.kv.Put(ctx, storage.KeyShops, data); err != nil {
		return fmt.Errorf("persisting saved shops: %w", err)
	}
	return nil
}
