package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/storage"
)

// Store is the process-wide aggregate owning every catalog collection.
// All reads return copies and all writes go through named methods, so no
// consumer can mutate a collection it was handed by reference. Each
// mutation rewrites the owning collection's document in the backing store.
type Store struct {
	mu     sync.RWMutex
	kv     storage.KV
	logger *zap.Logger

	items      []Item
	npcs       []NPC
	cities     []City
	taxonomies map[Taxonomy][]string
}

// NewStore creates an empty Store over the given backing store.
//
// Precondition: kv and logger must be non-nil.
func NewStore(kv storage.KV, logger *zap.Logger) *Store {
	return &Store{
		kv:         kv,
		logger:     logger,
		taxonomies: make(map[Taxonomy][]string),
	}
}

// Load reads every persisted collection, falling back to the seed dataset
// for any key that is absent or unparsable.
//
// Postcondition: every collection is populated from storage or from seed;
// returns an error only on storage read failure.
func (s *Store) Load(ctx context.Context, seed Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := loadCollection(ctx, s, storage.KeyItems, &s.items, seed.Items); err != nil {
		return err
	}
	if err := loadCollection(ctx, s, storage.KeyNPCs, &s.npcs, seed.NPCs); err != nil {
		return err
	}
	if err := loadCollection(ctx, s, storage.KeyCities, &s.cities, seed.Cities); err != nil {
		return err
	}

	seedTags := map[Taxonomy][]string{
		ShopTypes: seed.ShopTypes,
		ItemTypes: seed.ItemTypes,
		Systems:   seed.Systems,
		Rarities:  seed.Rarities,
	}
	for _, tax := range AllTaxonomies {
		var tags []string
		if err := loadCollection(ctx, s, taxonomyKey(tax), &tags, seedTags[tax]); err != nil {
			return err
		}
		s.taxonomies[tax] = tags
	}
	return nil
}

// loadCollection fills dst from the stored document under key, or from
// fallback when the key is absent or does not parse.
func loadCollection[T any](ctx context.Context, s *Store, key string, dst *[]T, fallback []T) error {
	data, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("loading %q: %w", key, err)
	}
	if !found {
		*dst = append([]T(nil), fallback...)
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("discarding unparsable collection, falling back to seed",
			zap.String("key", key), zap.Error(err))
		*dst = append([]T(nil), fallback...)
	}
	return nil
}

// --- Reads ---

// Items returns a copy of the item collection.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item(nil), s.items...)
}

// NPCs returns a copy of the NPC collection.
func (s *Store) NPCs() []NPC {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]NPC(nil), s.npcs...)
}

// Cities returns a copy of the city collection.
func (s *Store) Cities() []City {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]City(nil), s.cities...)
}

// Tags returns a copy of the given taxonomy's tag list.
func (s *Store) Tags(tax Taxonomy) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.taxonomies[tax]...)
}

// AllRules returns every taxonomy in the rules payload shape.
func (s *Store) AllRules() Rules {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Rules{
		ShopTypes: append([]string(nil), s.taxonomies[ShopTypes]...),
		ItemTypes: append([]string(nil), s.taxonomies[ItemTypes]...),
		Systems:   append([]string(nil), s.taxonomies[Systems]...),
		Rarities:  append([]string(nil), s.taxonomies[Rarities]...),
	}
}

// FindNPC returns a copy of the NPC with the given id.
func (s *Store) FindNPC(id string) (NPC, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.npcs {
		if n.ID == id {
			return n, true
		}
	}
	return NPC{}, false
}

// FindItem returns a copy of the item with the given id.
func (s *Store) FindItem(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, i := range s.items {
		if i.ID == id {
			return i, true
		}
	}
	return Item{}, false
}

// Snapshot returns a copy of every collection for the generation engine.
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dataset{
		Items:     append([]Item(nil), s.items...),
		NPCs:      append([]NPC(nil), s.npcs...),
		Cities:    append([]City(nil), s.cities...),
		ShopTypes: append([]string(nil), s.taxonomies[ShopTypes]...),
		ItemTypes: append([]string(nil), s.taxonomies[ItemTypes]...),
		Systems:   append([]string(nil), s.taxonomies[Systems]...),
		Rarities:  append([]string(nil), s.taxonomies[Rarities]...),
	}
}

// --- Item CRUD ---

// AddItem appends an item to the catalog.
//
// Precondition: item must pass Validate and carry a caller-minted id.
func (s *Store) AddItem(ctx context.Context, item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return s.persistItems(ctx)
}

// UpdateItem replaces the item with a matching id. Missing ids are a
// silent no-op.
func (s *Store) UpdateItem(ctx context.Context, item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx, existing := range s.items {
		if existing.ID == item.ID {
			s.items[idx] = item
			return s.persistItems(ctx)
		}
	}
	return nil
}

// DeleteItem removes the item with the given id. Missing ids are a silent
// no-op.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := false
	for _, i := range s.items {
		if i.ID == id {
			removed = true
			continue
		}
		kept = append(kept, i)
	}
	s.items = kept
	if !removed {
		return nil
	}
	return s.persistItems(ctx)
}

// ImportItems merges incoming items into the catalog by id: incoming
// records win on collision, records without an id receive a fresh one, and
// untouched records keep their position.
//
// Postcondition: importing the same collection twice yields the same
// result as importing it once.
func (s *Store) ImportItems(ctx context.Context, incoming []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = mergeByID(s.items, incoming,
		func(i Item) string { return i.ID },
		func(i Item, id string) Item { i.ID = id; return i },
	)
	return s.persistItems(ctx)
}

// --- NPC CRUD ---

// AddNPC appends an NPC to the catalog.
func (s *Store) AddNPC(ctx context.Context, npc NPC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.npcs = append(s.npcs, npc)
	return s.persistNPCs(ctx)
}

// UpdateNPC replaces the NPC with a matching id. Missing ids are a silent
// no-op.
func (s *Store) UpdateNPC(ctx context.Context, npc NPC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx, existing := range s.npcs {
		if existing.ID == npc.ID {
			s.npcs[idx] = npc
			return s.persistNPCs(ctx)
		}
	}
	return nil
}

// DeleteNPC removes the NPC with the given id. Missing ids are a silent
// no-op.
func (s *Store) DeleteNPC(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.npcs[:0]
	removed := false
	for _, n := range s.npcs {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	s.npcs = kept
	if !removed {
		return nil
	}
	return s.persistNPCs(ctx)
}

// ImportNPCs merges incoming NPCs into the catalog by id, minting ids for
// records that lack one.
func (s *Store) ImportNPCs(ctx context.Context, incoming []NPC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.npcs = mergeByID(s.npcs, incoming,
		func(n NPC) string { return n.ID },
		func(n NPC, id string) NPC { n.ID = id; return n },
	)
	return s.persistNPCs(ctx)
}

// --- City CRUD ---

// AddCity appends a city to the catalog.
func (s *Store) AddCity(ctx context.Context, city City) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = append(s.cities, city)
	return s.persistCities(ctx)
}

// UpdateCity replaces the city with a matching id. Missing ids are a
// silent no-op.
func (s *Store) UpdateCity(ctx context.Context, city City) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx, existing := range s.cities {
		if existing.ID == city.ID {
			s.cities[idx] = city
			return s.persistCities(ctx)
		}
	}
	return nil
}

// DeleteCity removes the city with the given id. Missing ids are a silent
// no-op.
func (s *Store) DeleteCity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cities[:0]
	removed := false
	for _, c := range s.cities {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	s.cities = kept
	if !removed {
		return nil
	}
	return s.persistCities(ctx)
}

// ImportCities merges incoming cities into the catalog by id, minting ids
// for records that lack one.
func (s *Store) ImportCities(ctx context.Context, incoming []City) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = mergeByID(s.cities, incoming,
		func(c City) string { return c.ID },
		func(c City, id string) City { c.ID = id; return c },
	)
	return s.persistCities(ctx)
}

// --- Taxonomy operations ---

// AddTag appends a tag to the given taxonomy. Duplicate tags are tolerated
// as a display nuisance, not rejected.
func (s *Store) AddTag(ctx context.Context, tax Taxonomy, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taxonomies[tax] = append(s.taxonomies[tax], tag)
	return s.persistTaxonomy(ctx, tax)
}

// DeleteTag removes a tag from the given taxonomy. Items referencing the
// tag keep their now-dangling reference. Missing tags are a silent no-op.
func (s *Store) DeleteTag(ctx context.Context, tax Taxonomy, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := s.taxonomies[tax]
	kept := tags[:0]
	removed := false
	for _, t := range tags {
		if t == tag {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	s.taxonomies[tax] = kept
	if !removed {
		return nil
	}
	return s.persistTaxonomy(ctx, tax)
}

// ImportRules unions the incoming tag sets into the taxonomies: existing
// tags keep their order, new ones append in payload order.
func (s *Store) ImportRules(ctx context.Context, rules Rules) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	incoming := map[Taxonomy][]string{
		ShopTypes: rules.ShopTypes,
		ItemTypes: rules.ItemTypes,
		Systems:   rules.Systems,
		Rarities:  rules.Rarities,
	}
	for _, tax := range AllTaxonomies {
		tags := incoming[tax]
		if tags == nil {
			continue
		}
		s.taxonomies[tax] = unionTags(s.taxonomies[tax], tags)
		if err := s.persistTaxonomy(ctx, tax); err != nil {
			return err
		}
	}
	return nil
}

// --- internals ---

// mergeByID is the keyed-map overlay used by every bulk import: existing
// records keep their position, colliding incoming records replace them in
// place, and new incoming records append in payload order. Incoming
// records without an id are assigned a fresh one before merging.
func mergeByID[T any](existing, incoming []T, id func(T) string, withID func(T, string) T) []T {
	out := append([]T(nil), existing...)
	index := make(map[string]int, len(out))
	for i, rec := range out {
		index[id(rec)] = i
	}
	for _, rec := range incoming {
		key := id(rec)
		if key == "" {
			key = uuid.NewString()
			rec = withID(rec, key)
		}
		if pos, ok := index[key]; ok {
			out[pos] = rec
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out
}

// unionTags deduplicates while preserving "existing first, then new" order.
func unionTags(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := make([]string, 0, len(existing)+len(incoming))
	for _, t := range existing {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	for _, t := range incoming {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func taxonomyKey(tax Taxonomy) string {
	switch tax {
	case ShopTypes:
		return storage.KeyShopTypes
	case ItemTypes:
		return storage.KeyItemTypes
	case Systems:
		return storage.KeySystemTags
	default:
		return storage.KeyRarityTags
	}
}

func (s *Store) persistItems(ctx context.Context) error {
	return s.persist(ctx, storage.KeyItems, s.items)
}

func (s *Store) persistNPCs(ctx context.Context) error {
	return s.persist(ctx, storage.KeyNPCs, s.npcs)
}

func (s *Store) persistCities(ctx context.Context) error {
	return s.persist(ctx, storage.KeyCities, s.cities)
}

func (s *Store) persistTaxonomy(ctx context.Context, tax Taxonomy) error {
	return s.persist(ctx, taxonomyKey(tax), s.taxonomies[tax])
}

// persist rewrites the full collection document under key. Callers must
// hold the write lock.
func (s *Store) persist(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("persisting %q: %w", key, err)
	}
	return nil
}
