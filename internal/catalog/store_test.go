package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/catalog"
	"github.com/avulnerador/shop-master/internal/storage"
	"github.com/avulnerador/shop-master/internal/storage/memstore"
)

func newStore(t *testing.T) (*catalog.Store, *memstore.Store) {
	t.Helper()
	kv := memstore.New()
	s := catalog.NewStore(kv, zap.NewNop())
	require.NoError(t, s.Load(context.Background(), catalog.Dataset{}))
	return s, kv
}

func sword() catalog.Item {
	return catalog.Item{
		ID: "sword-1", Name: "Longsword", Price: 15, Currency: "gp",
		Rarity: "Common", Type: "Weapon", System: "Generic",
	}
}

func TestAddItem_AppendsAndPersists(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, sword()))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Longsword", items[0].Name)

	data, found, err := kv.Get(ctx, storage.KeyItems)
	require.NoError(t, err)
	require.True(t, found, "mutation must rewrite the items document")
	assert.Contains(t, string(data), "Longsword")
}

func TestAddItem_RejectsNegativePrice(t *testing.T) {
	s, _ := newStore(t)
	it := sword()
	it.Price = -1
	err := s.AddItem(context.Background(), it)
	require.Error(t, err)
	assert.Empty(t, s.Items(), "no partial mutation on validation failure")
}

func TestUpdateItem_MissingIDIsSilentNoOp(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddItem(ctx, sword()))

	ghost := sword()
	ghost.ID = "missing"
	ghost.Name = "Ghost Blade"
	require.NoError(t, s.UpdateItem(ctx, ghost))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Longsword", items[0].Name)
}

func TestDeleteItem_MissingIDIsSilentNoOp(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddItem(ctx, sword()))
	require.NoError(t, s.DeleteItem(ctx, "missing"))
	assert.Len(t, s.Items(), 1)

	require.NoError(t, s.DeleteItem(ctx, "sword-1"))
	assert.Empty(t, s.Items())
}

func TestItems_ReturnsCopies(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.AddItem(context.Background(), sword()))

	got := s.Items()
	got[0].Name = "Tampered"

	assert.Equal(t, "Longsword", s.Items()[0].Name,
		"mutating a returned slice must not touch the catalog")
}

func TestFindNPC_CopySemantics(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddNPC(ctx, catalog.NPC{ID: "n1", Name: "Borin", Race: "Dwarf"}))

	n, ok := s.FindNPC("n1")
	require.True(t, ok)
	n.Name = "Tampered"

	again, ok := s.FindNPC("n1")
	require.True(t, ok)
	assert.Equal(t, "Borin", again.Name)

	_, ok = s.FindNPC("missing")
	assert.False(t, ok)
}

func TestTaxonomy_AddDeleteTag(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTag(ctx, catalog.ShopTypes, "Blacksmith"))
	require.NoError(t, s.AddTag(ctx, catalog.ShopTypes, "Tavern"))
	assert.Equal(t, []string{"Blacksmith", "Tavern"}, s.Tags(catalog.ShopTypes))

	require.NoError(t, s.DeleteTag(ctx, catalog.ShopTypes, "Blacksmith"))
	assert.Equal(t, []string{"Tavern"}, s.Tags(catalog.ShopTypes))

	// Deleting an absent tag is a no-op, not an error.
	require.NoError(t, s.DeleteTag(ctx, catalog.ShopTypes, "Blacksmith"))
	assert.Equal(t, []string{"Tavern"}, s.Tags(catalog.ShopTypes))
}

func TestDeleteTag_LeavesDanglingItemReferences(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTag(ctx, catalog.ItemTypes, "Weapon"))
	require.NoError(t, s.AddItem(ctx, sword()))

	require.NoError(t, s.DeleteTag(ctx, catalog.ItemTypes, "Weapon"))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Weapon", items[0].Type, "items keep dangling tag references")
}

func TestLoad_FallsBackToSeedWhenAbsent(t *testing.T) {
	kv := memstore.New()
	s := catalog.NewStore(kv, zap.NewNop())
	seed := catalog.Dataset{
		Items:     []catalog.Item{sword()},
		Cities:    []catalog.City{{ID: "c1", Name: "Neverwinter"}},
		ShopTypes: []string{"General", "Blacksmith"},
	}
	require.NoError(t, s.Load(context.Background(), seed))

	assert.Len(t, s.Items(), 1)
	assert.Len(t, s.Cities(), 1)
	assert.Equal(t, []string{"General", "Blacksmith"}, s.Tags(catalog.ShopTypes))
}

func TestLoad_FallsBackToSeedWhenUnparsable(t *testing.T) {
	kv := memstore.New()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, storage.KeyItems, []byte(`{not json`)))

	s := catalog.NewStore(kv, zap.NewNop())
	require.NoError(t, s.Load(ctx, catalog.Dataset{Items: []catalog.Item{sword()}}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "sword-1", items[0].ID)
}

func TestLoad_PrefersPersistedOverSeed(t *testing.T) {
	kv := memstore.New()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, storage.KeyCities, []byte(`[{"id":"c9","name":"Baldur's Gate"}]`)))

	s := catalog.NewStore(kv, zap.NewNop())
	require.NoError(t, s.Load(ctx, catalog.Dataset{Cities: []catalog.City{{ID: "c1", Name: "Seedville"}}}))

	cities := s.Cities()
	require.Len(t, cities, 1)
	assert.Equal(t, "Baldur's Gate", cities[0].Name)
}

func TestSnapshot_IsDetached(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddItem(ctx, sword()))
	require.NoError(t, s.AddTag(ctx, catalog.ItemTypes, "Weapon"))

	snap := s.Snapshot()
	snap.Items[0].Name = "Tampered"
	snap.ItemTypes[0] = "Tampered"

	assert.Equal(t, "Longsword", s.Items()[0].Name)
	assert.Equal(t, []string{"Weapon"}, s.Tags(catalog.ItemTypes))
}
