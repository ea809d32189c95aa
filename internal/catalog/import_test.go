package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/avulnerador/shop-master/internal/catalog"
)

func TestImportItems_IncomingWinsOnCollision(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddItem(ctx, sword()))

	upgraded := sword()
	upgraded.Name = "Longsword +1"
	upgraded.Price = 150
	require.NoError(t, s.ImportItems(ctx, []catalog.Item{upgraded}))

	items := s.Items()
	require.Len(t, items, 1, "collision must replace, not duplicate")
	assert.Equal(t, "Longsword +1", items[0].Name)
}

func TestImportItems_PreservesExistingOrderAndAppendsNew(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		it := sword()
		it.ID = fmt.Sprintf("it-%d", i)
		require.NoError(t, s.AddItem(ctx, it))
	}

	incoming := []catalog.Item{
		{ID: "it-1", Name: "Replaced", Price: 1, Type: "Weapon", System: "Generic"},
		{ID: "it-9", Name: "Appended", Price: 1, Type: "Weapon", System: "Generic"},
	}
	require.NoError(t, s.ImportItems(ctx, incoming))

	items := s.Items()
	require.Len(t, items, 4)
	assert.Equal(t, []string{"it-0", "it-1", "it-2", "it-9"},
		[]string{items[0].ID, items[1].ID, items[2].ID, items[3].ID})
	assert.Equal(t, "Replaced", items[1].Name)
}

func TestImportNPCs_MintsIDsForRecordsWithout(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.ImportNPCs(ctx, []catalog.NPC{
		{Name: "Anon One"},
		{Name: "Anon Two"},
	}))

	npcs := s.NPCs()
	require.Len(t, npcs, 2)
	assert.NotEmpty(t, npcs[0].ID)
	assert.NotEmpty(t, npcs[1].ID)
	assert.NotEqual(t, npcs[0].ID, npcs[1].ID, "minted ids must be unique")
}

// TestImportItems_Idempotent verifies that importing the same collection
// twice yields the same result as importing it once.
func TestImportItems_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		idGen := rapid.StringMatching(`[a-z]{1,6}`)
		itemGen := rapid.Custom(func(rt *rapid.T) catalog.Item {
			return catalog.Item{
				ID:     idGen.Draw(rt, "id"),
				Name:   rapid.StringMatching(`[A-Za-z ]{1,12}`).Draw(rt, "name"),
				Price:  float64(rapid.IntRange(0, 500).Draw(rt, "price")),
				Type:   rapid.SampledFrom([]string{"Weapon", "Armor", "Potion"}).Draw(rt, "type"),
				System: "Generic",
			}
		})
		incoming := rapid.SliceOfN(itemGen, 0, 8).Draw(rt, "incoming")

		s1, _ := newStore(t)
		ctx := context.Background()
		require.NoError(rt, s1.ImportItems(ctx, incoming))
		once := s1.Items()

		require.NoError(rt, s1.ImportItems(ctx, incoming))
		twice := s1.Items()

		assert.Equal(rt, once, twice, "import must be idempotent")
	})
}

func TestImportRules_UnionsAndDeduplicates(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddTag(ctx, catalog.ShopTypes, "General"))
	require.NoError(t, s.AddTag(ctx, catalog.ShopTypes, "Blacksmith"))

	require.NoError(t, s.ImportRules(ctx, catalog.Rules{
		ShopTypes: []string{"Blacksmith", "Tavern"},
		Rarities:  []string{"Common", "Rare"},
	}))

	assert.Equal(t, []string{"General", "Blacksmith", "Tavern"}, s.Tags(catalog.ShopTypes),
		"existing tags first, new ones appended, duplicates dropped")
	assert.Equal(t, []string{"Common", "Rare"}, s.Tags(catalog.Rarities))
	assert.Empty(t, s.Tags(catalog.ItemTypes), "absent payload keys leave taxonomies untouched")
}

func TestImportRules_Idempotent(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	rules := catalog.Rules{Systems: []string{"D&D 5e", "Generic"}}

	require.NoError(t, s.ImportRules(ctx, rules))
	once := s.Tags(catalog.Systems)
	require.NoError(t, s.ImportRules(ctx, rules))
	assert.Equal(t, once, s.Tags(catalog.Systems))
}
