package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avulnerador/shop-master/internal/seed"
)

func TestDataset_ParsesEmbeddedContent(t *testing.T) {
	ds, err := seed.Dataset()
	require.NoError(t, err)

	assert.NotEmpty(t, ds.Items)
	assert.NotEmpty(t, ds.NPCs)
	require.Len(t, ds.Cities, 2)
	assert.Equal(t, "Neverwinter", ds.Cities[0].Name)
	assert.Equal(t, "Waterdeep", ds.Cities[1].Name)
}

func TestDataset_ItemsAreValid(t *testing.T) {
	ds, err := seed.Dataset()
	require.NoError(t, err)

	for _, item := range ds.Items {
		assert.NoError(t, item.Validate(), "seed item %s", item.ID)
	}
}

func TestDataset_TaxonomiesCoverSeedContent(t *testing.T) {
	ds, err := seed.Dataset()
	require.NoError(t, err)

	assert.Contains(t, ds.ShopTypes, "General")
	assert.Contains(t, ds.Systems, "Generic")

	types := map[string]bool{}
	for _, tag := range ds.ItemTypes {
		types[tag] = true
	}
	for _, item := range ds.Items {
		assert.True(t, types[item.Type],
			"seed item %s uses an undeclared type %q", item.ID, item.Type)
	}
}

func TestDataset_SystemTagsMatchTaxonomy(t *testing.T) {
	ds, err := seed.Dataset()
	require.NoError(t, err)

	systems := map[string]bool{}
	for _, tag := range ds.Systems {
		systems[tag] = true
	}
	for _, item := range ds.Items {
		assert.True(t, systems[item.System],
			"seed item %s uses an undeclared system %q", item.ID, item.System)
	}
}
