package shop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/shop"
	"github.com/avulnerador/shop-master/internal/storage"
	"github.com/avulnerador/shop-master/internal/storage/memstore"
)

func newArchive(t *testing.T) (*shop.Archive, *shop.Session, *memstore.Store) {
	t.Helper()
	kv := memstore.New()
	sess := shop.NewSession()
	a := shop.NewArchive(kv, zap.NewNop(), sess)
	require.NoError(t, a.Load(context.Background()))
	return a, sess, kv
}

func TestArchive_SaveTwiceUpdatesInPlace(t *testing.T) {
	a, _, _ := newArchive(t)
	ctx := context.Background()

	first := sampleShop()
	require.NoError(t, a.Save(ctx, first))

	other := sampleShop()
	other.ID = "shop-2"
	other.Location = "Waterdeep"
	require.NoError(t, a.Save(ctx, other))

	renamed := first
	renamed.Name = "Borin's Forge"
	require.NoError(t, a.Save(ctx, renamed))

	all := a.All()
	require.Len(t, all, 2, "saving an existing id must not duplicate")
	assert.Equal(t, "Borin's Forge", all[0].Name, "replacement preserves position")
	assert.Equal(t, "shop-2", all[1].ID)
}

func TestArchive_DeleteClearsCurrentOnlyWhenLoaded(t *testing.T) {
	a, sess, _ := newArchive(t)
	ctx := context.Background()

	first := sampleShop()
	second := sampleShop()
	second.ID = "shop-2"
	require.NoError(t, a.Save(ctx, first))
	require.NoError(t, a.Save(ctx, second))

	_, ok := a.LoadShop("shop-1")
	require.True(t, ok)

	require.NoError(t, a.Delete(ctx, "shop-2"))
	assert.Equal(t, "shop-1", sess.CurrentID(), "deleting another shop leaves current untouched")

	require.NoError(t, a.Delete(ctx, "shop-1"))
	assert.Empty(t, sess.CurrentID(), "deleting the loaded shop clears the current pointer")
}

func TestArchive_DeleteMissingIsNoOp(t *testing.T) {
	a, _, _ := newArchive(t)
	ctx := context.Background()
	require.NoError(t, a.Save(ctx, sampleShop()))
	require.NoError(t, a.Delete(ctx, "missing"))
	assert.Len(t, a.All(), 1)
}

func TestArchive_LoadShopDetachesCurrentFromArchive(t *testing.T) {
	a, sess, _ := newArchive(t)
	ctx := context.Background()
	require.NoError(t, a.Save(ctx, sampleShop()))

	_, ok := a.LoadShop("shop-1")
	require.True(t, ok)

	sess.Rename("Edited After Load")

	all := a.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Borin's Blacksmith", all[0].Name,
		"edits to the current shop must not reach the archived copy until saved")
}

func TestArchive_GroupByLocation(t *testing.T) {
	a, _, _ := newArchive(t)
	ctx := context.Background()

	city := sampleShop()
	city.Location = "Neverwinter"
	nowhere := sampleShop()
	nowhere.ID = "shop-2"
	nowhere.Location = ""
	require.NoError(t, a.Save(ctx, city))
	require.NoError(t, a.Save(ctx, nowhere))

	groups := a.GroupByLocation()
	require.Len(t, groups, 2)
	assert.Len(t, groups["Neverwinter"], 1)
	assert.Len(t, groups[shop.UnknownLocationBucket], 1)
}

func TestArchive_PersistsAndReloads(t *testing.T) {
	kv := memstore.New()
	ctx := context.Background()

	sess := shop.NewSession()
	a := shop.NewArchive(kv, zap.NewNop(), sess)
	require.NoError(t, a.Load(ctx))
	require.NoError(t, a.Save(ctx, sampleShop()))

	data, found, err := kv.Get(ctx, storage.KeyShops)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, string(data), "Borin's Blacksmith")

	reloaded := shop.NewArchive(kv, zap.NewNop(), shop.NewSession())
	require.NoError(t, reloaded.Load(ctx))
	require.Len(t, reloaded.All(), 1)
}
