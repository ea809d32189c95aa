package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avulnerador/shop-master/internal/storage"
	"github.com/avulnerador/shop-master/internal/storage/filestore"
)

func newStore(t *testing.T) *filestore.Store {
	t.Helper()
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err, "creating file store")
	return s
}

func TestStore_GetMissingKey(t *testing.T) {
	s := newStore(t)
	_, found, err := s.Get(context.Background(), storage.KeyItems)
	require.NoError(t, err)
	assert.False(t, found, "missing key must report found=false, not an error")
}

func TestStore_PutThenGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, storage.KeyItems, []byte(`[{"id":"a"}]`)))

	got, found, err := s.Get(ctx, storage.KeyItems)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[{"id":"a"}]`, string(got))
}

func TestStore_PutReplacesWholeDocument(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, storage.KeyCities, []byte(`["old"]`)))
	require.NoError(t, s.Put(ctx, storage.KeyCities, []byte(`["new"]`)))

	got, found, err := s.Get(ctx, storage.KeyCities)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `["new"]`, string(got), "Put must rewrite the document in full")
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, storage.KeyNPCs, []byte(`[]`)))
	require.NoError(t, s.Delete(ctx, storage.KeyNPCs))
	require.NoError(t, s.Delete(ctx, storage.KeyNPCs), "deleting a missing key must be a no-op")

	_, found, err := s.Get(ctx, storage.KeyNPCs)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_LeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := filestore.New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), storage.KeyShops, []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, ".json", filepath.Ext(e.Name()), "only committed documents should remain, got %q", e.Name())
	}
}
