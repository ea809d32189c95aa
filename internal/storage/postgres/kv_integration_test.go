package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avulnerador/shop-master/internal/storage"
	"github.com/avulnerador/shop-master/internal/storage/postgres"
	"github.com/avulnerador/shop-master/internal/testutil"
)

func TestKVStore_RoundTrip(t *testing.T) {
	if os.Getenv("SHOPMASTER_INTEGRATION") == "" {
		t.Skip("set SHOPMASTER_INTEGRATION=1 to run container-backed tests")
	}

	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)

	kv := postgres.NewKVStore(pc.Pool)
	ctx := context.Background()

	_, found, err := kv.Get(ctx, storage.KeyItems)
	require.NoError(t, err)
	assert.False(t, found, "missing key must report found=false")

	require.NoError(t, kv.Put(ctx, storage.KeyItems, []byte(`[{"id":"a","price":10}]`)))

	got, found, err := kv.Get(ctx, storage.KeyItems)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[{"id":"a","price":10}]`, string(got))

	// Put must replace the whole document.
	require.NoError(t, kv.Put(ctx, storage.KeyItems, []byte(`[]`)))
	got, found, err = kv.Get(ctx, storage.KeyItems)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[]`, string(got))

	require.NoError(t, kv.Delete(ctx, storage.KeyItems))
	require.NoError(t, kv.Delete(ctx, storage.KeyItems), "delete must be idempotent")

	_, found, err = kv.Get(ctx, storage.KeyItems)
	require.NoError(t, err)
	assert.False(t, found)
}
