package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/settings"
	"github.com/avulnerador/shop-master/internal/storage"
	"github.com/avulnerador/shop-master/internal/storage/memstore"
)

func strPtr(s string) *string { return &s }

func TestStore_Defaults(t *testing.T) {
	s := settings.NewStore(memstore.New(), zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	got := s.Current()
	assert.Equal(t, settings.DefaultLanguage, got.Language)
	assert.Equal(t, settings.DefaultPrimaryColor, got.PrimaryColor)
	assert.Equal(t, settings.DefaultSecondaryColor, got.SecondaryColor)
}

func TestStore_UpdatePatchesAndPersists(t *testing.T) {
	kv := memstore.New()
	s := settings.NewStore(kv, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	got, err := s.Update(ctx, settings.Patch{Language: strPtr("en")})
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, settings.DefaultPrimaryColor, got.PrimaryColor, "unpatched fields keep their value")

	data, found, err := kv.Get(ctx, storage.KeyAppSettings)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, string(data), `"language":"en"`)
}

func TestStore_UpdateRejectsInvalidLanguage(t *testing.T) {
	s := settings.NewStore(memstore.New(), zap.NewNop())
	ctx := context.Background()

	_, err := s.Update(ctx, settings.Patch{Language: strPtr("de")})
	require.Error(t, err)
	assert.Equal(t, settings.DefaultLanguage, s.Current().Language, "rejected patch leaves state untouched")
}

func TestStore_UpdateRejectsMalformedColor(t *testing.T) {
	s := settings.NewStore(memstore.New(), zap.NewNop())
	_, err := s.Update(context.Background(), settings.Patch{PrimaryColor: strPtr("blue")})
	assert.Error(t, err)

	_, err = s.Update(context.Background(), settings.Patch{PrimaryColor: strPtr("#ff00")})
	assert.Error(t, err)

	_, err = s.Update(context.Background(), settings.Patch{PrimaryColor: strPtr("#FF8800")})
	assert.NoError(t, err)
}

func TestStore_LoadPrefersPersisted(t *testing.T) {
	kv := memstore.New()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, storage.KeyAppSettings,
		[]byte(`{"language":"es","primaryColor":"#112233","secondaryColor":"#445566"}`)))

	s := settings.NewStore(kv, zap.NewNop())
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, "es", s.Current().Language)
}

func TestStore_LoadKeepsDefaultsOnGarbage(t *testing.T) {
	kv := memstore.New()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, storage.KeyAppSettings, []byte(`not json`)))

	s := settings.NewStore(kv, zap.NewNop())
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, settings.DefaultLanguage, s.Current().Language)
}
