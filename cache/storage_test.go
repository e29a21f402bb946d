package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStorageRoundTrip(t *testing.T) {
	storage, err := NewDirStorage(t.TempDir(), 0)
	require.NoError(t, err)

	require.NoError(t, storage.Set("some_key", []byte(`{"a":1}`)))

	got, ok, err := storage.Get("some_key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(got))

	keys, err := storage.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"some_key"}, keys)

	require.NoError(t, storage.Delete("some_key"))
	_, ok, err = storage.Get("some_key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDirStorageKeysWithSlashes(t *testing.T) {
	// Cache keys embed resource URLs, so they contain slashes.
	storage, err := NewDirStorage(t.TempDir(), 0)
	require.NoError(t, err)

	key := "pokemon_https://pokeapi.co/api/v2/pokemon/25/"
	require.NoError(t, storage.Set(key, []byte("{}")))

	keys, err := storage.Keys()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, key, keys[0])
}

func TestDirStorageQuota(t *testing.T) {
	storage, err := NewDirStorage(t.TempDir(), 100)
	require.NoError(t, err)

	require.NoError(t, storage.Set("a", []byte(strings.Repeat("x", 60))))
	err = storage.Set("b", []byte(strings.Repeat("y", 60)))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// Rewriting an existing key only counts the size delta.
	require.NoError(t, storage.Set("a", []byte(strings.Repeat("z", 90))))
}

func TestDirStorageDeleteMissingKeyIsNoop(t *testing.T) {
	storage, err := NewDirStorage(t.TempDir(), 0)
	require.NoError(t, err)
	assert.NoError(t, storage.Delete("missing"))
}

func TestMemStorageQuota(t *testing.T) {
	storage := NewMemStorage(100)

	require.NoError(t, storage.Set("a", []byte(strings.Repeat("x", 60))))
	err := storage.Set("b", []byte(strings.Repeat("y", 60)))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	require.NoError(t, storage.Set("a", []byte(strings.Repeat("z", 90))))
}
