package localstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "alsham.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_GetChaveInexistente(t *testing.T) {
	store := newTestStore(t)

	entry, err := store.Get(t.Context(), "nada")

	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestStore_SetGetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	storedAt := time.Date(2025, 3, 10, 12, 0, 0, 123, time.UTC)

	require.NoError(t, store.Set(ctx, "k", []byte(`[1,2]`), storedAt))

	entry, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []byte(`[1,2]`), entry.Value)
	assert.True(t, storedAt.Equal(entry.StoredAt))

	require.NoError(t, store.Set(ctx, "k", []byte(`[3]`), storedAt.Add(time.Minute)))
	entry, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[3]`), entry.Value)
	assert.True(t, storedAt.Add(time.Minute).Equal(entry.StoredAt))

	require.NoError(t, store.Delete(ctx, "k"))
	entry, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestStore_PersisteEntreAberturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alsham.db")
	ctx := t.Context()

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", []byte("v"), time.Now()))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	entry, err := second.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "v", string(entry.Value))
	assert.Equal(t, path, second.Path())
}
