package project

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "shelfpack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreGetSet(t *testing.T) {
	store := openTestDB(t)

	_, found, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set("k", "v1"))
	require.NoError(t, store.Set("k", "v2"))

	v, found, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", v)

	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestSQLiteStoreHoldsState(t *testing.T) {
	store := openTestDB(t)
	want := sampleState()

	require.NoError(t, SaveState(store, want))
	got, ok, err := LoadState(store)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
