package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	runStoreContract(t, store)
}

func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "events")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "events", `[{"id":1}]`))

	value, err := store.Get(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, value)

	require.NoError(t, store.Set(ctx, "events", `[]`))
	value, err = store.Get(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)

	require.NoError(t, store.Delete(ctx, "events"))
	_, err = store.Get(ctx, "events")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting an absent key is a no-op
	require.NoError(t, store.Delete(ctx, "events"))
}

func TestFileStoreLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFile(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "joinedGroups", `{"0":true}`))
	require.NoError(t, store.Set(ctx, "joinedGroups", `{"0":false}`))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "joinedGroups.json", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, "joinedGroups.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"0":false}`, string(data))
}
