package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnng1/gatherly/pkg/catalog"
	"github.com/dnng1/gatherly/pkg/storage"
)

func TestRepositorySeedsEventsOnFirstLoad(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	repo := NewRepository(store)

	events, err := repo.loadEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.SeedEvents(), events)

	// The seed was written through, so storage now holds the blob.
	value, err := store.Get(ctx, eventsKey)
	require.NoError(t, err)
	assert.Contains(t, value, "Musical Boat Party")
}

func TestRepositoryIDSetsDefaultToEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemory())

	joined, err := repo.joinedIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, joined)

	removed, err := repo.removedIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestRepositoryDedupesIDsOnWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemory())

	require.NoError(t, repo.saveJoinedIDs(ctx, []int{8, 8, 9, 8}))

	ids, err := repo.joinedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 9}, ids)
}

func TestRepositoryResetDropsAllThreeCollections(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	repo := NewRepository(store)

	_, err := repo.loadEvents(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.saveJoinedIDs(ctx, []int{8}))
	require.NoError(t, repo.saveRemovedIDs(ctx, []int{1}))

	require.NoError(t, repo.reset(ctx))

	for _, key := range []string{eventsKey, joinedEventIDsKey, removedEventIDsKey} {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	}
}

func TestRepositoryRejectsCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	repo := NewRepository(store)

	require.NoError(t, store.Set(ctx, eventsKey, "{not json"))

	_, err := repo.loadEvents(ctx)
	assert.ErrorContains(t, err, "failed to decode events")
}
