package group

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnng1/gatherly/pkg/catalog"
	"github.com/dnng1/gatherly/pkg/storage"
)

func TestRepositorySeedsDefaultMembership(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	repo := NewRepository(store)

	membership, err := repo.loadMembership(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultMembership(), membership)

	// Map keys are serialized as JSON object string keys.
	value, err := store.Get(ctx, joinedGroupsKey)
	require.NoError(t, err)
	assert.Contains(t, value, `"0":true`)
}

func TestRepositoryRoundTripsMembership(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemory())

	want := catalog.DefaultMembership()
	want[3] = true
	require.NoError(t, repo.saveMembership(ctx, want))

	got, err := repo.loadMembership(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
