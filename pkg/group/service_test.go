package group

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnng1/gatherly/internal/errdef"
	"github.com/dnng1/gatherly/pkg/event"
	"github.com/dnng1/gatherly/pkg/model"
	"github.com/dnng1/gatherly/pkg/storage"
)

func newTestServices(t *testing.T) (*Service, *event.Service, storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := event.NewService(logger, event.NewRepository(store))
	groups := NewService(logger, NewRepository(store), events)
	return groups, events, store
}

func TestServiceMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToWelcomeWondersOnly", func(t *testing.T) {
		service, _, _ := newTestServices(t)

		membership := service.Membership(ctx)

		assert.Equal(t, model.Membership{0: true, 1: false, 2: false, 3: false, 4: false, 5: false}, membership)
	})

	t.Run("AbsentIDsCountAsNotJoined", func(t *testing.T) {
		service, _, _ := newTestServices(t)

		assert.True(t, service.IsJoined(ctx, 0))
		assert.False(t, service.IsJoined(ctx, 5))
		assert.False(t, service.IsJoined(ctx, 42))
	})
}

func TestServiceJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("FlagsTheGroupAsJoined", func(t *testing.T) {
		service, _, _ := newTestServices(t)

		require.NoError(t, service.Join(ctx, 2))

		assert.True(t, service.IsJoined(ctx, 2))
	})

	t.Run("JoiningTwiceIsANoOp", func(t *testing.T) {
		service, _, _ := newTestServices(t)

		require.NoError(t, service.Join(ctx, 2))
		require.NoError(t, service.Join(ctx, 2))

		assert.True(t, service.IsJoined(ctx, 2))
	})

	t.Run("RejectsUnknownGroup", func(t *testing.T) {
		service, _, _ := newTestServices(t)

		err := service.Join(ctx, 42)

		assert.True(t, errdef.IsNotFound(err), "should be a not found error")
	})
}

func TestServiceLeave(t *testing.T) {
	ctx := context.Background()

	t.Run("CascadesIntoEventState", func(t *testing.T) {
		service, events, _ := newTestServices(t)
		require.NoError(t, service.Join(ctx, 3))
		for _, id := range []int{18, 19, 20, 7} {
			require.NoError(t, events.Join(ctx, id))
		}
		require.NoError(t, events.Join(ctx, 100))

		require.NoError(t, service.Leave(ctx, "Cooking Ninjas"))

		assert.False(t, service.IsJoined(ctx, 3))
		assert.Equal(t, []int{100}, events.JoinedIDs(ctx), "only ids outside the group survive")
	})

	t.Run("DropsGroupEventsFromTheCollection", func(t *testing.T) {
		service, events, store := newTestServices(t)
		require.NoError(t, store.Set(ctx, "events", `[{"id":18,"event":"Dumpling Night"},{"id":100,"event":"Unrelated"}]`))
		require.NoError(t, events.Join(ctx, 18))

		require.NoError(t, service.Leave(ctx, "Cooking Ninjas"))

		for _, e := range events.All(ctx) {
			assert.NotEqual(t, 18, e.ID)
		}
	})

	t.Run("RejectsUnknownName", func(t *testing.T) {
		service, _, _ := newTestServices(t)

		err := service.Leave(ctx, "Chess Club")

		assert.True(t, errdef.IsNotFound(err), "should be a not found error")
	})

	t.Run("LeavingANonMemberStillClearsItsEvents", func(t *testing.T) {
		service, events, _ := newTestServices(t)
		require.NoError(t, events.Join(ctx, 21))

		require.NoError(t, service.Leave(ctx, "Bridge Between Us"))

		assert.NotContains(t, events.JoinedIDs(ctx), 21)
	})
}

func TestServiceReset(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestServices(t)

	require.NoError(t, service.Join(ctx, 5))
	require.NoError(t, service.Reset(ctx))

	assert.False(t, service.IsJoined(ctx, 5))
	assert.True(t, service.IsJoined(ctx, 0), "default membership returns after reset")
}
