package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dnng1/gatherly/internal/log"
	"github.com/dnng1/gatherly/pkg/catalog"
	"github.com/dnng1/gatherly/pkg/model"
	"github.com/dnng1/gatherly/pkg/storage"
)

// Storage keys. Each holds one JSON blob; every operation is a full
// read-modify-write of the blob it touches.
const (
	eventsKey          = "events"
	joinedEventIDsKey  = "joinedEventIds"
	removedEventIDsKey = "removedEventIds"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(store storage.Store) *repository {
	return &repository{store: store}
}

type repository struct {
	store storage.Store
}

// loadEvents returns the stored event collection. On first read the seed
// catalog is written through and returned.
func (r repository) loadEvents(ctx context.Context) ([]model.Event, error) {
	ctx = log.WithCollection(ctx, eventsKey)

	value, err := r.store.Get(ctx, eventsKey)
	if errors.Is(err, storage.ErrNotFound) {
		seed := catalog.SeedEvents()
		if err := r.saveEvents(ctx, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %v", err)
	}

	var events []model.Event
	if err := json.Unmarshal([]byte(value), &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %v", err)
	}
	return events, nil
}

func (r repository) saveEvents(ctx context.Context, events []model.Event) error {
	ctx = log.WithCollection(ctx, eventsKey)

	if events == nil {
		events = []model.Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %v", err)
	}
	return r.store.Set(ctx, eventsKey, string(data))
}

func (r repository) joinedIDs(ctx context.Context) ([]int, error) {
	return r.loadIDs(ctx, joinedEventIDsKey)
}

// saveJoinedIDs overwrites the joined set, deduplicating on write.
func (r repository) saveJoinedIDs(ctx context.Context, ids []int) error {
	return r.saveIDs(ctx, joinedEventIDsKey, dedupe(ids))
}

func (r repository) removedIDs(ctx context.Context) ([]int, error) {
	return r.loadIDs(ctx, removedEventIDsKey)
}

func (r repository) saveRemovedIDs(ctx context.Context, ids []int) error {
	return r.saveIDs(ctx, removedEventIDsKey, dedupe(ids))
}

// reset drops all three collections, restoring the first-run state.
func (r repository) reset(ctx context.Context) error {
	for _, key := range []string{eventsKey, joinedEventIDsKey, removedEventIDsKey} {
		if err := r.store.Delete(log.WithCollection(ctx, key), key); err != nil {
			return fmt.Errorf("failed to delete %s: %v", key, err)
		}
	}
	return nil
}

func (r repository) loadIDs(ctx context.Context, key string) ([]int, error) {
	ctx = log.WithCollection(ctx, key)

	value, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %v", key, err)
	}

	var ids []int
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", key, err)
	}
	return ids, nil
}

func (r repository) saveIDs(ctx context.Context, key string, ids []int) error {
	ctx = log.WithCollection(ctx, key)

	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %v", key, err)
	}
	return r.store.Set(ctx, key, string(data))
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
