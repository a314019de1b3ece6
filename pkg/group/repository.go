package group

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

const joinedGroupsKey = "joinedGroups"

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(store storage.Store) *repository {
	return &repository{store: store}
}

type repository struct {
	store storage.Store
}

// loadMembership returns the stored membership map. On first read the default
// (Welcome Wonders only) is written through and returned.
func (r repository) loadMembership(ctx context.Context) (model.Membership, error) {
	ctx = log.WithCollection(ctx, joinedGroupsKey)

	value, err := r.store.Get(ctx, joinedGroupsKey)
	if errors.Is(err, storage.ErrNotFound) {
		membership := catalog.DefaultMembership()
		if err := r.saveMembership(ctx, membership); err != nil {
			return nil, err
		}
		return membership, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load membership: %v", err)
	}

	var membership model.Membership
	if err := json.Unmarshal([]byte(value), &membership); err != nil {
		return nil, fmt.Errorf("failed to decode membership: %v", err)
	}
	return membership, nil
}

// saveMembership overwrites the stored map wholesale. There is no partial
// update; callers read-modify-write.
func (r repository) saveMembership(ctx context.Context, membership model.Membership) error {
	ctx = log.WithCollection(ctx, joinedGroupsKey)

	data, err := json.Marshal(membership)
	if err != nil {
		return fmt.Errorf("failed to encode membership: %v", err)
	}
	return r.store.Set(ctx, joinedGroupsKey, string(data))
}

func (r repository) reset(ctx context.Context) error {
	return r.store.Delete(log.WithCollection(ctx, joinedGroupsKey), joinedGroupsKey)
}
