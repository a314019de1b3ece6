package group

import (
	"context"
	"log/slog"

	"github.com/dnng1/gatherly/internal/errdef"
	"github.com/dnng1/gatherly/pkg/catalog"
	"github.com/dnng1/gatherly/pkg/model"
)

type groupRepository interface {
	loadMembership(ctx context.Context) (model.Membership, error)
	saveMembership(ctx context.Context, membership model.Membership) error
	reset(ctx context.Context) error
}

type eventService interface {
	Discard(ctx context.Context, ids []int) error
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, repository groupRepository, events eventService) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		events:     events,
	}
}

// Service decides which of the fixed group catalog the user belongs to and
// cascades membership changes into the event state.
type Service struct {
	logger     *slog.Logger
	repository groupRepository
	events     eventService
}

// Membership returns the joined map, defaulting on an empty or faulty store.
func (s *Service) Membership(ctx context.Context) model.Membership {
	membership, err := s.repository.loadMembership(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "falling back to default membership", "error", err)
		return catalog.DefaultMembership()
	}
	return membership
}

// IsJoined reports whether the user is in the given group; absent ids count
// as not joined.
func (s *Service) IsJoined(ctx context.Context, groupID int) bool {
	return s.Membership(ctx).Joined(groupID)
}

// Join flags the group as joined.
func (s *Service) Join(ctx context.Context, groupID int) error {
	if _, ok := catalog.GroupByID(groupID); !ok {
		return errdef.NewNotFound("group %d doesn't exist", groupID)
	}

	membership := s.Membership(ctx)
	if membership.Joined(groupID) {
		return nil
	}
	membership[groupID] = true
	return s.repository.saveMembership(ctx, membership)
}

// Leave resolves the group name, clears its joined flag, and removes the
// group's fixed event-id set from both the joined set and the stored event
// collection.
func (s *Service) Leave(ctx context.Context, name string) error {
	group, ok := catalog.GroupByName(name)
	if !ok {
		return errdef.NewNotFound("group %q doesn't exist", name)
	}

	membership := s.Membership(ctx)
	membership[group.ID] = false
	if err := s.repository.saveMembership(ctx, membership); err != nil {
		return err
	}

	return s.events.Discard(ctx, group.EventIDs)
}

// Reset drops the stored membership, restoring the first-run default on the
// next read.
func (s *Service) Reset(ctx context.Context) error {
	return s.repository.reset(ctx)
}
