package event

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slices"

	"github.com/dnng1/gatherly/internal/errdef"
	"github.com/dnng1/gatherly/pkg/catalog"
	"github.com/dnng1/gatherly/pkg/model"
)

// userCreatedIDThreshold separates timestamp-style ids handed out by the
// creation flow (milliseconds since epoch) from the small fixed catalog ids.
// Only consulted for records persisted before the UserCreated flag existed.
const userCreatedIDThreshold = 1_000_000_000_000

type eventRepository interface {
	loadEvents(ctx context.Context) ([]model.Event, error)
	saveEvents(ctx context.Context, events []model.Event) error
	joinedIDs(ctx context.Context) ([]int, error)
	saveJoinedIDs(ctx context.Context, ids []int) error
	removedIDs(ctx context.Context) ([]int, error)
	saveRemovedIDs(ctx context.Context, ids []int) error
	reset(ctx context.Context) error
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, repository eventRepository) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// Service owns the persisted event state: the event collection, the joined-id
// set, and the removed-id set. Storage faults on read paths are logged and
// masked behind defaults so callers always get something renderable; only
// business errors (validation, unknown ids, non-editable events) and write
// failures surface.
type Service struct {
	logger     *slog.Logger
	repository eventRepository
	validate   *validator.Validate
	now        func() time.Time
}

// Join adds id to the joined set. Joining an already-joined id is a no-op.
func (s *Service) Join(ctx context.Context, id int) error {
	ids := s.JoinedIDs(ctx)
	if slices.Contains(ids, id) {
		return nil
	}
	return s.repository.saveJoinedIDs(ctx, append(ids, id))
}

// Leave removes id from the joined set. Leaving a non-member id is a no-op.
func (s *Service) Leave(ctx context.Context, id int) error {
	ids := s.JoinedIDs(ctx)
	next := slices.DeleteFunc(ids, func(joined int) bool { return joined == id })
	if len(next) == len(ids) {
		return nil
	}
	return s.repository.saveJoinedIDs(ctx, next)
}

// JoinedIDs returns the joined event ids, empty when nothing is stored or the
// store misbehaves.
func (s *Service) JoinedIDs(ctx context.Context) []int {
	ids, err := s.repository.joinedIDs(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "falling back to empty joined set", "error", err)
		return []int{}
	}
	return ids
}

// All returns the stored event collection, seeding it with the default
// catalog on first read. A storage fault falls back to the seed catalog.
func (s *Service) All(ctx context.Context) []model.Event {
	events, err := s.repository.loadEvents(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "falling back to seed events", "error", err)
		return catalog.SeedEvents()
	}
	return events
}

// Upcoming produces the events to render: the union of the seed catalog and
// the stored collection (stored wins a duplicate id), minus removed ids,
// visibility-filtered, search-filtered, and sorted chronologically.
func (s *Service) Upcoming(ctx context.Context, query string) []model.Event {
	stored := s.All(ctx)
	joined := s.JoinedIDs(ctx)
	removed := s.removedIDs(ctx)

	events := visible(merge(stored, catalog.SeedEvents()), joined, removed)
	events = search(events, query)
	sortChronologically(events, s.now())
	return events
}

// Editable decides whether an event may be edited or deleted. User-created
// events always are; seed-catalog and group-catalog events never are; for
// legacy records without the flag, a timestamp-sized id counts as evidence of
// user creation.
func (s *Service) Editable(e model.Event) bool {
	if e.UserCreated {
		return true
	}
	if catalog.IsSeedEventID(e.ID) {
		return false
	}
	if catalog.IsGroupEventID(e.ID) {
		return false
	}
	return e.ID > userCreatedIDThreshold
}

// Input carries the user-supplied fields of the creation and edit flows.
// Dates are "2006-01-02", times 24-hour "15:04".
type Input struct {
	Name        string `validate:"required"`
	Location    string `validate:"required"`
	Description string `validate:"required"`
	Image       string `validate:"omitempty,url"`
	StartDate   string `validate:"required,datetime=2006-01-02"`
	EndDate     string `validate:"required,datetime=2006-01-02"`
	StartTime   string `validate:"required,datetime=15:04"`
	EndTime     string `validate:"required,datetime=15:04"`
	GroupIDs    []int  `validate:"dive,min=0,max=5"`
}

// Create validates input, assigns a timestamp id, prepends the event to the
// stored collection, and joins it on the user's behalf.
func (s *Service) Create(ctx context.Context, input Input) (*model.Event, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	event := s.fromInput(input)
	event.ID = int(s.now().UnixMilli())
	event.UserCreated = true

	events := s.All(ctx)
	if err := s.repository.saveEvents(ctx, append([]model.Event{event}, events...)); err != nil {
		return nil, err
	}
	if err := s.Join(ctx, event.ID); err != nil {
		return nil, err
	}
	return &event, nil
}

// Update replaces the event with the given id in place, preserving the
// collection's length and the position of every other record.
func (s *Service) Update(ctx context.Context, id int, input Input) (*model.Event, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	events := s.All(ctx)
	index := slices.IndexFunc(events, func(e model.Event) bool { return e.ID == id })
	if index < 0 {
		return nil, errdef.NewNotFound("event %d doesn't exist", id)
	}
	if !s.Editable(events[index]) {
		return nil, errdef.NewForbidden("event %d is not editable", id)
	}

	event := s.fromInput(input)
	event.ID = id
	event.UserCreated = events[index].UserCreated || event.ID > userCreatedIDThreshold
	events[index] = event

	if err := s.repository.saveEvents(ctx, events); err != nil {
		return nil, err
	}
	return &event, nil
}

// Remove dismisses an event from the upcoming view. Seed-catalog events are
// not stored records, so they go on the removed-id exclusion list instead of
// being deleted; anything else is deleted outright. Either way the event is
// left.
func (s *Service) Remove(ctx context.Context, id int) error {
	if catalog.IsSeedEventID(id) {
		removed := s.removedIDs(ctx)
		if !slices.Contains(removed, id) {
			if err := s.repository.saveRemovedIDs(ctx, append(removed, id)); err != nil {
				return err
			}
		}
		return s.Leave(ctx, id)
	}

	events := s.All(ctx)
	index := slices.IndexFunc(events, func(e model.Event) bool { return e.ID == id })
	if index < 0 {
		return errdef.NewNotFound("event %d doesn't exist", id)
	}
	if !s.Editable(events[index]) {
		return errdef.NewForbidden("event %d is not removable", id)
	}
	if err := s.repository.saveEvents(ctx, slices.Delete(events, index, index+1)); err != nil {
		return err
	}
	return s.Leave(ctx, id)
}

// Discard drops the given ids from both the joined set and the stored
// collection. Used by the leave-group cascade; unknown ids are ignored.
func (s *Service) Discard(ctx context.Context, ids []int) error {
	joined := s.JoinedIDs(ctx)
	next := slices.DeleteFunc(joined, func(id int) bool { return slices.Contains(ids, id) })
	if err := s.repository.saveJoinedIDs(ctx, next); err != nil {
		return err
	}

	events := s.All(ctx)
	remaining := slices.DeleteFunc(events, func(e model.Event) bool { return slices.Contains(ids, e.ID) })
	return s.repository.saveEvents(ctx, remaining)
}

// Reset drops all event state, restoring the first-run behavior.
func (s *Service) Reset(ctx context.Context) error {
	return s.repository.reset(ctx)
}

func (s *Service) removedIDs(ctx context.Context) []int {
	ids, err := s.repository.removedIDs(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "falling back to empty removed set", "error", err)
		return []int{}
	}
	return ids
}

func (s *Service) validateInput(input Input) error {
	if err := s.validate.Struct(input); err != nil {
		return errdef.NewBadRequest("invalid event: %v", err)
	}
	start, err := time.Parse("2006-01-02 15:04", input.StartDate+" "+input.StartTime)
	if err != nil {
		return errdef.NewBadRequest("invalid start: %v", err)
	}
	end, err := time.Parse("2006-01-02 15:04", input.EndDate+" "+input.EndTime)
	if err != nil {
		return errdef.NewBadRequest("invalid end: %v", err)
	}
	if start.After(end) {
		return errdef.NewBadRequest("event starts after it ends")
	}
	return nil
}

// fromInput builds the persisted record, resolving group ids to the derived
// display string and filling the legacy free-text fields from the structured
// ones, the way the creation flow always has.
func (s *Service) fromInput(input Input) model.Event {
	event := model.Event{
		Name:        input.Name,
		Image:       input.Image,
		Location:    input.Location,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		GroupIDs:    input.GroupIDs,
	}

	names := make([]string, 0, len(input.GroupIDs))
	for _, id := range input.GroupIDs {
		if name := catalog.GroupName(id); name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		event.GroupNames = strings.Join(names, ", ")
	} else {
		event.GroupNames = "No groups selected"
	}

	event.Date = event.DateRange()
	event.Time = event.TimeRange()
	return event
}
