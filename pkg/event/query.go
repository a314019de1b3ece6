package event

import (
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/dnng1/gatherly/pkg/catalog"
	"github.com/dnng1/gatherly/pkg/model"
)

// merge unions the stored collection with the seed catalog, deduplicating by
// id. Stored records win a duplicate id: a seed event the user has edited
// shadows the built-in copy.
func merge(stored, seed []model.Event) []model.Event {
	out := make([]model.Event, 0, len(stored)+len(seed))
	seen := make(map[int]struct{}, len(stored)+len(seed))
	for _, e := range stored {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	for _, e := range seed {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// visible keeps events the user should see: seed-catalog events are always
// shown, anything else only if joined. Removed ids are dropped regardless of
// joined membership.
func visible(events []model.Event, joined, removed []int) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if slices.Contains(removed, e.ID) {
			continue
		}
		if !catalog.IsSeedEventID(e.ID) && !slices.Contains(joined, e.ID) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// search keeps events whose name, location, formatted date range, or
// formatted time range contains the query, case-insensitively. A blank query
// keeps everything.
func search(events []model.Event, query string) []model.Event {
	query = strings.TrimSpace(query)
	if query == "" {
		return events
	}
	query = strings.ToUpper(query)

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if matches(e, query) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e model.Event, upperQuery string) bool {
	for _, field := range []string{e.Name, e.Location, e.DateRange(), e.TimeRange()} {
		if strings.Contains(strings.ToUpper(field), upperQuery) {
			return true
		}
	}
	return false
}

// sortChronologically orders events ascending by (start date, start minute).
// Events with unparseable dates or times keep a zero key and therefore sort
// to the front; ties keep their incoming order.
func sortChronologically(events []model.Event, now time.Time) {
	slices.SortStableFunc(events, func(a, b model.Event) int {
		return a.SortKey(now).Compare(b.SortKey(now))
	})
}
