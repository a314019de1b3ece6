package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/dnng1/gatherly/pkg/model"
)

const icsProductID = "-//gatherly//event store//EN"

// WriteICS serializes the given events as an iCalendar feed. Events without a
// parseable start render as all-day entries on the zero date rather than being
// dropped, matching how the chronological sort treats them.
func WriteICS(w io.Writer, calendarName string, events []model.Event, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(calendarName)

	for _, e := range events {
		ve := cal.AddEvent(fmt.Sprintf("event-%d@gatherly", e.ID))
		ve.SetDtStampTime(now.UTC())
		ve.SetSummary(e.Name)
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}

		start, end, allDay := span(e, now)
		if allDay {
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(end.AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(start)
			ve.SetEndAt(end)
		}
	}

	return cal.SerializeTo(w)
}

// span derives the concrete start and end instants of an event. Records with
// only legacy free-text fields still get a start via the loose parsers; when
// no clock can be read at all the event is treated as all-day.
func span(e model.Event, now time.Time) (start, end time.Time, allDay bool) {
	start = e.SortKey(now)

	endDay := start.Truncate(24 * time.Hour)
	if e.EndDate != "" {
		if d, err := time.Parse("2006-01-02", e.EndDate); err == nil {
			endDay = d
		}
	}

	if e.StartTime == "" && e.EndTime == "" && start.Equal(start.Truncate(24*time.Hour)) {
		return start, endDay, true
	}

	end = endDay
	if e.EndTime != "" {
		if t, err := time.Parse("15:04", e.EndTime); err == nil {
			end = endDay.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		}
	}
	if !end.After(start) {
		end = start.Add(time.Hour)
	}

	return start, end, false
}
