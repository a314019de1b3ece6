package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Event is a calendar event as persisted in the device-local store. Seed
// events ship with the app and live in code until the first load copies them
// through to storage; user-created events are appended by the creation flow.
//
// The structured StartDate/EndDate ("2006-01-02") and StartTime/EndTime
// ("15:04") fields were added later; older records only carry the free-text
// Date ("December 1st") and Time ("2:00 pm - 8:00 pm") fields, so every
// consumer has to cope with either shape.
type Event struct {
	ID          int    `json:"id"`
	Name        string `json:"event"`
	Image       string `json:"image"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	GroupIDs    []int  `json:"groups,omitempty"`
	GroupNames  string `json:"group,omitempty"`
	UserCreated bool   `json:"isUserCreated,omitempty"`
}

// DateRange returns the display form of the event's dates: a single formatted
// date when start and end are equal, "Start - End" otherwise. Records without
// structured dates fall back to the legacy free-text Date field.
func (e Event) DateRange() string {
	if e.StartDate == "" || e.EndDate == "" {
		return e.Date
	}
	start := formatDate(e.StartDate)
	end := formatDate(e.EndDate)
	if start == end {
		return start
	}
	return start + " - " + end
}

// TimeRange returns the display form of the event's times, always rendered on
// a 12-hour clock with AM/PM, collapsing equal endpoints like DateRange.
func (e Event) TimeRange() string {
	if e.StartTime == "" || e.EndTime == "" {
		return e.Time
	}
	start := formatClock(e.StartTime)
	end := formatClock(e.EndTime)
	if start == end {
		return start
	}
	return start + " - " + end
}

// SortKey derives the chronological ordering key: the event's start date plus
// its start minute of day. Unparseable dates or times contribute zero, so
// malformed events sort to the front rather than failing.
func (e Event) SortKey(now time.Time) time.Time {
	return e.startDay(now).Add(time.Duration(e.startMinute()) * time.Minute)
}

func (e Event) startDay(now time.Time) time.Time {
	if e.StartDate != "" {
		if d, err := time.Parse("2006-01-02", e.StartDate); err == nil {
			return d
		}
	}
	if d, ok := parseLooseDate(e.Date, now); ok {
		return d
	}
	return time.Time{}
}

func (e Event) startMinute() int {
	if e.StartTime != "" {
		if m, ok := parseClock24(e.StartTime); ok {
			return m
		}
	}
	if m, ok := parseClock12(e.Time); ok {
		return m
	}
	return 0
}

func formatDate(iso string) string {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return d.Format("January 2, 2006")
}

// formatClock turns a 24-hour "15:04" value into "3:04 PM".
func formatClock(clock string) string {
	minute, ok := parseClock24(clock)
	if !ok {
		return clock
	}
	h := minute / 60
	m := minute % 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, suffix)
}

// parseClock24 parses "15:04" into minutes since midnight.
func parseClock24(clock string) (int, bool) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok {
		return 0, false
	}
	h, err1 := strconv.Atoi(hh)
	m, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// parseClock12 parses the leading "H:MM am/pm" out of a legacy time value,
// tolerating trailing range text such as "4:00 pm - 8:00 pm".
func parseClock12(value string) (int, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(value)))
	if len(fields) < 2 {
		return 0, false
	}
	hh, mm, ok := strings.Cut(fields[0], ":")
	if !ok {
		return 0, false
	}
	h, err1 := strconv.Atoi(hh)
	m, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil || h < 1 || h > 12 || m < 0 || m > 59 {
		return 0, false
	}
	switch fields[1] {
	case "pm":
		if h != 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	default:
		return 0, false
	}
	return h*60 + m, true
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// parseLooseDate parses the legacy "Month Day" forms the app produced over
// time: "December 1st", "Dec 1", "Nov 28". The current year is assumed, and
// "Today" resolves to now's date.
func parseLooseDate(value string, now time.Time) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "today") {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return time.Time{}, false
	}
	month, ok := months[strings.ToLower(fields[0])]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(trimOrdinal(fields[1]))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC), true
}

func trimOrdinal(day string) string {
	day = strings.TrimSuffix(day, ",")
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if trimmed, ok := strings.CutSuffix(day, suffix); ok {
			return trimmed
		}
	}
	return day
}
