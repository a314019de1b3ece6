// Package catalog holds the fixed group and seed-event tables shipped with
// the app. Group ids, event ids, and their associations are code constants,
// not derived data; everything else in the system references them through the
// accessors here.
package catalog

import (
	"github.com/dnng1/gatherly/pkg/model"
)

var groups = []model.Group{
	{
		ID:          0,
		Name:        "Welcome Wonders",
		Description: "Learn about essential resources, policies, and connect with new members",
		Category:    "Start Here",
		Cadence:     "Meets biweekly",
		EventIDs:    []int{26, 27, 28},
	},
	{
		ID:          1,
		Name:        "International Student Association",
		Description: "Support group for international college students looking for mentorship and guidance",
		Category:    "Support Systems",
		Cadence:     "Flexible meeting",
		EventIDs:    []int{12, 13, 14, 15, 16, 17},
	},
	{
		ID:          2,
		Name:        "Musical Wonders",
		Description: "Group of artists with passion for creating music, merging music from their hometowns",
		Category:    "Hobbies & Culture",
		Cadence:     "Meets monthly",
		EventIDs:    []int{8, 9, 10},
	},
	{
		ID:          3,
		Name:        "Cooking Ninjas",
		Description: "Chatting, cooking, and laughing. Share and learn about various cultures through food",
		Category:    "Hobbies & Culture",
		Cadence:     "Meets biweekly",
		EventIDs:    []int{18, 19, 20, 7},
	},
	{
		ID:          4,
		Name:        "Bridge Between Us",
		Description: "Connect with other migrants to learn from each other's moving process and figure logistics out together",
		Category:    "Support Systems",
		Cadence:     "Meets weekly",
		EventIDs:    []int{21, 22},
	},
	{
		ID:          5,
		Name:        "Town Travellers",
		Description: "Visit must-see places in your local city with other newcomers",
		Category:    "Travel & Adventure",
		Cadence:     "Meets monthly",
		EventIDs:    []int{23, 24, 25},
	},
}

// seedEvents is the default event catalog copied through to storage on first
// load. Ids 1-3 are reserved for it.
var seedEvents = []model.Event{
	{
		ID:          1,
		Name:        "Musical Boat Party",
		Image:       "https://m.media-amazon.com/images/I/81s4Yq0JJWL._AC_UF350,350_QL80_.jpg",
		Date:        "December 12th",
		StartTime:   "14:00",
		EndTime:     "19:00",
		Location:    "1234 Sesame St. ",
		GroupNames:  "Welcome Wonders",
		Description: "Boat Party with music, food, games, and fun!",
	},
	{
		ID:          2,
		Name:        "Cornhole Toss",
		Image:       "https://www.cornholeworldwide.com/wp-content/uploads/2020/07/shutterstock_717048238.jpg",
		Date:        "December 15th",
		StartTime:   "09:00",
		EndTime:     "12:00",
		Location:    "456 Boat Port ",
		GroupNames:  "Welcome Wonders",
		Description: "Grab a friend and toss some bags into the cornhole!",
	},
	{
		ID:          3,
		Name:        "Friendsgiving Party",
		Image:       "https://www.mashed.com/img/gallery/52-thanksgiving-dishes-to-make-you-the-star-of-friendsgiving/intro-1637165015.jpg",
		Date:        "December 10th",
		StartTime:   "16:00",
		EndTime:     "18:00",
		Location:    "1234 ABC St. ",
		GroupNames:  "Welcome Wonders",
		Description: "This is a party with food and games.",
	},
}

// Groups returns the fixed group catalog in id order.
func Groups() []model.Group {
	out := make([]model.Group, len(groups))
	copy(out, groups)
	return out
}

// GroupByID looks a group up by its numeric id.
func GroupByID(id int) (model.Group, bool) {
	for _, g := range groups {
		if g.ID == id {
			return g, true
		}
	}
	return model.Group{}, false
}

// GroupByName resolves a group display name to its catalog entry.
func GroupByName(name string) (model.Group, bool) {
	for _, g := range groups {
		if g.Name == name {
			return g, true
		}
	}
	return model.Group{}, false
}

// GroupName returns the display name for a group id, or "" if unknown.
func GroupName(id int) string {
	g, ok := GroupByID(id)
	if !ok {
		return ""
	}
	return g.Name
}

// GroupEventIDs returns the fixed event-id set associated with a group.
func GroupEventIDs(id int) []int {
	g, ok := GroupByID(id)
	if !ok {
		return nil
	}
	out := make([]int, len(g.EventIDs))
	copy(out, g.EventIDs)
	return out
}

// IsGroupEventID reports whether id belongs to any group's fixed event set.
func IsGroupEventID(id int) bool {
	for _, g := range groups {
		for _, eventID := range g.EventIDs {
			if eventID == id {
				return true
			}
		}
	}
	return false
}

// SeedEvents returns a copy of the default event catalog.
func SeedEvents() []model.Event {
	out := make([]model.Event, len(seedEvents))
	copy(out, seedEvents)
	return out
}

// IsSeedEventID reports whether id belongs to the default event catalog.
func IsSeedEventID(id int) bool {
	for _, e := range seedEvents {
		if e.ID == id {
			return true
		}
	}
	return false
}

// DefaultMembership is the first-run membership map: everyone starts in
// Welcome Wonders and nothing else.
func DefaultMembership() model.Membership {
	return model.Membership{0: true, 1: false, 2: false, 3: false, 4: false, 5: false}
}
