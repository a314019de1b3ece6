package model

// Group is one entry of the fixed group catalog shipped with the app.
type Group struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Cadence     string `json:"cadence"`
	// EventIDs is the group's fixed set of associated event ids. Leaving the
	// group removes these from the joined set and the event collection.
	EventIDs []int `json:"eventIds"`
}

// Membership maps a group id to its joined flag; absent ids count as not
// joined. It marshals to a JSON object with string keys, matching the stored
// "joinedGroups" blob.
type Membership map[int]bool

func (m Membership) Joined(groupID int) bool {
	return m[groupID]
}
