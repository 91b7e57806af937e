package model

import "time"

// OrganizationRef is the expanded organizer reference attached to an event
// at read time.
type OrganizationRef struct {
	OrganizationID string `json:"organizationId,omitempty"`
	Name           string `json:"name"`
}

// Event represents a catalog event.
//
// EventID is the human-assigned identifier used across the API and by the
// recommendation engine; ID is the internal storage key. Date is a calendar
// day in DD-MM-YYYY wire format. Type and Subtype drive content-based
// matching (case-sensitive, exact).
type Event struct {
	ID              string           `json:"-"`
	EventID         string           `json:"eventId"`
	Title           string           `json:"title"`
	Image           string           `json:"image,omitempty"`
	Summary         string           `json:"summary,omitempty"`
	Description     string           `json:"description,omitempty"`
	Date            EventDate        `json:"date"`
	Time            string           `json:"time,omitempty"`
	OrganizationRef string           `json:"-"`
	Organization    *OrganizationRef `json:"organization,omitempty"`
	Type            string           `json:"type"`
	Subtype         string           `json:"subtype,omitempty"`
	Location        string           `json:"location,omitempty"`
	HostName        string           `json:"name,omitempty"`
	RegisteredUsers []string         `json:"-"`
	CreatedAt       time.Time        `json:"created_at,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at,omitempty"`
}

// HasRegisteredUser reports whether the user record ID is already on the
// event's registration list.
func (e *Event) HasRegisteredUser(userRef string) bool {
	for _, ref := range e.RegisteredUsers {
		if ref == userRef {
			return true
		}
	}
	return false
}

// IsUpcoming reports whether the event falls on the given day or later.
func (e *Event) IsUpcoming(today EventDate) bool {
	return e.Date.OnOrAfter(today)
}
