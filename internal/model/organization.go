package model

import "time"

// Organization represents an event organizer.
// OrganizationID is the human-assigned identifier; ID is the storage key.
type Organization struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Name           string    `json:"name"`
	Image          string    `json:"image,omitempty"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Type           string    `json:"type"`
	Subtype        string    `json:"subtype,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
