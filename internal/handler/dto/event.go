package dto

import (
	"github.com/campushub/campushub/internal/model"
)

// CreateEventRequest represents the request body for creating an event.
// Date uses DD-MM-YYYY format.
type CreateEventRequest struct {
	EventID        string `json:"eventId"`
	Title          string `json:"title"`
	Image          string `json:"image,omitempty"`
	Summary        string `json:"summary,omitempty"`
	Description    string `json:"description,omitempty"`
	Date           string `json:"date"`
	Time           string `json:"time,omitempty"`
	OrganizationID string `json:"organizationId"`
	Type           string `json:"type"`
	Subtype        string `json:"subtype,omitempty"`
	Location       string `json:"location,omitempty"`
	HostName       string `json:"name,omitempty"`
}

// UpdateEventRequest represents a partial event update.
// Omitted fields keep their current value.
type UpdateEventRequest struct {
	Title          string `json:"title,omitempty"`
	Image          string `json:"image,omitempty"`
	Summary        string `json:"summary,omitempty"`
	Description    string `json:"description,omitempty"`
	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	Type           string `json:"type,omitempty"`
	Subtype        string `json:"subtype,omitempty"`
	Location       string `json:"location,omitempty"`
	HostName       string `json:"name,omitempty"`
}

// EventListResponse wraps the event catalog.
type EventListResponse struct {
	Data []*model.Event `json:"data"`
}

// RecommendationsResponse mirrors the recommendation engine result on the
// wire: three lists keyed contentBased, mlBased, and combined, plus an
// optional message when the user has no registration history.
type RecommendationsResponse struct {
	ContentBased []*model.Event `json:"contentBased"`
	ModelBased   []*model.Event `json:"mlBased"`
	Combined     []*model.Event `json:"combined"`
	Message      string         `json:"message,omitempty"`
}
