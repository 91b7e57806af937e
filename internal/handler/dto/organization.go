package dto

import (
	"github.com/campushub/campushub/internal/model"
)

// CreateOrganizationRequest represents the request body for creating an
// organization.
type CreateOrganizationRequest struct {
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	Image          string `json:"image,omitempty"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	Type           string `json:"type"`
	Subtype        string `json:"subtype,omitempty"`
}

// UpdateOrganizationRequest represents a partial organization update.
// Omitted fields keep their current value.
type UpdateOrganizationRequest struct {
	Name        string `json:"name,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Type        string `json:"type,omitempty"`
	Subtype     string `json:"subtype,omitempty"`
}

// OrganizationListResponse wraps the organization list.
type OrganizationListResponse struct {
	Data []*model.Organization `json:"data"`
}
