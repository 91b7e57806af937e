package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/campushub/internal/model"
	"github.com/campushub/campushub/internal/repository"
)

// Organization service errors.
var (
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrOrganizationExists    = errors.New("organization ID already exists")
	ErrOrganizationHasEvents = errors.New("organization has associated events")
)

// OrganizationService handles organizer business logic.
type OrganizationService struct {
	repo *repository.Repository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(repo *repository.Repository) *OrganizationService {
	return &OrganizationService{repo: repo}
}

// List returns all organizations.
func (s *OrganizationService) List(ctx context.Context) ([]*model.Organization, error) {
	return s.repo.ListOrganizations(ctx)
}

// Get returns a single organization by its human-assigned identifier.
func (s *OrganizationService) Get(ctx context.Context, organizationID string) (*model.Organization, error) {
	org, err := s.repo.GetOrganizationByOrgID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

// CreateOrganizationInput defines input for creating an organization.
type CreateOrganizationInput struct {
	OrganizationID string
	Name           string
	Image          string
	Description    string
	Location       string
	Type           string
	Subtype        string
}

// Create adds a new organization.
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*model.Organization, error) {
	if input.OrganizationID == "" || input.Name == "" || input.Description == "" ||
		input.Location == "" || input.Type == "" {
		return nil, ErrMissingFields
	}

	now := time.Now().UTC()
	org := &model.Organization{
		ID:             newID(),
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Image:          input.Image,
		Description:    input.Description,
		Location:       input.Location,
		Type:           input.Type,
		Subtype:        input.Subtype,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateOrganization(ctx, org); err != nil {
		if errors.Is(err, repository.ErrOrganizationExists) {
			return nil, ErrOrganizationExists
		}
		return nil, fmt.Errorf("create organization: %w", err)
	}

	return org, nil
}

// UpdateOrganizationInput defines input for partial organization updates.
// Empty fields keep their current value.
type UpdateOrganizationInput struct {
	Name        string
	Image       string
	Description string
	Location    string
	Type        string
	Subtype     string
}

// Update applies a partial update to an organization.
func (s *OrganizationService) Update(ctx context.Context, organizationID string, input UpdateOrganizationInput) (*model.Organization, error) {
	org, err := s.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		org.Name = input.Name
	}
	if input.Image != "" {
		org.Image = input.Image
	}
	if input.Description != "" {
		org.Description = input.Description
	}
	if input.Location != "" {
		org.Location = input.Location
	}
	if input.Type != "" {
		org.Type = input.Type
	}
	if input.Subtype != "" {
		org.Subtype = input.Subtype
	}

	if err := s.repo.UpdateOrganization(ctx, org); err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("update organization: %w", err)
	}

	return org, nil
}

// Delete removes an organization. Deletion is refused while events still
// reference it; those must be deleted or reassigned first.
func (s *OrganizationService) Delete(ctx context.Context, organizationID string) error {
	org, err := s.Get(ctx, organizationID)
	if err != nil {
		return err
	}

	count, err := s.repo.CountEventsForOrganization(ctx, org.ID)
	if err != nil {
		return fmt.Errorf("count organization events: %w", err)
	}
	if count > 0 {
		return ErrOrganizationHasEvents
	}

	if err := s.repo.DeleteOrganization(ctx, org.ID); err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("delete organization: %w", err)
	}

	return nil
}
