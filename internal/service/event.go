package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/campushub/internal/metrics"
	"github.com/campushub/campushub/internal/model"
	"github.com/campushub/campushub/internal/repository"
)

// Event service errors.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventExists          = errors.New("event ID already exists")
	ErrOrganizationRequired = errors.New("organization ID is required")
	ErrInvalidDate          = errors.New("invalid date format, expected DD-MM-YYYY")
	ErrAlreadyRegistered    = errors.New("user already registered for this event")
	ErrNotRegistered        = errors.New("user is not registered for this event")
)

// RetrainNotifier requests a model retrain after catalog or registration
// mutations. Implementations must not block.
type RetrainNotifier interface {
	Trigger()
}

// EventService handles event catalog business logic.
type EventService struct {
	repo    *repository.Repository
	retrain RetrainNotifier
	metrics metrics.Recorder
}

// NewEventService creates a new EventService.
func NewEventService(repo *repository.Repository, retrain RetrainNotifier, recorder metrics.Recorder) *EventService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &EventService{
		repo:    repo,
		retrain: retrain,
		metrics: recorder,
	}
}

// List returns the full event catalog with organizer names expanded.
func (s *EventService) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.ListEvents(ctx)
}

// Get returns a single event by its human-assigned identifier.
func (s *EventService) Get(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.repo.GetEventByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// CreateEventInput defines input for creating an event.
type CreateEventInput struct {
	EventID        string
	Title          string
	Image          string
	Summary        string
	Description    string
	Date           string // DD-MM-YYYY
	Time           string
	OrganizationID string
	Type           string
	Subtype        string
	Location       string
	HostName       string
}

// Create adds an event to the catalog and triggers a model retrain.
func (s *EventService) Create(ctx context.Context, input CreateEventInput) (*model.Event, error) {
	if input.OrganizationID == "" {
		return nil, ErrOrganizationRequired
	}

	date, err := model.ParseEventDate(input.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	org, err := s.repo.GetOrganizationByOrgID(ctx, input.OrganizationID)
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("resolve organization: %w", err)
	}

	now := time.Now().UTC()
	event := &model.Event{
		ID:              newID(),
		EventID:         input.EventID,
		Title:           input.Title,
		Image:           input.Image,
		Summary:         input.Summary,
		Description:     input.Description,
		Date:            date,
		Time:            input.Time,
		OrganizationRef: org.ID,
		Type:            input.Type,
		Subtype:         input.Subtype,
		Location:        input.Location,
		HostName:        input.HostName,
		RegisteredUsers: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		if errors.Is(err, repository.ErrEventExists) {
			return nil, ErrEventExists
		}
		return nil, fmt.Errorf("create event: %w", err)
	}

	event.Organization = &model.OrganizationRef{
		OrganizationID: org.OrganizationID,
		Name:           org.Name,
	}

	s.metrics.IncEventCreated()
	s.retrain.Trigger()

	return event, nil
}

// UpdateEventInput defines input for partial event updates.
// Empty fields keep their current value.
type UpdateEventInput struct {
	Title          string
	Image          string
	Summary        string
	Description    string
	Date           string // DD-MM-YYYY if provided
	Time           string
	OrganizationID string
	Type           string
	Subtype        string
	Location       string
	HostName       string
}

// Update applies a partial update to an event and triggers a model retrain.
func (s *EventService) Update(ctx context.Context, eventID string, input UpdateEventInput) (*model.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if input.Date != "" {
		date, err := model.ParseEventDate(input.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		event.Date = date
	}
	if input.OrganizationID != "" {
		org, err := s.repo.GetOrganizationByOrgID(ctx, input.OrganizationID)
		if err != nil {
			if errors.Is(err, repository.ErrOrganizationNotFound) {
				return nil, ErrOrganizationNotFound
			}
			return nil, fmt.Errorf("resolve organization: %w", err)
		}
		event.OrganizationRef = org.ID
		event.Organization = &model.OrganizationRef{
			OrganizationID: org.OrganizationID,
			Name:           org.Name,
		}
	}
	if input.Title != "" {
		event.Title = input.Title
	}
	if input.Image != "" {
		event.Image = input.Image
	}
	if input.Summary != "" {
		event.Summary = input.Summary
	}
	if input.Description != "" {
		event.Description = input.Description
	}
	if input.Time != "" {
		event.Time = input.Time
	}
	if input.Type != "" {
		event.Type = input.Type
	}
	if input.Subtype != "" {
		event.Subtype = input.Subtype
	}
	if input.Location != "" {
		event.Location = input.Location
	}
	if input.HostName != "" {
		event.HostName = input.HostName
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.metrics.IncEventUpdated()
	s.retrain.Trigger()

	return event, nil
}

// Delete removes an event, pulls it from all users' registration lists, and
// triggers a model retrain.
func (s *EventService) Delete(ctx context.Context, eventID string) error {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteEvent(ctx, event.ID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	s.metrics.IncEventDeleted()
	s.retrain.Trigger()

	return nil
}

// Register records a user's registration on both the event and the user row,
// then triggers a model retrain. Duplicate registrations are refused.
func (s *EventService) Register(ctx context.Context, eventID, userID string) error {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return err
	}

	if event.HasRegisteredUser(userID) {
		return ErrAlreadyRegistered
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	if err := s.repo.AddRegisteredUser(ctx, event.ID, userID); err != nil {
		return fmt.Errorf("register user on event: %w", err)
	}
	if err := s.repo.AppendRegistration(ctx, userID, event.ID); err != nil {
		return fmt.Errorf("record registration on user: %w", err)
	}

	s.metrics.IncRegistration()
	s.retrain.Trigger()

	return nil
}

// Withdraw removes a user's registration from both sides, then triggers a
// model retrain. Withdrawing without a registration is refused.
func (s *EventService) Withdraw(ctx context.Context, eventID, userID string) error {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return err
	}

	if !event.HasRegisteredUser(userID) {
		return ErrNotRegistered
	}

	if err := s.repo.RemoveRegisteredUser(ctx, event.ID, userID); err != nil {
		return fmt.Errorf("remove user from event: %w", err)
	}
	if err := s.repo.RemoveRegistration(ctx, userID, event.ID); err != nil {
		return fmt.Errorf("clear registration on user: %w", err)
	}

	s.metrics.IncWithdrawal()
	s.retrain.Trigger()

	return nil
}
