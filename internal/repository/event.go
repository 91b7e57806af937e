package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/campushub/campushub/internal/model"
)

// Common errors for event repository operations.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventExists   = errors.New("event ID already exists")
)

// eventColumns lists the event columns selected by every event query,
// aliased to table e.
const eventColumns = `e.id, e.event_id, e.title, e.image, e.summary, e.description, e.event_date, e.event_time, e.organization_ref, e.event_type, e.subtype, e.location, e.host_name, e.registered_users, e.created_at, e.updated_at`

// CreateEvent inserts a new event into the catalog.
func (r *Repository) CreateEvent(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (id, event_id, title, image, summary, description, event_date, event_time, organization_ref, event_type, subtype, location, host_name, registered_users, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.EventID,
		event.Title,
		event.Image,
		event.Summary,
		event.Description,
		event.Date.Time(),
		event.Time,
		event.OrganizationRef,
		event.Type,
		event.Subtype,
		event.Location,
		event.HostName,
		pq.Array(event.RegisteredUsers),
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		if uniqueViolation(err, "events_event_id_key") {
			return ErrEventExists
		}
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetEventByEventID retrieves an event by its human-assigned identifier,
// with the organizer reference expanded.
func (r *Repository) GetEventByEventID(ctx context.Context, eventID string) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `, o.organization_id, o.name
		FROM events e
		JOIN organizations o ON o.id = e.organization_ref
		WHERE e.event_id = $1
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// ListEvents retrieves all catalog events with organizer names expanded,
// ordered by date then event ID.
func (r *Repository) ListEvents(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `, o.organization_id, o.name
		FROM events e
		JOIN organizations o ON o.id = e.organization_ref
		ORDER BY e.event_date, e.event_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// FindCandidateEvents runs the content-based recommendation query: events
// whose type or subtype overlaps the given sets, excluding the given event
// IDs and anything dated before today. Results are capped at limit and
// ordered by date then event ID, deterministic for a fixed catalog snapshot.
func (r *Repository) FindCandidateEvents(ctx context.Context, types, subtypes, excludeIDs []string, today model.EventDate, limit int) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `, o.organization_id, o.name
		FROM events e
		JOIN organizations o ON o.id = e.organization_ref
		WHERE (e.event_type = ANY($1) OR (e.subtype <> '' AND e.subtype = ANY($2)))
		  AND NOT (e.event_id = ANY($3))
		  AND e.event_date >= $4
		ORDER BY e.event_date, e.event_id
		LIMIT $5
	`

	rows, err := r.pool.Query(ctx, query,
		pq.Array(types),
		pq.Array(subtypes),
		pq.Array(excludeIDs),
		today.Time(),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// UpdateEvent updates an event's mutable fields.
func (r *Repository) UpdateEvent(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE events
		SET title = $2, image = $3, summary = $4, description = $5, event_date = $6, event_time = $7, organization_ref = $8, event_type = $9, subtype = $10, location = $11, host_name = $12, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Image,
		event.Summary,
		event.Description,
		event.Date.Time(),
		event.Time,
		event.OrganizationRef,
		event.Type,
		event.Subtype,
		event.Location,
		event.HostName,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes an event and pulls its reference from every user's
// registration list in a single transaction.
func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET registered_events = array_remove(registered_events, $1), updated_at = NOW()
		WHERE registered_events @> ARRAY[$1]
	`, id)
	if err != nil {
		return fmt.Errorf("failed to remove event from registrations: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit event deletion: %w", err)
	}
	return nil
}

// AddRegisteredUser appends a user record reference to the event's
// registration list. The guard keeps references unique.
func (r *Repository) AddRegisteredUser(ctx context.Context, eventID, userRef string) error {
	query := `
		UPDATE events
		SET registered_users = array_append(registered_users, $2), updated_at = NOW()
		WHERE id = $1 AND NOT (registered_users @> ARRAY[$2])
	`

	_, err := r.pool.Exec(ctx, query, eventID, userRef)
	if err != nil {
		return fmt.Errorf("failed to add registered user: %w", err)
	}
	return nil
}

// RemoveRegisteredUser removes a user record reference from the event's
// registration list.
func (r *Repository) RemoveRegisteredUser(ctx context.Context, eventID, userRef string) error {
	query := `
		UPDATE events
		SET registered_users = array_remove(registered_users, $2), updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, eventID, userRef)
	if err != nil {
		return fmt.Errorf("failed to remove registered user: %w", err)
	}
	return nil
}

// CountEventsForOrganization counts events referencing the organization.
func (r *Repository) CountEventsForOrganization(ctx context.Context, orgRef string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE organization_ref = $1`, orgRef).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count organization events: %w", err)
	}
	return count, nil
}

// scanEvent scans a single event row with organizer columns appended.
func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	var eventDate time.Time
	var registeredUsers []string
	var orgID, orgName string

	err := row.Scan(
		&event.ID,
		&event.EventID,
		&event.Title,
		&event.Image,
		&event.Summary,
		&event.Description,
		&eventDate,
		&event.Time,
		&event.OrganizationRef,
		&event.Type,
		&event.Subtype,
		&event.Location,
		&event.HostName,
		pq.Array(&registeredUsers),
		&event.CreatedAt,
		&event.UpdatedAt,
		&orgID,
		&orgName,
	)
	if err != nil {
		return nil, err
	}

	event.Date = model.DateOf(eventDate)
	event.RegisteredUsers = registeredUsers
	event.Organization = &model.OrganizationRef{OrganizationID: orgID, Name: orgName}
	return &event, nil
}

// collectEvents drains rows into event models.
func collectEvents(rows pgx.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}
