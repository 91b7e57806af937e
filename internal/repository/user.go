package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/campushub/campushub/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
)

// CreateUser inserts a new user.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, full_name, username, email, password_hash, university, university_year, degree, bio, registered_events, joined_groups, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.University,
		user.UniversityYear,
		user.Degree,
		user.Bio,
		pq.Array(user.RegisteredEvents),
		pq.Array(user.JoinedGroups),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if uniqueViolation(err, "users_email_key") {
			return ErrEmailExists
		}
		if uniqueViolation(err, "users_username_key") {
			return ErrUsernameExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by its record ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := userSelectColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetUserByEmail retrieves a user by email, including the password hash.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := userSelectColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := userSelectColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, username))
}

// UpdateUserProfile updates a user's mutable profile fields.
func (r *Repository) UpdateUserProfile(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET full_name = $2, username = $3, university = $4, university_year = $5, degree = $6, bio = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Username,
		user.University,
		user.UniversityYear,
		user.Degree,
		user.Bio,
	)
	if err != nil {
		if uniqueViolation(err, "users_username_key") {
			return ErrUsernameExists
		}
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AppendRegistration appends an event record reference to the user's
// registration list. The guard keeps references unique per user.
func (r *Repository) AppendRegistration(ctx context.Context, userID, eventRef string) error {
	query := `
		UPDATE users
		SET registered_events = array_append(registered_events, $2), updated_at = NOW()
		WHERE id = $1 AND NOT (registered_events @> ARRAY[$2])
	`

	_, err := r.pool.Exec(ctx, query, userID, eventRef)
	if err != nil {
		return fmt.Errorf("failed to append registration: %w", err)
	}
	return nil
}

// RemoveRegistration removes an event record reference from the user's
// registration list.
func (r *Repository) RemoveRegistration(ctx context.Context, userID, eventRef string) error {
	query := `
		UPDATE users
		SET registered_events = array_remove(registered_events, $2), updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, userID, eventRef)
	if err != nil {
		return fmt.Errorf("failed to remove registration: %w", err)
	}
	return nil
}

// GetRegisteredEvents resolves the user's registration references to event
// records, preserving the stored registration order.
func (r *Repository) GetRegisteredEvents(ctx context.Context, userID string) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `, o.organization_id, o.name
		FROM users u
		JOIN LATERAL unnest(u.registered_events) WITH ORDINALITY AS reg(event_ref, ord) ON true
		JOIN events e ON e.id = reg.event_ref
		JOIN organizations o ON o.id = e.organization_ref
		WHERE u.id = $1
		ORDER BY reg.ord
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registered events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

const userSelectColumns = `
	SELECT id, full_name, username, email, password_hash, university, university_year, degree, bio, registered_events, joined_groups, created_at, updated_at`

// scanUser scans a single row into a User model.
func (r *Repository) scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	var registeredEvents, joinedGroups []string

	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.University,
		&user.UniversityYear,
		&user.Degree,
		&user.Bio,
		pq.Array(&registeredEvents),
		pq.Array(&joinedGroups),
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.RegisteredEvents = registeredEvents
	user.JoinedGroups = joinedGroups
	return &user, nil
}
