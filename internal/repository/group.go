package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/campushub/campushub/internal/model"
)

// Common errors for group repository operations.
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrGroupExists   = errors.New("group ID already exists")
)

const groupColumns = `id, group_id, course_name, description, members, created_at, updated_at`

// CreateGroup inserts a new study group.
func (r *Repository) CreateGroup(ctx context.Context, group *model.Group) error {
	query := `
		INSERT INTO study_groups (id, group_id, course_name, description, members, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		group.ID,
		group.GroupID,
		group.CourseName,
		group.Description,
		pq.Array(group.Members),
		group.CreatedAt,
		group.UpdatedAt,
	)

	if err != nil {
		if uniqueViolation(err, "study_groups_group_id_key") {
			return ErrGroupExists
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

// GetGroupByGroupID retrieves a group by its human-assigned ID.
func (r *Repository) GetGroupByGroupID(ctx context.Context, groupID string) (*model.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM study_groups WHERE group_id = $1`

	group, err := scanGroup(r.pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// ListGroups retrieves all study groups ordered by course name.
func (r *Repository) ListGroups(ctx context.Context) ([]*model.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM study_groups ORDER BY course_name, group_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return groups, nil
}

// GetGroupsByRefs resolves group record IDs to group rows.
// Order follows course name, not the input order.
func (r *Repository) GetGroupsByRefs(ctx context.Context, refs []string) ([]*model.Group, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + groupColumns + ` FROM study_groups WHERE id = ANY($1) ORDER BY course_name, group_id`

	rows, err := r.pool.Query(ctx, query, pq.Array(refs))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return groups, nil
}

// AddGroupMember records membership on both the group and the user row.
func (r *Repository) AddGroupMember(ctx context.Context, groupRef, userRef string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE study_groups
		SET members = array_append(members, $2), updated_at = NOW()
		WHERE id = $1 AND NOT (members @> ARRAY[$2])
	`, groupRef, userRef)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET joined_groups = array_append(joined_groups, $2), updated_at = NOW()
		WHERE id = $1 AND NOT (joined_groups @> ARRAY[$2])
	`, userRef, groupRef)
	if err != nil {
		return fmt.Errorf("failed to record joined group: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit group join: %w", err)
	}
	return nil
}

// RemoveGroupMember removes membership from both the group and the user row.
func (r *Repository) RemoveGroupMember(ctx context.Context, groupRef, userRef string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE study_groups
		SET members = array_remove(members, $2), updated_at = NOW()
		WHERE id = $1
	`, groupRef, userRef)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET joined_groups = array_remove(joined_groups, $2), updated_at = NOW()
		WHERE id = $1
	`, userRef, groupRef)
	if err != nil {
		return fmt.Errorf("failed to clear joined group: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit group leave: %w", err)
	}
	return nil
}

// scanGroup scans a single row into a Group model.
func scanGroup(row pgx.Row) (*model.Group, error) {
	var group model.Group
	var members []string

	err := row.Scan(
		&group.ID,
		&group.GroupID,
		&group.CourseName,
		&group.Description,
		pq.Array(&members),
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	group.Members = members
	return &group, nil
}
