package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campushub/campushub/internal/model"
)

// Common errors for organization repository operations.
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationExists   = errors.New("organization ID already exists")
)

const organizationColumns = `id, organization_id, name, image, description, location, org_type, subtype, created_at, updated_at`

// CreateOrganization inserts a new organization.
func (r *Repository) CreateOrganization(ctx context.Context, org *model.Organization) error {
	query := `
		INSERT INTO organizations (id, organization_id, name, image, description, location, org_type, subtype, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		org.ID,
		org.OrganizationID,
		org.Name,
		org.Image,
		org.Description,
		org.Location,
		org.Type,
		org.Subtype,
		org.CreatedAt,
		org.UpdatedAt,
	)

	if err != nil {
		if uniqueViolation(err, "organizations_organization_id_key") {
			return ErrOrganizationExists
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return nil
}

// GetOrganizationByOrgID retrieves an organization by its human-assigned ID.
func (r *Repository) GetOrganizationByOrgID(ctx context.Context, organizationID string) (*model.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE organization_id = $1`

	org, err := scanOrganization(r.pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// ListOrganizations retrieves all organizations ordered by name.
func (r *Repository) ListOrganizations(ctx context.Context) ([]*model.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations ORDER BY name, organization_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*model.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}
	return orgs, nil
}

// UpdateOrganization updates an organization's mutable fields.
func (r *Repository) UpdateOrganization(ctx context.Context, org *model.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, image = $3, description = $4, location = $5, org_type = $6, subtype = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		org.ID,
		org.Name,
		org.Image,
		org.Description,
		org.Location,
		org.Type,
		org.Subtype,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrOrganizationNotFound
	}
	return nil
}

// DeleteOrganization removes an organization.
// The service layer refuses deletion while events still reference it.
func (r *Repository) DeleteOrganization(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrOrganizationNotFound
	}
	return nil
}

// scanOrganization scans a single row into an Organization model.
func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var org model.Organization
	err := row.Scan(
		&org.ID,
		&org.OrganizationID,
		&org.Name,
		&org.Image,
		&org.Description,
		&org.Location,
		&org.Type,
		&org.Subtype,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &org, nil
}
