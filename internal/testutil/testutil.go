// Package testutil provides helpers for integration and unit tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/campushub/campushub/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420421

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// migrationOrder lists migrations in dependency order. Down migrations run
// in reverse so foreign keys resolve.
var migrationOrder = []string{
	"000001_users",
	"000002_organizations",
	"000003_events",
	"000004_study_groups",
	"000005_messages",
}

// ResetSchema drops and recreates the whole schema for tests.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for i := len(migrationOrder) - 1; i >= 0; i-- {
		downPath := filepath.Join(root, "migrations", migrationOrder[i]+".down.sql")
		downSQL, err := os.ReadFile(downPath)
		if err != nil {
			return fmt.Errorf("read down migration %s: %w", migrationOrder[i], err)
		}
		if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
			return fmt.Errorf("apply down migration %s: %w", migrationOrder[i], err)
		}
	}

	for _, name := range migrationOrder {
		upPath := filepath.Join(root, "migrations", name+".up.sql")
		upSQL, err := os.ReadFile(upPath)
		if err != nil {
			return fmt.Errorf("read up migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
			return fmt.Errorf("apply up migration %s: %w", name, err)
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, username string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:               fmt.Sprintf("user-%d", now.UnixNano()),
		FullName:         "Test Student",
		Username:         username,
		Email:            username + "@example.edu",
		PasswordHash:     fmt.Sprintf("hash-%d", now.UnixNano()),
		University:       "Example University",
		UniversityYear:   "2",
		Degree:           "Computer Science",
		RegisteredEvents: []string{},
		JoinedGroups:     []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NewTestOrganization creates a test organization with sensible defaults.
func NewTestOrganization(t testing.TB, organizationID string) *model.Organization {
	t.Helper()
	now := time.Now().UTC()
	return &model.Organization{
		ID:             fmt.Sprintf("org-%d", now.UnixNano()),
		OrganizationID: organizationID,
		Name:           "Test Society",
		Description:    "A society for testing",
		Location:       "Main Campus",
		Type:           "academic",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// NewTestEvent creates a test event with sensible defaults.
// The event falls one week in the future so it passes upcoming filters.
func NewTestEvent(t testing.TB, eventID, orgRef string) *model.Event {
	t.Helper()
	now := time.Now().UTC()
	return &model.Event{
		ID:              fmt.Sprintf("event-%d", now.UnixNano()),
		EventID:         eventID,
		Title:           "Test Event " + eventID,
		Date:            model.DateOf(now.AddDate(0, 0, 7)),
		Time:            "18:00",
		OrganizationRef: orgRef,
		Type:            "workshop",
		Location:        "Room 101",
		RegisteredUsers: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewTestGroup creates a test study group with sensible defaults.
func NewTestGroup(t testing.TB, groupID string) *model.Group {
	t.Helper()
	now := time.Now().UTC()
	return &model.Group{
		ID:         fmt.Sprintf("group-%d", now.UnixNano()),
		GroupID:    groupID,
		CourseName: "Course " + groupID,
		Members:    []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
