//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/campushub/campushub/internal/model"
	"github.com/campushub/campushub/internal/testutil"
)

// newTestEnv connects to the test database, serializes against other DB
// tests, and resets the schema.
func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}

// seedOrganization creates and persists an organization.
func seedOrganization(ctx context.Context, t *testing.T, repo *Repository) *model.Organization {
	t.Helper()
	org := testutil.NewTestOrganization(t, testutil.UniqueID("org"))
	if err := repo.CreateOrganization(ctx, org); err != nil {
		t.Fatalf("seed organization: %v", err)
	}
	return org
}

// seedEvent creates and persists an event under the given organization.
func seedEvent(ctx context.Context, t *testing.T, repo *Repository, org *model.Organization, eventID string) *model.Event {
	t.Helper()
	event := testutil.NewTestEvent(t, eventID, org.ID)
	if err := repo.CreateEvent(ctx, event); err != nil {
		t.Fatalf("seed event %s: %v", eventID, err)
	}
	return event
}

// seedUser creates and persists a user.
func seedUser(ctx context.Context, t *testing.T, repo *Repository, username string) *model.User {
	t.Helper()
	user := testutil.NewTestUser(t, username)
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}
