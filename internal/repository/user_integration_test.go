//go:build integration

package repository

import (
	"errors"
	"testing"

	"github.com/campushub/campushub/internal/testutil"
)

func TestIntegrationUserRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := seedUser(ctx, t, repo, testutil.UniqueID("alice"))

	byID, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("Email mismatch: got %q, want %q", byID.Email, user.Email)
	}
	if byID.RegisteredEvents == nil || len(byID.RegisteredEvents) != 0 {
		t.Errorf("RegisteredEvents should be empty, got %v", byID.RegisteredEvents)
	}

	byEmail, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", byEmail.ID, user.ID)
	}
	if byEmail.PasswordHash != user.PasswordHash {
		t.Error("GetUserByEmail must include the password hash")
	}

	byUsername, err := repo.GetUserByUsername(ctx, user.Username)
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byUsername.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", byUsername.ID, user.ID)
	}
}

func TestIntegrationUserRepository_NotFound(t *testing.T) {
	ctx, repo := newTestEnv(t)

	if _, err := repo.GetUserByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "missing@example.edu"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_DuplicateEmail(t *testing.T) {
	ctx, repo := newTestEnv(t)

	first := seedUser(ctx, t, repo, testutil.UniqueID("dupmail"))

	second := testutil.NewTestUser(t, testutil.UniqueID("dupmail2"))
	second.ID = testutil.UniqueID("user")
	second.Email = first.Email

	if err := repo.CreateUser(ctx, second); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_DuplicateUsername(t *testing.T) {
	ctx, repo := newTestEnv(t)

	first := seedUser(ctx, t, repo, testutil.UniqueID("dupname"))

	second := testutil.NewTestUser(t, first.Username)
	second.ID = testutil.UniqueID("user")
	second.Email = testutil.UniqueID("other") + "@example.edu"

	if err := repo.CreateUser(ctx, second); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("Expected ErrUsernameExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_UpdateProfile(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := seedUser(ctx, t, repo, testutil.UniqueID("update"))

	user.FullName = "Updated Name"
	user.Degree = "Physics"
	user.Bio = "Now studying physics"

	if err := repo.UpdateUserProfile(ctx, user); err != nil {
		t.Fatalf("UpdateUserProfile failed: %v", err)
	}

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if retrieved.FullName != "Updated Name" || retrieved.Degree != "Physics" {
		t.Errorf("profile not updated: %+v", retrieved)
	}
	if !retrieved.UpdatedAt.After(user.CreatedAt) {
		t.Error("UpdatedAt should advance on update")
	}
}

func TestIntegrationUserRepository_UpdateProfile_UsernameTaken(t *testing.T) {
	ctx, repo := newTestEnv(t)

	first := seedUser(ctx, t, repo, testutil.UniqueID("taken"))
	second := seedUser(ctx, t, repo, testutil.UniqueID("claimer"))

	second.Username = first.Username
	if err := repo.UpdateUserProfile(ctx, second); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("Expected ErrUsernameExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_RegistrationList(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := seedUser(ctx, t, repo, testutil.UniqueID("reg"))
	org := seedOrganization(ctx, t, repo)
	eventA := seedEvent(ctx, t, repo, org, testutil.UniqueID("ev-a"))
	eventB := seedEvent(ctx, t, repo, org, testutil.UniqueID("ev-b"))

	if err := repo.AppendRegistration(ctx, user.ID, eventA.ID); err != nil {
		t.Fatalf("AppendRegistration failed: %v", err)
	}
	if err := repo.AppendRegistration(ctx, user.ID, eventB.ID); err != nil {
		t.Fatalf("AppendRegistration failed: %v", err)
	}
	// Appending the same reference twice must not duplicate it.
	if err := repo.AppendRegistration(ctx, user.ID, eventA.ID); err != nil {
		t.Fatalf("AppendRegistration (repeat) failed: %v", err)
	}

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if len(retrieved.RegisteredEvents) != 2 {
		t.Fatalf("RegisteredEvents length = %d, want 2", len(retrieved.RegisteredEvents))
	}
	if retrieved.RegisteredEvents[0] != eventA.ID || retrieved.RegisteredEvents[1] != eventB.ID {
		t.Errorf("registration order not preserved: %v", retrieved.RegisteredEvents)
	}

	resolved, err := repo.GetRegisteredEvents(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetRegisteredEvents failed: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("resolved events length = %d, want 2", len(resolved))
	}
	if resolved[0].ID != eventA.ID {
		t.Errorf("resolved order not preserved: first = %s", resolved[0].ID)
	}
	if resolved[0].Organization == nil || resolved[0].Organization.Name == "" {
		t.Error("organizer should be expanded on resolved events")
	}

	if err := repo.RemoveRegistration(ctx, user.ID, eventA.ID); err != nil {
		t.Fatalf("RemoveRegistration failed: %v", err)
	}

	retrieved, err = repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if len(retrieved.RegisteredEvents) != 1 || retrieved.RegisteredEvents[0] != eventB.ID {
		t.Errorf("RegisteredEvents after removal = %v, want [%s]", retrieved.RegisteredEvents, eventB.ID)
	}
}
