// Command seed-demo-data populates a development database with a demo
// account, an organization, and a handful of upcoming events so the catalog
// and recommendation endpoints have something to work with.
//
// Usage:
//
//	go run scripts/seed-demo-data.go -database-url "$DATABASE_URL"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/model"
	"github.com/campushub/campushub/internal/repository"
)

type output struct {
	UserID   string   `json:"user_id"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Events   []string `json:"events"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "demo@campushub.local", "Demo account email")
		password    = flag.String("password", "demo-password", "Demo account password")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	user, err := ensureDemoUser(ctx, repo, *email, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	org, err := ensureDemoOrganization(ctx, repo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	events, err := seedEvents(ctx, repo, org)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	out := output{
		UserID:   user.ID,
		Email:    *email,
		Password: *password,
		Events:   events,
	}

	switch *format {
	case "plain":
		fmt.Printf("demo account: %s / %s\n", out.Email, out.Password)
		for _, eventID := range out.Events {
			fmt.Println("event:", eventID)
		}
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func ensureDemoUser(ctx context.Context, repo *repository.Repository, email, password string) (*model.User, error) {
	existing, err := repo.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:               ulid.Make().String(),
		FullName:         "Demo Student",
		Username:         "demo",
		Email:            email,
		PasswordHash:     hash,
		University:       "Example University",
		UniversityYear:   "2",
		Degree:           "Computer Science",
		RegisteredEvents: []string{},
		JoinedGroups:     []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}
	return user, nil
}

func ensureDemoOrganization(ctx context.Context, repo *repository.Repository) (*model.Organization, error) {
	existing, err := repo.GetOrganizationByOrgID(ctx, "demo-robotics-society")
	if err == nil {
		return existing, nil
	}

	now := time.Now().UTC()
	org := &model.Organization{
		ID:             ulid.Make().String(),
		OrganizationID: "demo-robotics-society",
		Name:           "Robotics Society",
		Description:    "Builds and races robots",
		Location:       "Engineering Building",
		Type:           "technical",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := repo.CreateOrganization(ctx, org); err != nil {
		return nil, fmt.Errorf("create demo organization: %w", err)
	}
	return org, nil
}

func seedEvents(ctx context.Context, repo *repository.Repository, org *model.Organization) ([]string, error) {
	now := time.Now().UTC()
	specs := []struct {
		eventID   string
		title     string
		eventType string
		subtype   string
		daysAhead int
	}{
		{"demo-solder-workshop", "Soldering Workshop", "workshop", "electronics", 3},
		{"demo-robot-race", "Autonomous Robot Race", "competition", "robotics", 7},
		{"demo-ml-talk", "Machine Learning in Robotics", "talk", "ai", 10},
		{"demo-open-lab", "Open Lab Evening", "workshop", "", 14},
	}

	var seeded []string
	for _, spec := range specs {
		if _, err := repo.GetEventByEventID(ctx, spec.eventID); err == nil {
			seeded = append(seeded, spec.eventID)
			continue
		}

		event := &model.Event{
			ID:              ulid.Make().String(),
			EventID:         spec.eventID,
			Title:           spec.title,
			Date:            model.DateOf(now.AddDate(0, 0, spec.daysAhead)),
			Time:            "18:00",
			OrganizationRef: org.ID,
			Type:            spec.eventType,
			Subtype:         spec.subtype,
			Location:        "Lab 3",
			RegisteredUsers: []string{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := repo.CreateEvent(ctx, event); err != nil {
			return nil, fmt.Errorf("create event %s: %w", spec.eventID, err)
		}
		seeded = append(seeded, spec.eventID)
	}
	return seeded, nil
}
