//go:build e2e

// Package e2e exercises a running server end to end over HTTP.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

type eventResponse struct {
	EventID string `json:"eventId"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Type    string `json:"type"`
}

type recommendationsResponse struct {
	ContentBased []eventResponse `json:"contentBased"`
	ModelBased   []eventResponse `json:"mlBased"`
	Combined     []eventResponse `json:"combined"`
	Message      string          `json:"message"`
}

type profileResponse struct {
	RegisteredEvents []eventResponse `json:"registeredEvents"`
}

type messageResponse struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("CAMPUSHUB_BASE_URL", "http://localhost:8080")
	waitForServer(t, baseURL)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	alice := signup(t, baseURL, "alice-"+suffix)
	bob := signup(t, baseURL, "bob-"+suffix)

	orgID := "robotics-society-" + suffix
	createOrganization(t, baseURL, alice.Token, orgID)

	workshopID := "solder-workshop-" + suffix
	talkID := "drone-talk-" + suffix
	createEvent(t, baseURL, alice.Token, workshopID, orgID, "workshop")
	createEvent(t, baseURL, alice.Token, talkID, orgID, "workshop")

	// Register Alice for the workshop, then check both views of the state.
	doExpect(t, baseURL, alice.Token, "POST", "/api/v1/events/"+workshopID+"/register", nil, http.StatusNoContent)
	doExpect(t, baseURL, alice.Token, "POST", "/api/v1/events/"+workshopID+"/register", nil, http.StatusConflict)

	var profile profileResponse
	doJSON(t, baseURL, alice.Token, "GET", "/api/v1/users/me", nil, http.StatusOK, &profile)
	if len(profile.RegisteredEvents) != 1 || profile.RegisteredEvents[0].EventID != workshopID {
		t.Fatalf("profile registrations = %+v, want [%s]", profile.RegisteredEvents, workshopID)
	}

	// Alice has history: content-based picks up the sibling workshop.
	var recs recommendationsResponse
	doJSON(t, baseURL, alice.Token, "GET", "/api/v1/events/recommendations", nil, http.StatusOK, &recs)
	if recs.Message != "" {
		t.Fatalf("unexpected recommendation message: %q", recs.Message)
	}
	if !containsEvent(recs.ContentBased, talkID) {
		t.Fatalf("contentBased %+v should contain %s", recs.ContentBased, talkID)
	}
	if containsEvent(recs.Combined, workshopID) {
		t.Fatalf("combined should not contain the registered event %s", workshopID)
	}

	// Bob has no history: all lists empty, explanatory message set.
	doJSON(t, baseURL, bob.Token, "GET", "/api/v1/events/recommendations", nil, http.StatusOK, &recs)
	if recs.Message == "" {
		t.Fatal("expected a no-history message for a fresh account")
	}
	if len(recs.ContentBased) != 0 || len(recs.ModelBased) != 0 || len(recs.Combined) != 0 {
		t.Fatalf("fresh account should get empty lists, got %+v", recs)
	}

	// Withdraw and confirm the registration is gone.
	doExpect(t, baseURL, alice.Token, "POST", "/api/v1/events/"+workshopID+"/withdraw", nil, http.StatusNoContent)
	doExpect(t, baseURL, alice.Token, "POST", "/api/v1/events/"+workshopID+"/withdraw", nil, http.StatusConflict)

	doJSON(t, baseURL, alice.Token, "GET", "/api/v1/users/me", nil, http.StatusOK, &profile)
	if len(profile.RegisteredEvents) != 0 {
		t.Fatalf("profile registrations after withdraw = %+v, want none", profile.RegisteredEvents)
	}

	// Study group chat round trip.
	groupID := "cs101-" + suffix
	createGroup(t, baseURL, alice.Token, groupID)

	// Bob cannot read before joining.
	doExpect(t, baseURL, bob.Token, "GET", "/api/v1/groups/"+groupID+"/messages", nil, http.StatusForbidden)

	doExpect(t, baseURL, bob.Token, "POST", "/api/v1/groups/"+groupID+"/join", nil, http.StatusNoContent)
	doExpect(t, baseURL, bob.Token, "POST", "/api/v1/groups/"+groupID+"/messages",
		map[string]string{"text": "anyone up for revision?"}, http.StatusCreated)

	var messages struct {
		Data []messageResponse `json:"data"`
	}
	doJSON(t, baseURL, alice.Token, "GET", "/api/v1/groups/"+groupID+"/messages", nil, http.StatusOK, &messages)
	if len(messages.Data) != 1 {
		t.Fatalf("messages = %+v, want exactly one", messages.Data)
	}
	if messages.Data[0].Sender != bob.User.Username || messages.Data[0].Text != "anyone up for revision?" {
		t.Fatalf("unexpected message: %+v", messages.Data[0])
	}

	doExpect(t, baseURL, bob.Token, "POST", "/api/v1/groups/"+groupID+"/leave", nil, http.StatusNoContent)
	doExpect(t, baseURL, bob.Token, "GET", "/api/v1/groups/"+groupID+"/messages", nil, http.StatusForbidden)
}

func signup(t *testing.T, baseURL, username string) *authResponse {
	t.Helper()
	body := map[string]string{
		"fullName":       "Test " + username,
		"username":       username,
		"email":          username + "@example.edu",
		"password":       "correct-horse-battery",
		"university":     "Example University",
		"universityYear": "2",
		"degree":         "Computer Science",
	}

	var resp authResponse
	doJSON(t, baseURL, "", "POST", "/api/v1/auth/signup", body, http.StatusCreated, &resp)
	if resp.Token == "" || resp.User.ID == "" {
		t.Fatalf("signup returned incomplete response: %+v", resp)
	}

	// The credentials must work for login too.
	var login authResponse
	doJSON(t, baseURL, "", "POST", "/api/v1/auth/login",
		map[string]string{"email": body["email"], "password": body["password"]},
		http.StatusOK, &login)
	if login.User.ID != resp.User.ID {
		t.Fatalf("login returned a different account: %s vs %s", login.User.ID, resp.User.ID)
	}

	return &resp
}

func createOrganization(t *testing.T, baseURL, token, orgID string) {
	t.Helper()
	body := map[string]string{
		"organizationId": orgID,
		"name":           "Robotics Society",
		"description":    "Builds robots",
		"location":       "Engineering Building",
		"type":           "technical",
	}
	doExpect(t, baseURL, token, "POST", "/api/v1/organizations", body, http.StatusCreated)
}

func createEvent(t *testing.T, baseURL, token, eventID, orgID, eventType string) {
	t.Helper()
	date := time.Now().UTC().AddDate(0, 0, 7).Format("02-01-2006")
	body := map[string]string{
		"eventId":        eventID,
		"title":          "Event " + eventID,
		"date":           date,
		"time":           "18:00",
		"organizationId": orgID,
		"type":           eventType,
		"location":       "Lab 3",
	}
	doExpect(t, baseURL, token, "POST", "/api/v1/events", body, http.StatusCreated)
}

func createGroup(t *testing.T, baseURL, token, groupID string) {
	t.Helper()
	body := map[string]string{
		"groupId":    groupID,
		"courseName": "Intro to Computer Science",
	}
	doExpect(t, baseURL, token, "POST", "/api/v1/groups", body, http.StatusCreated)
}

func containsEvent(events []eventResponse, eventID string) bool {
	for _, event := range events {
		if event.EventID == eventID {
			return true
		}
	}
	return false
}

// doJSON performs a request and decodes the JSON response into out.
func doJSON(t *testing.T, baseURL, token, method, path string, body any, wantStatus int, out any) {
	t.Helper()
	resp := do(t, baseURL, token, method, path, body)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d. Body: %s", method, path, resp.StatusCode, wantStatus, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("%s %s: decode response: %v. Body: %s", method, path, err, raw)
		}
	}
}

// doExpect performs a request and checks only the status code.
func doExpect(t *testing.T, baseURL, token, method, path string, body any, wantStatus int) {
	t.Helper()
	resp := do(t, baseURL, token, method, path, body)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d. Body: %s", method, path, resp.StatusCode, wantStatus, raw)
	}
}

func do(t *testing.T, baseURL, token, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func waitForServer(t *testing.T, baseURL string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("server at %s never became healthy", baseURL)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
