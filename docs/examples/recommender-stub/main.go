// CampusHub Recommender Stub
//
// This is a minimal stand-in for the recommendation model service. It answers
// the two endpoints the API calls: POST /recommend and POST /retrain. Use it
// for local development when the real model service is not running.
//
// Usage:
//   go run main.go
//
// Then start the API with ML_SERVICE_URL=http://localhost:5003 (the default).

package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"
)

// recommendRequest is the request body sent by the API.
type recommendRequest struct {
	UserID             string `json:"user_id"`
	NumRecommendations int    `json:"num_recommendations"`
}

// recommendation is an event-shaped record. The date uses DD-MM-YYYY.
type recommendation struct {
	EventID string `json:"eventId"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Time    string `json:"time,omitempty"`
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
}

var retrainCount atomic.Int64

func main() {
	http.HandleFunc("/recommend", recommendHandler)
	http.HandleFunc("/retrain", retrainHandler)
	http.HandleFunc("/health", healthHandler)

	log.Println("Starting recommender stub on :5003")
	log.Println("Recommend endpoint: http://localhost:5003/recommend")
	log.Fatal(http.ListenAndServe(":5003", nil))
}

func recommendHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error parsing JSON: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	count := req.NumRecommendations
	if count <= 0 {
		count = 5
	}

	// Canned upcoming events. A real model would rank the catalog here.
	nextWeek := time.Now().AddDate(0, 0, 7).Format("02-01-2006")
	canned := []recommendation{
		{EventID: "stub-robotics-demo", Title: "Robotics Demo Night", Date: nextWeek, Time: "18:00", Type: "workshop", Subtype: "robotics"},
		{EventID: "stub-career-fair", Title: "Spring Career Fair", Date: nextWeek, Time: "10:00", Type: "fair"},
		{EventID: "stub-ai-talk", Title: "Intro to Neural Networks", Date: nextWeek, Time: "17:00", Type: "talk", Subtype: "ai"},
	}
	if count < len(canned) {
		canned = canned[:count]
	}

	log.Printf("✓ Recommend request for user %s (%d results)", req.UserID, len(canned))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"recommendations": canned})
}

func retrainHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n := retrainCount.Add(1)
	log.Printf("✓ Retrain trigger received (%d total)", n)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "scheduled"})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
