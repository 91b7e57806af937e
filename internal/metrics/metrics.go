// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Catalog metrics
	IncEventCreated()
	IncEventUpdated()
	IncEventDeleted()
	IncRegistration()
	IncWithdrawal()

	// Recommendation metrics
	IncRecommendationRequest()
	IncModelFallback(reason string) // reason: "unavailable", "malformed", "timeout"
	ObserveRecommendationDuration(duration time.Duration)
	ObserveContentResultSize(size int)
	ObserveModelResultSize(size int)

	// Retrain trigger metrics
	IncRetrainTriggered(status string) // status: "success" or "dropped"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
