package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	EventsCreated               uint64
	EventsUpdated               uint64
	EventsDeleted               uint64
	Registrations               uint64
	Withdrawals                 uint64
	RecommendationRequests      uint64
	ModelFallbacks              uint64
	RecommendationDurationCount uint64
	RecommendationDurationNs    int64
	ContentResultTotal          uint64
	ModelResultTotal            uint64
	RetrainTriggered            uint64
	RetrainDropped              uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	eventsCreated               uint64
	eventsUpdated               uint64
	eventsDeleted               uint64
	registrations               uint64
	withdrawals                 uint64
	recommendationRequests      uint64
	modelFallbacks              uint64
	recommendationDurationCount uint64
	recommendationDurationNs    int64
	contentResultTotal          uint64
	modelResultTotal            uint64
	retrainTriggered            uint64
	retrainDropped              uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		EventsCreated:               atomic.LoadUint64(&m.eventsCreated),
		EventsUpdated:               atomic.LoadUint64(&m.eventsUpdated),
		EventsDeleted:               atomic.LoadUint64(&m.eventsDeleted),
		Registrations:               atomic.LoadUint64(&m.registrations),
		Withdrawals:                 atomic.LoadUint64(&m.withdrawals),
		RecommendationRequests:      atomic.LoadUint64(&m.recommendationRequests),
		ModelFallbacks:              atomic.LoadUint64(&m.modelFallbacks),
		RecommendationDurationCount: atomic.LoadUint64(&m.recommendationDurationCount),
		RecommendationDurationNs:    atomic.LoadInt64(&m.recommendationDurationNs),
		ContentResultTotal:          atomic.LoadUint64(&m.contentResultTotal),
		ModelResultTotal:            atomic.LoadUint64(&m.modelResultTotal),
		RetrainTriggered:            atomic.LoadUint64(&m.retrainTriggered),
		RetrainDropped:              atomic.LoadUint64(&m.retrainDropped),
	}
}

// IncEventCreated increments the events created counter.
func (m *InMemoryRecorder) IncEventCreated() {
	atomic.AddUint64(&m.eventsCreated, 1)
}

// IncEventUpdated increments the events updated counter.
func (m *InMemoryRecorder) IncEventUpdated() {
	atomic.AddUint64(&m.eventsUpdated, 1)
}

// IncEventDeleted increments the events deleted counter.
func (m *InMemoryRecorder) IncEventDeleted() {
	atomic.AddUint64(&m.eventsDeleted, 1)
}

// IncRegistration increments the registrations counter.
func (m *InMemoryRecorder) IncRegistration() {
	atomic.AddUint64(&m.registrations, 1)
}

// IncWithdrawal increments the withdrawals counter.
func (m *InMemoryRecorder) IncWithdrawal() {
	atomic.AddUint64(&m.withdrawals, 1)
}

// IncRecommendationRequest increments the recommendation request counter.
func (m *InMemoryRecorder) IncRecommendationRequest() {
	atomic.AddUint64(&m.recommendationRequests, 1)
}

// IncModelFallback increments the model fallback counter.
func (m *InMemoryRecorder) IncModelFallback(reason string) {
	atomic.AddUint64(&m.modelFallbacks, 1)
}

// ObserveRecommendationDuration records recommendation latency.
func (m *InMemoryRecorder) ObserveRecommendationDuration(duration time.Duration) {
	atomic.AddUint64(&m.recommendationDurationCount, 1)
	atomic.AddInt64(&m.recommendationDurationNs, duration.Nanoseconds())
}

// ObserveContentResultSize accumulates content-based result sizes.
func (m *InMemoryRecorder) ObserveContentResultSize(size int) {
	atomic.AddUint64(&m.contentResultTotal, uint64(size))
}

// ObserveModelResultSize accumulates model-based result sizes.
func (m *InMemoryRecorder) ObserveModelResultSize(size int) {
	atomic.AddUint64(&m.modelResultTotal, uint64(size))
}

// IncRetrainTriggered increments the retrain trigger counter by status.
func (m *InMemoryRecorder) IncRetrainTriggered(status string) {
	if status == "success" {
		atomic.AddUint64(&m.retrainTriggered, 1)
		return
	}
	atomic.AddUint64(&m.retrainDropped, 1)
}
