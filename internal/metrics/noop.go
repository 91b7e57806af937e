package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncEventCreated is a no-op.
func (n *NoopRecorder) IncEventCreated() {}

// IncEventUpdated is a no-op.
func (n *NoopRecorder) IncEventUpdated() {}

// IncEventDeleted is a no-op.
func (n *NoopRecorder) IncEventDeleted() {}

// IncRegistration is a no-op.
func (n *NoopRecorder) IncRegistration() {}

// IncWithdrawal is a no-op.
func (n *NoopRecorder) IncWithdrawal() {}

// IncRecommendationRequest is a no-op.
func (n *NoopRecorder) IncRecommendationRequest() {}

// IncModelFallback is a no-op.
func (n *NoopRecorder) IncModelFallback(reason string) {}

// ObserveRecommendationDuration is a no-op.
func (n *NoopRecorder) ObserveRecommendationDuration(duration time.Duration) {}

// ObserveContentResultSize is a no-op.
func (n *NoopRecorder) ObserveContentResultSize(size int) {}

// ObserveModelResultSize is a no-op.
func (n *NoopRecorder) ObserveModelResultSize(size int) {}

// IncRetrainTriggered is a no-op.
func (n *NoopRecorder) IncRetrainTriggered(status string) {}
