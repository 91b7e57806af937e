package handler

import (
	"fmt"
	"net/http"

	"github.com/campushub/campushub/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "campushub_events_created_total %d\n", snap.EventsCreated)
	writeMetric(w, "campushub_events_updated_total %d\n", snap.EventsUpdated)
	writeMetric(w, "campushub_events_deleted_total %d\n", snap.EventsDeleted)

	writeMetric(w, "campushub_registrations_total %d\n", snap.Registrations)
	writeMetric(w, "campushub_withdrawals_total %d\n", snap.Withdrawals)

	writeMetric(w, "campushub_recommendation_requests_total %d\n", snap.RecommendationRequests)
	writeMetric(w, "campushub_recommendation_model_fallbacks_total %d\n", snap.ModelFallbacks)
	writeMetric(w, "campushub_recommendation_duration_seconds_count %d\n", snap.RecommendationDurationCount)
	writeMetric(w, "campushub_recommendation_duration_seconds_sum %.6f\n", float64(snap.RecommendationDurationNs)/1e9)
	writeMetric(w, "campushub_recommendation_content_results_total %d\n", snap.ContentResultTotal)
	writeMetric(w, "campushub_recommendation_model_results_total %d\n", snap.ModelResultTotal)

	writeMetric(w, "campushub_retrain_triggered_total{status=\"success\"} %d\n", snap.RetrainTriggered)
	writeMetric(w, "campushub_retrain_triggered_total{status=\"dropped\"} %d\n", snap.RetrainDropped)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
