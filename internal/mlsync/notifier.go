// Package mlsync notifies the external model service that the catalog or
// registration data changed, so it can retrain. Triggers are fire-and-forget:
// coalesced in-process, sent by a single background worker, and dropped on
// failure after logging.
package mlsync

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/campushub/campushub/internal/metrics"
)

const (
	// requestTimeout bounds each retrain call.
	requestTimeout = 10 * time.Second
)

// Notifier coalesces retrain triggers and delivers them asynchronously.
type Notifier struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    metrics.Recorder

	// pending has capacity 1: a trigger that arrives while one is already
	// queued is absorbed by it.
	pending  chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewNotifier creates a retrain notifier for the given retrain endpoint.
func NewNotifier(retrainURL string, logger *slog.Logger, recorder metrics.Recorder) *Notifier {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Notifier{
		url:        retrainURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger.With("component", "mlsync.notifier"),
		metrics:    recorder,
		pending:    make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (n *Notifier) Start() {
	go n.run()
}

// Trigger requests a retrain. Never blocks; a pending trigger absorbs it.
func (n *Notifier) Trigger() {
	select {
	case n.pending <- struct{}{}:
	default:
	}
}

// Shutdown stops the worker, waiting up to the context deadline for an
// in-flight delivery to finish.
func (n *Notifier) Shutdown(ctx context.Context) error {
	n.stopOnce.Do(func() {
		close(n.stop)
	})

	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the delivery loop.
func (n *Notifier) run() {
	defer close(n.done)

	for {
		select {
		case <-n.stop:
			return
		case <-n.pending:
			n.send()
		}
	}
}

// send performs one retrain call. Failures are logged and dropped.
func (n *Notifier) send() {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, strings.NewReader("{}"))
	if err != nil {
		n.logger.Warn("failed to build retrain request", "error", err)
		n.metrics.IncRetrainTriggered("dropped")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn("retrain trigger failed", "error", err)
		n.metrics.IncRetrainTriggered("dropped")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.logger.Warn("retrain trigger rejected", "status", resp.StatusCode)
		n.metrics.IncRetrainTriggered("dropped")
		return
	}

	n.logger.Debug("retrain triggered")
	n.metrics.IncRetrainTriggered("success")
}
