package mlsync

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campushub/campushub/internal/metrics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifier_DeliversTrigger(t *testing.T) {
	received := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Clone(context.Background())
	}))
	defer srv.Close()

	recorder := metrics.NewInMemory()
	n := NewNotifier(srv.URL+"/retrain", testLogger(), recorder)
	n.Start()
	defer n.Shutdown(context.Background())

	n.Trigger()

	select {
	case r := <-received:
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/retrain" {
			t.Errorf("path = %s, want /retrain", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retrain call never arrived")
	}

	waitFor(t, func() bool { return recorder.Snapshot().RetrainTriggered == 1 })
}

func TestNotifier_CoalescesTriggers(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, testLogger(), nil)

	// Worker not started yet: every trigger lands in the same pending slot.
	n.Trigger()
	n.Trigger()
	n.Trigger()

	n.Start()
	waitFor(t, func() bool { return calls.Load() >= 1 })

	if err := n.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("retrain calls = %d, want 1", got)
	}
}

func TestNotifier_FailureIsDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	recorder := metrics.NewInMemory()
	n := NewNotifier(srv.URL, testLogger(), recorder)
	n.Start()
	defer n.Shutdown(context.Background())

	n.Trigger()

	waitFor(t, func() bool { return recorder.Snapshot().RetrainDropped == 1 })
	if got := recorder.Snapshot().RetrainTriggered; got != 0 {
		t.Errorf("RetrainTriggered = %d, want 0", got)
	}
}

func TestNotifier_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	recorder := metrics.NewInMemory()
	n := NewNotifier(url, testLogger(), recorder)
	n.Start()
	defer n.Shutdown(context.Background())

	n.Trigger()

	waitFor(t, func() bool { return recorder.Snapshot().RetrainDropped == 1 })
}

func TestNotifier_ShutdownIdempotent(t *testing.T) {
	n := NewNotifier("http://localhost:0", testLogger(), nil)
	n.Start()

	if err := n.Shutdown(context.Background()); err != nil {
		t.Fatalf("first Shutdown() error = %v", err)
	}
	if err := n.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}

	// Triggers after shutdown must not panic.
	n.Trigger()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition never met")
}
