package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/campushub/campushub/internal/model"
)

// Model service call errors. Both are recovered at the engine call site;
// neither fails the overall request.
var (
	// ErrModelUnavailable indicates a transport error, timeout, or
	// non-success status from the model service.
	ErrModelUnavailable = errors.New("model service unavailable")
	// ErrModelMalformed indicates a success response whose body is missing
	// the expected recommendations field.
	ErrModelMalformed = errors.New("model service response malformed")
)

const (
	// dialTimeout is the connection timeout for the model service.
	dialTimeout = 2 * time.Second
	// responseHeaderTimeout is time to wait for response headers.
	responseHeaderTimeout = 4 * time.Second
)

// Client calls the external recommendation model service over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
}

// NewClient creates a model service client for the given recommend endpoint.
// timeout bounds each call end to end; a slow or unreachable service cannot
// stall a request past it.
func NewClient(recommendURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: responseHeaderTimeout,
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   2,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		url:     recommendURL,
		timeout: timeout,
	}
}

// recommendRequest is the wire request body for the model service.
type recommendRequest struct {
	UserID             string `json:"user_id"`
	NumRecommendations int    `json:"num_recommendations"`
}

// wireEvent is the event-shaped record returned by the model service.
// The date is parsed leniently: a record with a missing or unparseable
// date keeps a zero date and is dropped by the engine's upcoming filter.
type wireEvent struct {
	EventID     string `json:"eventId"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Subtype     string `json:"subtype"`
	Location    string `json:"location"`
	HostName    string `json:"name"`
}

// Recommend requests count ranked events for the user.
// A single attempt, no retries.
func (c *Client) Recommend(ctx context.Context, userID string, count int) ([]*model.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(recommendRequest{
		UserID:             userID,
		NumRecommendations: count,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode)
	}

	// Decode the field lazily so "missing recommendations" is
	// distinguishable from "empty recommendations".
	var payload struct {
		Recommendations json.RawMessage `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelMalformed, err)
	}
	if payload.Recommendations == nil {
		return nil, fmt.Errorf("%w: missing recommendations field", ErrModelMalformed)
	}

	var wire []wireEvent
	if err := json.Unmarshal(payload.Recommendations, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelMalformed, err)
	}

	events := make([]*model.Event, 0, len(wire))
	for _, w := range wire {
		event := &model.Event{
			EventID:     w.EventID,
			Title:       w.Title,
			Image:       w.Image,
			Summary:     w.Summary,
			Description: w.Description,
			Time:        w.Time,
			Type:        w.Type,
			Subtype:     w.Subtype,
			Location:    w.Location,
			HostName:    w.HostName,
		}
		if date, err := model.ParseEventDate(w.Date); err == nil {
			event.Date = date
		}
		events = append(events, event)
	}
	return events, nil
}
