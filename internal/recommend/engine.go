package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/campushub/campushub/internal/metrics"
	"github.com/campushub/campushub/internal/model"
	"github.com/campushub/campushub/internal/repository"
)

// ErrUserNotFound indicates the requesting user identity does not resolve
// to a record. This is the engine's only fatal condition.
var ErrUserNotFound = errors.New("user not found")

// NoSignalMessage explains the empty result for users with no registrations.
const NoSignalMessage = "No registered events to base recommendations on."

// UserSource loads a user and resolves their registration history.
type UserSource interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetRegisteredEvents(ctx context.Context, userID string) ([]*model.Event, error)
}

// Catalog runs the content-based candidate query.
type Catalog interface {
	FindCandidateEvents(ctx context.Context, types, subtypes, excludeIDs []string, today model.EventDate, limit int) ([]*model.Event, error)
}

// ModelClient requests ranked events from the external model service.
type ModelClient interface {
	Recommend(ctx context.Context, userID string, count int) ([]*model.Event, error)
}

// Result holds the three recommendation views returned to the caller.
// Combined has unique event IDs; on collision the content-based record wins.
type Result struct {
	ContentBased []*model.Event `json:"contentBased"`
	ModelBased   []*model.Event `json:"mlBased"`
	Combined     []*model.Event `json:"combined"`
	Message      string         `json:"message,omitempty"`
}

// Options sizes the two candidate sets.
type Options struct {
	// ContentLimit caps the content-based query result.
	ContentLimit int
	// ModelCount is the number of recommendations requested from the model.
	ModelCount int
	// Now overrides the clock; nil means time.Now. Tests use this to pin "today".
	Now func() time.Time
}

const (
	// DefaultContentLimit caps the content-based candidate set.
	DefaultContentLimit = 20
	// DefaultModelCount is requested from the model service.
	DefaultModelCount = 5
)

// Engine computes recommendations. It holds no mutable state; concurrent
// requests for different users share nothing.
type Engine struct {
	users   UserSource
	catalog Catalog
	model   ModelClient
	logger  *slog.Logger
	metrics metrics.Recorder

	contentLimit int
	modelCount   int
	now          func() time.Time
}

// NewEngine creates a recommendation engine.
func NewEngine(users UserSource, catalog Catalog, modelClient ModelClient, logger *slog.Logger, recorder metrics.Recorder, opts Options) *Engine {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if opts.ContentLimit <= 0 {
		opts.ContentLimit = DefaultContentLimit
	}
	if opts.ModelCount <= 0 {
		opts.ModelCount = DefaultModelCount
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		users:        users,
		catalog:      catalog,
		model:        modelClient,
		logger:       logger.With("component", "recommend.engine"),
		metrics:      recorder,
		contentLimit: opts.ContentLimit,
		modelCount:   opts.ModelCount,
		now:          opts.Now,
	}
}

// Recommend produces the three recommendation lists for the user.
//
// A user with no registration history short-circuits to an empty result with
// an explanatory message; neither the catalog nor the model service is
// queried. Model service failures of any kind degrade to an empty
// model-based list and never fail the request.
func (e *Engine) Recommend(ctx context.Context, userID string) (*Result, error) {
	start := time.Now()
	e.metrics.IncRecommendationRequest()

	user, err := e.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	registered, err := e.users.GetRegisteredEvents(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load registration history: %w", err)
	}

	if len(registered) == 0 {
		return &Result{
			ContentBased: []*model.Event{},
			ModelBased:   []*model.Event{},
			Combined:     []*model.Event{},
			Message:      NoSignalMessage,
		}, nil
	}

	profile := BuildProfile(registered)
	today := model.DateOf(e.now())

	// The catalog query and the model call are independent; run them
	// concurrently to cut latency. The model call carries its own timeout.
	var (
		wg           sync.WaitGroup
		contentBased []*model.Event
		contentErr   error
		modelBased   []*model.Event
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		contentBased, contentErr = e.catalog.FindCandidateEvents(
			ctx, profile.Types(), profile.Subtypes(), profile.Excluded(), today, e.contentLimit)
	}()
	go func() {
		defer wg.Done()
		modelBased = e.modelCandidates(ctx, userID, profile, today)
	}()
	wg.Wait()

	if contentErr != nil {
		return nil, fmt.Errorf("content-based query: %w", contentErr)
	}
	if contentBased == nil {
		contentBased = []*model.Event{}
	}

	combined := merge(contentBased, modelBased)

	e.metrics.ObserveContentResultSize(len(contentBased))
	e.metrics.ObserveModelResultSize(len(modelBased))
	e.metrics.ObserveRecommendationDuration(time.Since(start))

	e.logger.Debug("recommendations computed",
		"user_id", userID,
		"content_based", len(contentBased),
		"model_based", len(modelBased),
		"combined", len(combined),
	)

	return &Result{
		ContentBased: contentBased,
		ModelBased:   modelBased,
		Combined:     combined,
	}, nil
}

// modelCandidates calls the model service and filters its answer.
// Any failure resolves to an empty list: logged, counted, never propagated.
func (e *Engine) modelCandidates(ctx context.Context, userID string, profile *Profile, today model.EventDate) []*model.Event {
	recs, err := e.model.Recommend(ctx, userID, e.modelCount)
	if err != nil {
		e.logger.Warn("model service call failed, proceeding without model-based recommendations",
			"user_id", userID,
			"error", err,
		)
		e.metrics.IncModelFallback(fallbackReason(err))
		return []*model.Event{}
	}

	filtered := make([]*model.Event, 0, len(recs))
	for _, event := range recs {
		if profile.IsExcluded(event.EventID) {
			continue
		}
		if !event.Date.OnOrAfter(today) {
			continue
		}
		filtered = append(filtered, event)
	}
	return filtered
}

// merge builds the combined list keyed by event ID: all content-based
// entries first in order, then model-based entries whose ID is unseen, in
// order. On collision the content-based record is kept.
func merge(contentBased, modelBased []*model.Event) []*model.Event {
	seen := make(map[string]struct{}, len(contentBased)+len(modelBased))
	combined := make([]*model.Event, 0, len(contentBased)+len(modelBased))

	for _, event := range contentBased {
		if _, ok := seen[event.EventID]; ok {
			continue
		}
		seen[event.EventID] = struct{}{}
		combined = append(combined, event)
	}
	for _, event := range modelBased {
		if _, ok := seen[event.EventID]; ok {
			continue
		}
		seen[event.EventID] = struct{}{}
		combined = append(combined, event)
	}

	return combined
}

// fallbackReason classifies a model call failure for metrics.
func fallbackReason(err error) string {
	switch {
	case errors.Is(err, ErrModelMalformed):
		return "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "unavailable"
	}
}
