package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/handler/dto"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/recommend"
	"github.com/campushub/campushub/internal/service"
)

// EventHandler handles HTTP requests for the event catalog.
type EventHandler struct {
	svc    *service.EventService
	engine *recommend.Engine
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService, engine *recommend.Engine, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		svc:    svc,
		engine: engine,
		logger: logger,
	}
}

// List handles GET /api/v1/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EventListResponse{Data: events})
}

// Get handles GET /api/v1/events/{eventId}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	if eventID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Event ID is required")
		return
	}

	event, err := h.svc.Get(r.Context(), eventID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Create handles POST /api/v1/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateResourceID(req.EventID); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_EVENT_ID", err.Error())
		return
	}

	input := service.CreateEventInput{
		EventID:        req.EventID,
		Title:          req.Title,
		Image:          req.Image,
		Summary:        req.Summary,
		Description:    req.Description,
		Date:           req.Date,
		Time:           req.Time,
		OrganizationID: req.OrganizationID,
		Type:           req.Type,
		Subtype:        req.Subtype,
		Location:       req.Location,
		HostName:       req.HostName,
	}

	event, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_created",
		"event_id", event.EventID,
		"type", event.Type,
	)

	writeJSON(w, http.StatusCreated, event)
}

// Update handles PUT /api/v1/events/{eventId}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	if eventID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Event ID is required")
		return
	}

	var req dto.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateEventInput{
		Title:          req.Title,
		Image:          req.Image,
		Summary:        req.Summary,
		Description:    req.Description,
		Date:           req.Date,
		Time:           req.Time,
		OrganizationID: req.OrganizationID,
		Type:           req.Type,
		Subtype:        req.Subtype,
		Location:       req.Location,
		HostName:       req.HostName,
	}

	event, err := h.svc.Update(r.Context(), eventID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_updated", "event_id", event.EventID)

	writeJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/v1/events/{eventId}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	if eventID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Event ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), eventID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_deleted", "event_id", eventID)

	w.WriteHeader(http.StatusNoContent)
}

// Register handles POST /api/v1/events/{eventId}/register.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.Register(r.Context(), eventID, userID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_registration",
		"event_id", eventID,
		"user_id", userID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// Withdraw handles POST /api/v1/events/{eventId}/withdraw.
func (h *EventHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.Withdraw(r.Context(), eventID, userID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_withdrawal",
		"event_id", eventID,
		"user_id", userID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// Recommendations handles GET /api/v1/events/recommendations.
// The result always carries all three lists; the model list is empty when
// the external model is unreachable or returns garbage.
func (h *EventHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	result, err := h.engine.Recommend(r.Context(), userID)
	if err != nil {
		if errors.Is(err, recommend.ErrUserNotFound) {
			h.writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		h.logger.Error("recommendation_failed", "user_id", userID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.RecommendationsResponse{
		ContentBased: result.ContentBased,
		ModelBased:   result.ModelBased,
		Combined:     result.Combined,
		Message:      result.Message,
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *EventHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		h.writeError(w, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
	case errors.Is(err, service.ErrEventExists):
		h.writeError(w, http.StatusConflict, "EVENT_ID_TAKEN", "Event ID already exists")
	case errors.Is(err, service.ErrOrganizationRequired):
		h.writeError(w, http.StatusBadRequest, "ORGANIZATION_REQUIRED", "Organization ID is required")
	case errors.Is(err, service.ErrOrganizationNotFound):
		h.writeError(w, http.StatusNotFound, "ORGANIZATION_NOT_FOUND", "Organization not found")
	case errors.Is(err, service.ErrInvalidDate):
		h.writeError(w, http.StatusBadRequest, "INVALID_DATE", "Date must use DD-MM-YYYY format")
	case errors.Is(err, service.ErrAlreadyRegistered):
		h.writeError(w, http.StatusConflict, "ALREADY_REGISTERED", "User already registered for this event")
	case errors.Is(err, service.ErrNotRegistered):
		h.writeError(w, http.StatusConflict, "NOT_REGISTERED", "User is not registered for this event")
	case errors.Is(err, service.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *EventHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
