package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/handler/dto"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/service"
)

// OrganizationHandler handles HTTP requests for organizations.
type OrganizationHandler struct {
	svc    *service.OrganizationService
	logger *slog.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(svc *service.OrganizationService, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/v1/organizations.
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OrganizationListResponse{Data: orgs})
}

// Get handles GET /api/v1/organizations/{organizationId}.
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "organizationId")
	if orgID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Organization ID is required")
		return
	}

	org, err := h.svc.Get(r.Context(), orgID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// Create handles POST /api/v1/organizations.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateResourceID(req.OrganizationID); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_ORGANIZATION_ID", err.Error())
		return
	}

	input := service.CreateOrganizationInput{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Image:          req.Image,
		Description:    req.Description,
		Location:       req.Location,
		Type:           req.Type,
		Subtype:        req.Subtype,
	}

	org, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("organization_created", "organization_id", org.OrganizationID)

	writeJSON(w, http.StatusCreated, org)
}

// Update handles PUT /api/v1/organizations/{organizationId}.
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "organizationId")
	if orgID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Organization ID is required")
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateOrganizationInput{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		Subtype:     req.Subtype,
	}

	org, err := h.svc.Update(r.Context(), orgID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("organization_updated", "organization_id", org.OrganizationID)

	writeJSON(w, http.StatusOK, org)
}

// Delete handles DELETE /api/v1/organizations/{organizationId}.
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "organizationId")
	if orgID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Organization ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), orgID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("organization_deleted", "organization_id", orgID)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *OrganizationHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOrganizationNotFound):
		h.writeError(w, http.StatusNotFound, "ORGANIZATION_NOT_FOUND", "Organization not found")
	case errors.Is(err, service.ErrOrganizationExists):
		h.writeError(w, http.StatusConflict, "ORGANIZATION_ID_TAKEN", "Organization ID already exists")
	case errors.Is(err, service.ErrOrganizationHasEvents):
		h.writeError(w, http.StatusConflict, "ORGANIZATION_HAS_EVENTS", "Organization still has events")
	case errors.Is(err, service.ErrMissingFields):
		h.writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Required fields are missing")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *OrganizationHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
