package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/handler/dto"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/service"
)

// GroupHandler handles HTTP requests for study groups and their chat rooms.
type GroupHandler struct {
	svc    *service.GroupService
	logger *slog.Logger
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(svc *service.GroupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/v1/groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupListResponse{Data: groups})
}

// Get handles GET /api/v1/groups/{groupId}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Group ID is required")
		return
	}

	group, err := h.svc.Get(r.Context(), groupID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

// Create handles POST /api/v1/groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateResourceID(req.GroupID); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_GROUP_ID", err.Error())
		return
	}

	input := service.CreateGroupInput{
		GroupID:     req.GroupID,
		CourseName:  req.CourseName,
		Description: req.Description,
	}

	group, err := h.svc.Create(r.Context(), input, userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("group_created",
		"group_id", group.GroupID,
		"creator_id", userID,
	)

	writeJSON(w, http.StatusCreated, group)
}

// Join handles POST /api/v1/groups/{groupId}/join.
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.Join(r.Context(), groupID, userID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("group_joined", "group_id", groupID, "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}

// Leave handles POST /api/v1/groups/{groupId}/leave.
func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.Leave(r.Context(), groupID, userID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("group_left", "group_id", groupID, "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}

// Messages handles GET /api/v1/groups/{groupId}/messages.
func (h *GroupHandler) Messages(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	messages, err := h.svc.Messages(r.Context(), groupID, userID, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageListResponse{Data: messages})
}

// Post handles POST /api/v1/groups/{groupId}/messages.
func (h *GroupHandler) Post(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	msg, err := h.svc.Post(r.Context(), groupID, session.UserID, session.Username, req.Text)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("message_posted",
		"group_id", groupID,
		"message_id", msg.ID,
	)

	writeJSON(w, http.StatusCreated, msg)
}

// handleServiceError maps service errors to HTTP responses.
func (h *GroupHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		h.writeError(w, http.StatusNotFound, "GROUP_NOT_FOUND", "Group not found")
	case errors.Is(err, service.ErrGroupExists):
		h.writeError(w, http.StatusConflict, "GROUP_ID_TAKEN", "Group ID already exists")
	case errors.Is(err, service.ErrAlreadyMember):
		h.writeError(w, http.StatusConflict, "ALREADY_MEMBER", "User is already a member of this group")
	case errors.Is(err, service.ErrNotMember):
		h.writeError(w, http.StatusForbidden, "NOT_MEMBER", "User is not a member of this group")
	case errors.Is(err, service.ErrEmptyMessage):
		h.writeError(w, http.StatusBadRequest, "EMPTY_MESSAGE", "Message text is required")
	case errors.Is(err, service.ErrMissingFields):
		h.writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Required fields are missing")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *GroupHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
