package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/handler/dto"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/service"
)

// AuthHandler handles HTTP requests for accounts and sessions.
type AuthHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateUsername(req.Username); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_USERNAME", err.Error())
		return
	}

	input := service.SignUpInput{
		FullName:       req.FullName,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		University:     req.University,
		UniversityYear: req.UniversityYear,
		Degree:         req.Degree,
		Bio:            req.Bio,
	}

	user, token, err := h.svc.SignUp(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_signed_up",
		"user_id", user.ID,
		"username", user.Username,
	)

	writeJSON(w, http.StatusCreated, dto.AuthResponse{Token: token, User: user})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.AuthResponse{Token: token, User: user})
}

// Me handles GET /api/v1/users/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	profile, err := h.svc.GetMe(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		User:             profile.User,
		RegisteredEvents: profile.RegisteredEvents,
		JoinedGroups:     profile.JoinedGroups,
	})
}

// UpdateProfile handles PUT /api/v1/users/me.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Username != "" {
		if err := middleware.ValidateUsername(req.Username); err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_USERNAME", err.Error())
			return
		}
	}

	input := service.UpdateProfileInput{
		FullName:       req.FullName,
		Username:       req.Username,
		University:     req.University,
		UniversityYear: req.UniversityYear,
		Degree:         req.Degree,
		Bio:            req.Bio,
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("profile_updated", "user_id", user.ID)

	writeJSON(w, http.StatusOK, user)
}

// handleServiceError maps service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		h.writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Required fields are missing")
	case errors.Is(err, service.ErrInvalidEmail):
		h.writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Email address is invalid")
	case errors.Is(err, service.ErrPasswordTooShort):
		h.writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "Password does not meet the minimum length")
	case errors.Is(err, service.ErrEmailExists):
		h.writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, service.ErrUsernameExists):
		h.writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		h.writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, service.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *AuthHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
