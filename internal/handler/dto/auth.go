// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/campushub/campushub/internal/model"
)

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	FullName       string `json:"fullName"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	University     string `json:"university"`
	UniversityYear string `json:"universityYear"`
	Degree         string `json:"degree"`
	Bio            string `json:"bio,omitempty"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued session token and the account it belongs to.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// UpdateProfileRequest represents a partial profile update.
// Omitted fields keep their current value.
type UpdateProfileRequest struct {
	FullName       string `json:"fullName,omitempty"`
	Username       string `json:"username,omitempty"`
	University     string `json:"university,omitempty"`
	UniversityYear string `json:"universityYear,omitempty"`
	Degree         string `json:"degree,omitempty"`
	Bio            string `json:"bio,omitempty"`
}

// ProfileResponse is the caller's account with references resolved.
type ProfileResponse struct {
	User             *model.User    `json:"user"`
	RegisteredEvents []*model.Event `json:"registeredEvents"`
	JoinedGroups     []*model.Group `json:"joinedGroups"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
