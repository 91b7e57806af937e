package middleware

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Validation limits.
const (
	// MaxResourceIDLength is the maximum length for a client-assigned
	// identifier (event ID, organization ID, group ID).
	MaxResourceIDLength = 64

	// MinResourceIDLength is the minimum length for a client-assigned
	// identifier.
	MinResourceIDLength = 2

	// MaxUsernameLength is the maximum length for a username.
	MaxUsernameLength = 32

	// MinUsernameLength is the minimum length for a username.
	MinUsernameLength = 3
)

// Validation errors.
var (
	ErrResourceIDTooLong  = errors.New("identifier exceeds maximum length")
	ErrResourceIDTooShort = errors.New("identifier is too short")
	ErrResourceIDInvalid  = errors.New("identifier contains invalid characters")
	ErrResourceIDReserved = errors.New("identifier is reserved")
	ErrUsernameTooLong    = errors.New("username exceeds maximum length")
	ErrUsernameTooShort   = errors.New("username is too short")
	ErrUsernameInvalid    = errors.New("username contains invalid characters")
)

// ReservedIDs contains identifiers that cannot be used for events,
// organizations, or study groups. These are reserved for system routes
// and common paths.
var ReservedIDs = map[string]bool{
	// System routes
	"api":     true,
	"admin":   true,
	"healthz": true,
	"readyz":  true,
	"metrics": true,
	"static":  true,
	"assets":  true,
	"public":  true,
	"private": true,

	// Route segments that collide with sub-resources
	"register":        true,
	"withdraw":        true,
	"join":            true,
	"leave":           true,
	"messages":        true,
	"recommendations": true,

	// Common abuse targets
	"login":  true,
	"logout": true,
	"signup": true,
	"auth":   true,
	"me":     true,
}

// validResourceIDPattern matches valid identifier characters.
// Allowed: a-z, A-Z, 0-9, hyphen, underscore
var validResourceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validUsernamePattern matches valid username characters.
// Allowed: a-z, A-Z, 0-9, underscore, dot
var validUsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

// ValidateResourceID validates a client-assigned identifier for an event,
// organization, or study group.
func ValidateResourceID(id string) error {
	if len(id) > MaxResourceIDLength {
		return ErrResourceIDTooLong
	}

	if len(id) < MinResourceIDLength {
		return ErrResourceIDTooShort
	}

	if !validResourceIDPattern.MatchString(id) {
		return ErrResourceIDInvalid
	}

	// Check reserved identifiers (case-insensitive)
	if ReservedIDs[strings.ToLower(id)] {
		return ErrResourceIDReserved
	}

	return nil
}

// ValidateUsername validates a username for signup and profile updates.
// Non-ASCII characters are rejected to prevent homograph impersonation.
func ValidateUsername(username string) error {
	if len(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	if len(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}

	for _, r := range username {
		if r > unicode.MaxASCII {
			return ErrUsernameInvalid
		}
	}

	if !validUsernamePattern.MatchString(username) {
		return ErrUsernameInvalid
	}

	return nil
}
