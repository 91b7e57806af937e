package model

import "time"

// User represents a student account.
// RegisteredEvents holds internal event record IDs in registration order;
// references are unique per user.
type User struct {
	ID               string    `json:"id"`
	FullName         string    `json:"fullName"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	University       string    `json:"university"`
	UniversityYear   string    `json:"universityYear"`
	Degree           string    `json:"degree"`
	Bio              string    `json:"bio,omitempty"`
	RegisteredEvents []string  `json:"-"`
	JoinedGroups     []string  `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasRegistered reports whether the user already holds a reference to the
// given event record.
func (u *User) HasRegistered(eventRef string) bool {
	for _, ref := range u.RegisteredEvents {
		if ref == eventRef {
			return true
		}
	}
	return false
}
