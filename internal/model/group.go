package model

import "time"

// Group represents a study group tied to a course.
// Members holds user record IDs.
type Group struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"groupId"`
	CourseName  string    `json:"courseName"`
	Description string    `json:"description,omitempty"`
	Members     []string  `json:"members,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember reports whether the user record ID is in the member list.
func (g *Group) HasMember(userRef string) bool {
	for _, ref := range g.Members {
		if ref == userRef {
			return true
		}
	}
	return false
}

// Message is a chat message posted to a group room.
type Message struct {
	ID         string    `json:"id"`
	GroupRef   string    `json:"-"`
	GroupID    string    `json:"groupId"`
	SenderRef  string    `json:"-"`
	SenderName string    `json:"sender,omitempty"`
	Body       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
