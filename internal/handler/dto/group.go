package dto

import (
	"github.com/campushub/campushub/internal/model"
)

// CreateGroupRequest represents the request body for creating a study group.
type CreateGroupRequest struct {
	GroupID     string `json:"groupId"`
	CourseName  string `json:"courseName"`
	Description string `json:"description,omitempty"`
}

// GroupListResponse wraps the study group list.
type GroupListResponse struct {
	Data []*model.Group `json:"data"`
}

// PostMessageRequest represents the request body for posting a chat message.
type PostMessageRequest struct {
	Text string `json:"text"`
}

// MessageListResponse wraps a group's chat history.
type MessageListResponse struct {
	Data []*model.Message `json:"data"`
}
