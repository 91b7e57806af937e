package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushub/campushub/internal/model"
	"github.com/campushub/campushub/internal/repository"
)

// Group service errors.
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrGroupExists   = errors.New("group ID already exists")
	ErrAlreadyMember = errors.New("user is already a member of this group")
	ErrNotMember     = errors.New("user is not a member of this group")
	ErrEmptyMessage  = errors.New("message text is required")
)

// messagePublishTimeout bounds the async room fan-out.
const messagePublishTimeout = 2 * time.Second

// defaultMessageLimit caps a message history page.
const defaultMessageLimit = 50

// RoomPublisher fans a persisted message out to its group's room channel.
type RoomPublisher interface {
	PublishMessage(ctx context.Context, msg *model.Message) error
}

// GroupService handles study group membership and chat history.
type GroupService struct {
	repo   *repository.Repository
	rooms  RoomPublisher
	logger *slog.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(repo *repository.Repository, rooms RoomPublisher, logger *slog.Logger) *GroupService {
	return &GroupService{
		repo:   repo,
		rooms:  rooms,
		logger: logger.With("component", "service.group"),
	}
}

// List returns all study groups.
func (s *GroupService) List(ctx context.Context) ([]*model.Group, error) {
	return s.repo.ListGroups(ctx)
}

// Get returns a single group by its human-assigned identifier.
func (s *GroupService) Get(ctx context.Context, groupID string) (*model.Group, error) {
	group, err := s.repo.GetGroupByGroupID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return group, nil
}

// CreateGroupInput defines input for creating a study group.
type CreateGroupInput struct {
	GroupID     string
	CourseName  string
	Description string
}

// Create adds a new study group with the creator as first member.
func (s *GroupService) Create(ctx context.Context, input CreateGroupInput, creatorID string) (*model.Group, error) {
	if input.GroupID == "" || input.CourseName == "" {
		return nil, ErrMissingFields
	}

	now := time.Now().UTC()
	group := &model.Group{
		ID:          newID(),
		GroupID:     input.GroupID,
		CourseName:  input.CourseName,
		Description: input.Description,
		Members:     []string{creatorID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, repository.ErrGroupExists) {
			return nil, ErrGroupExists
		}
		return nil, fmt.Errorf("create group: %w", err)
	}

	if err := s.repo.AddGroupMember(ctx, group.ID, creatorID); err != nil {
		return nil, fmt.Errorf("record creator membership: %w", err)
	}

	return group, nil
}

// Join adds the user to the group's member list and records the group on
// the user row.
func (s *GroupService) Join(ctx context.Context, groupID, userID string) error {
	group, err := s.Get(ctx, groupID)
	if err != nil {
		return err
	}

	if group.HasMember(userID) {
		return ErrAlreadyMember
	}

	if err := s.repo.AddGroupMember(ctx, group.ID, userID); err != nil {
		return fmt.Errorf("join group: %w", err)
	}
	return nil
}

// Leave removes the user from the group's member list.
func (s *GroupService) Leave(ctx context.Context, groupID, userID string) error {
	group, err := s.Get(ctx, groupID)
	if err != nil {
		return err
	}

	if !group.HasMember(userID) {
		return ErrNotMember
	}

	if err := s.repo.RemoveGroupMember(ctx, group.ID, userID); err != nil {
		return fmt.Errorf("leave group: %w", err)
	}
	return nil
}

// Messages returns the group's recent chat history in ascending time order.
// Only members can read the history.
func (s *GroupService) Messages(ctx context.Context, groupID, userID string, limit int) ([]*model.Message, error) {
	group, err := s.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}

	if limit <= 0 || limit > defaultMessageLimit {
		limit = defaultMessageLimit
	}

	return s.repo.ListMessagesByGroup(ctx, group.ID, limit)
}

// Post persists a message and fans it out to the group's room channel.
// The fan-out is asynchronous; a publish failure is logged, not surfaced
// (the message is already stored).
func (s *GroupService) Post(ctx context.Context, groupID, userID, senderName, text string) (*model.Message, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	group, err := s.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}

	msg := &model.Message{
		ID:         newID(),
		GroupRef:   group.ID,
		GroupID:    group.GroupID,
		SenderRef:  userID,
		SenderName: senderName,
		Body:       text,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.InsertMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), messagePublishTimeout)
		defer cancel()

		if err := s.rooms.PublishMessage(pubCtx, msg); err != nil {
			s.logger.Warn("failed to publish message to room",
				"group_id", msg.GroupID,
				"message_id", msg.ID,
				"error", err,
			)
		}
	}()

	return msg, nil
}
