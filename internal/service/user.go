package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/model"
	"github.com/campushub/campushub/internal/repository"
)

// User service errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password too short")
)

const minPasswordLength = 8

// UserService handles account and profile business logic.
type UserService struct {
	repo   *repository.Repository
	tokens *auth.TokenManager
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, tokens *auth.TokenManager) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
	}
}

// SignUpInput defines input for creating an account.
type SignUpInput struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	University     string
	UniversityYear string
	Degree         string
	Bio            string
}

// SignUp creates an account and issues a session token.
func (s *UserService) SignUp(ctx context.Context, input SignUpInput) (*model.User, string, error) {
	if input.FullName == "" || input.Username == "" || input.Email == "" ||
		input.Password == "" || input.University == "" || input.UniversityYear == "" ||
		input.Degree == "" {
		return nil, "", ErrMissingFields
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, "", ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:               newID(),
		FullName:         input.FullName,
		Username:         input.Username,
		Email:            input.Email,
		PasswordHash:     hash,
		University:       input.University,
		UniversityYear:   input.UniversityYear,
		Degree:           input.Degree,
		Bio:              input.Bio,
		RegisteredEvents: []string{},
		JoinedGroups:     []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, "", ErrEmailExists
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, "", ErrUsernameExists
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a session token.
// A missing account and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// ProfileView is a user's account with registrations and groups resolved.
type ProfileView struct {
	User             *model.User
	RegisteredEvents []*model.Event
	JoinedGroups     []*model.Group
}

// GetMe loads the caller's profile with registration references resolved to
// event records and group references resolved to groups.
func (s *UserService) GetMe(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	events, err := s.repo.GetRegisteredEvents(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve registered events: %w", err)
	}

	groups, err := s.repo.GetGroupsByRefs(ctx, user.JoinedGroups)
	if err != nil {
		return nil, fmt.Errorf("resolve joined groups: %w", err)
	}

	return &ProfileView{
		User:             user,
		RegisteredEvents: events,
		JoinedGroups:     groups,
	}, nil
}

// UpdateProfileInput defines input for profile updates.
// Empty fields keep their current value.
type UpdateProfileInput struct {
	FullName       string
	Username       string
	University     string
	UniversityYear string
	Degree         string
	Bio            string
}

// UpdateProfile applies a partial profile update and returns the new state.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.University != "" {
		user.University = input.University
	}
	if input.UniversityYear != "" {
		user.UniversityYear = input.UniversityYear
	}
	if input.Degree != "" {
		user.Degree = input.Degree
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}

	if err := s.repo.UpdateUserProfile(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, ErrUsernameExists
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return user, nil
}
