package service

import (
	"context"
	"errors"
	"testing"
)

func validSignUpInput() SignUpInput {
	return SignUpInput{
		FullName:       "Ada Lovelace",
		Username:       "ada",
		Email:          "ada@example.edu",
		Password:       "long-enough-password",
		University:     "Example University",
		UniversityYear: "2",
		Degree:         "Mathematics",
	}
}

func TestSignUpValidationErrors(t *testing.T) {
	svc := &UserService{}

	tests := []struct {
		name    string
		mutate  func(*SignUpInput)
		wantErr error
	}{
		{
			name:    "missing full name",
			mutate:  func(in *SignUpInput) { in.FullName = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing username",
			mutate:  func(in *SignUpInput) { in.Username = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing email",
			mutate:  func(in *SignUpInput) { in.Email = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing password",
			mutate:  func(in *SignUpInput) { in.Password = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing university",
			mutate:  func(in *SignUpInput) { in.University = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing year",
			mutate:  func(in *SignUpInput) { in.UniversityYear = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing degree",
			mutate:  func(in *SignUpInput) { in.Degree = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "bad email",
			mutate:  func(in *SignUpInput) { in.Email = "not-an-email" },
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "short password",
			mutate:  func(in *SignUpInput) { in.Password = "short" },
			wantErr: ErrPasswordTooShort,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			input := validSignUpInput()
			test.mutate(&input)

			_, _, err := svc.SignUp(context.Background(), input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestLoginValidationErrors(t *testing.T) {
	svc := &UserService{}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "password123"},
		{"missing password", "ada@example.edu", ""},
		{"both missing", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), test.email, test.password)
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}
