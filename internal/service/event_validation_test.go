package service

import (
	"context"
	"errors"
	"testing"
)

func TestCreateEventValidationErrors(t *testing.T) {
	svc := &EventService{}

	tests := []struct {
		name    string
		input   CreateEventInput
		wantErr error
	}{
		{
			name: "missing organization",
			input: CreateEventInput{
				EventID: "hackathon-2025",
				Title:   "Hackathon",
				Date:    "20-11-2025",
			},
			wantErr: ErrOrganizationRequired,
		},
		{
			name: "iso date",
			input: CreateEventInput{
				EventID:        "hackathon-2025",
				Title:          "Hackathon",
				Date:           "2025-11-20",
				OrganizationID: "cs-society",
			},
			wantErr: ErrInvalidDate,
		},
		{
			name: "empty date",
			input: CreateEventInput{
				EventID:        "hackathon-2025",
				Title:          "Hackathon",
				OrganizationID: "cs-society",
			},
			wantErr: ErrInvalidDate,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
