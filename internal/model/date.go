// Package model defines domain entities for the application.
package model

import (
	"encoding/json"
	"errors"
	"time"
)

// DateLayout is the wire format for event dates: two-digit day,
// two-digit month, four-digit year.
const DateLayout = "02-01-2006"

// ErrInvalidDate indicates a date string is not in DD-MM-YYYY format.
var ErrInvalidDate = errors.New("invalid date format, expected DD-MM-YYYY")

// EventDate is a calendar day with no time component and no time-zone
// conversion. It marshals to and from the DD-MM-YYYY wire format.
type EventDate struct {
	day time.Time
}

// ParseEventDate parses a strict DD-MM-YYYY string.
func ParseEventDate(s string) (EventDate, error) {
	if len(s) != len(DateLayout) {
		return EventDate{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return EventDate{}, ErrInvalidDate
	}
	// Reject inputs that parse but don't round-trip (e.g. "2-11-2024 ").
	if t.Format(DateLayout) != s {
		return EventDate{}, ErrInvalidDate
	}
	return EventDate{day: t}, nil
}

// DateOf truncates ts to its calendar day.
func DateOf(ts time.Time) EventDate {
	return EventDate{day: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() EventDate {
	return DateOf(time.Now())
}

// IsZero reports whether the date is unset.
func (d EventDate) IsZero() bool {
	return d.day.IsZero()
}

// String formats the date in the DD-MM-YYYY wire format.
func (d EventDate) String() string {
	return d.day.Format(DateLayout)
}

// Time returns the day at midnight UTC, for storage as a DATE column.
func (d EventDate) Time() time.Time {
	return d.day
}

// OnOrAfter reports whether d falls on other's calendar day or later.
func (d EventDate) OnOrAfter(other EventDate) bool {
	return !d.day.Before(other.day)
}

// Equal reports whether two dates fall on the same calendar day.
func (d EventDate) Equal(other EventDate) bool {
	return d.day.Equal(other.day)
}

// MarshalJSON encodes the date as a DD-MM-YYYY string.
func (d EventDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a DD-MM-YYYY string.
func (d *EventDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseEventDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
