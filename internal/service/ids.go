// Package service provides business logic for the application.
package service

import "github.com/oklog/ulid/v2"

// newID generates a ULID for storage record IDs.
// ULIDs sort by creation time, which keeps index pages warm.
func newID() string {
	return ulid.Make().String()
}
