package domain

import "github.com/google/uuid"

// NewID returns a fresh node identifier. IDs only need to be unique
// within their sibling collection, but global uniqueness keeps
// selection addressing simple, so we use UUIDs everywhere.
func NewID() string {
	return uuid.NewString()
}
