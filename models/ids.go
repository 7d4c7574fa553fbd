package models

import "github.com/google/uuid"

// NewID returns a fresh string id. Entities get their id in the handler that
// creates them, never in a persistence hook.
func NewID() string {
	return uuid.New().String()
}
