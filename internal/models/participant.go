package models

import (
	"time"
)

// Participant is a named drinker whose events are tallied
type Participant struct {
	// Name is the unique, lowercase name of the participant
	Name string

	// CreatedAt is when the participant was added to the registry
	CreatedAt time.Time
}
