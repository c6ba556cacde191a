package tally

import (
	"errors"
	"time"

	"github.com/KirkDiggler/beertally/internal/models"
)

var (
	// ErrParticipantExists is returned when adding a participant that is already registered
	ErrParticipantExists = errors.New("participant already exists")

	// ErrNothingToUndo is returned when there is no last action that can be undone
	ErrNothingToUndo = errors.New("no action to undo")
)

// EnsureParticipantsInput contains the default participants to create
type EnsureParticipantsInput struct {
	// Names are created in order if the registry is empty
	Names []string

	// CreatedAt is the creation time of the first participant
	CreatedAt time.Time
}

// EnsureParticipantsOutput contains the result of ensuring participants
type EnsureParticipantsOutput struct {
	// Created is true if the defaults were written
	Created bool
}

// RolloverInput contains parameters for a day rollover
type RolloverInput struct {
	Today string
}

// RolloverOutput contains the result of a day rollover
type RolloverOutput struct {
	// RolledOver is false if the day marker was already today
	RolledOver bool

	// PreviousDate is the day marker before the rollover, empty if unset
	PreviousDate string
}

// GetStateInput contains parameters for reading the tally state
type GetStateInput struct {
	Today string
}

// GetStateOutput contains the persisted tally state
type GetStateOutput struct {
	// Participants are ordered by creation time
	Participants []*models.Participant

	// AllTimeCounts holds every persisted all-time counter
	AllTimeCounts map[string]int

	// DailyCounts holds today's persisted daily counters
	DailyCounts map[string]int

	// LastAction is nil if no action was ever recorded
	LastAction *models.LastAction
}

// LogDrinkInput contains parameters for logging a drink
type LogDrinkInput struct {
	Participant string
	Today       string

	// Photo is optional
	Photo *models.DrinkPhoto
}

// UndoInput contains parameters for undoing the last action
type UndoInput struct {
	Today string
}

// UndoOutput contains the result of undoing the last action
type UndoOutput struct {
	// LastAction is the action that was undone
	LastAction *models.LastAction

	// PhotoID is the photo that was removed, empty if none
	PhotoID string
}

// AddParticipantInput contains parameters for adding a participant
type AddParticipantInput struct {
	Participant *models.Participant
}

// RemoveParticipantInput contains parameters for removing a participant
type RemoveParticipantInput struct {
	Name string
}

// RemoveParticipantOutput contains the result of removing a participant
type RemoveParticipantOutput struct {
	// Removed is false if the participant was not registered
	Removed bool
}

// ResetAllInput contains parameters for resetting all counts
type ResetAllInput struct {
	Today string
}

// ResetDailyInput contains parameters for resetting today's counts
type ResetDailyInput struct {
	Today string
}

// ListPhotosInput contains parameters for listing photos
type ListPhotosInput struct {
	Date string
}

// ListPhotosOutput contains the photos for a day
type ListPhotosOutput struct {
	Photos []*models.DrinkPhoto
}
