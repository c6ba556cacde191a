package tally

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/beertally/internal/repositories/tally Repository

import (
	"context"
)

// Repository defines persistence for the tally state. Every method that writes more
// than one record does so atomically.
type Repository interface {
	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error

	// EnsureParticipants materializes the given participants if the registry is empty
	EnsureParticipants(ctx context.Context, input *EnsureParticipantsInput) (*EnsureParticipantsOutput, error)

	// Rollover purges day-scoped data that is not from today and moves the day marker
	Rollover(ctx context.Context, input *RolloverInput) (*RolloverOutput, error)

	// GetState reads participants, counters and the last action
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)

	// LogDrink increments a participant's counters and records the last action
	LogDrink(ctx context.Context, input *LogDrinkInput) error

	// Undo reverts the last action if it can still be undone
	Undo(ctx context.Context, input *UndoInput) (*UndoOutput, error)

	// AddParticipant adds a participant to the registry
	AddParticipant(ctx context.Context, input *AddParticipantInput) error

	// RemoveParticipant removes a participant and all of their counters
	RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error)

	// ResetAll zeroes all-time counts, clears today's data and the last action
	ResetAll(ctx context.Context, input *ResetAllInput) error

	// ResetDaily clears today's counts and photos
	ResetDaily(ctx context.Context, input *ResetDailyInput) error

	// ListPhotos returns the photos for a day, most recent first
	ListPhotos(ctx context.Context, input *ListPhotosInput) (*ListPhotosOutput, error)
}
