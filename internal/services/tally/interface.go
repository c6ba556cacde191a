package tally

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/beertally/internal/services/tally Service

import "context"

// Service is the shared beer tally. Every operation first brings the stored day up
// to date and returns the refreshed snapshot.
type Service interface {
	// GetSnapshot returns the current tally
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*GetSnapshotOutput, error)

	// LogDrink counts one drink for a participant, optionally with a photo
	LogDrink(ctx context.Context, input *LogDrinkInput) (*LogDrinkOutput, error)

	// Undo reverts the most recent drink, once
	Undo(ctx context.Context, input *UndoInput) (*UndoOutput, error)

	// AddParticipant registers a new participant
	AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error)

	// RemoveParticipant deletes a participant and their counts
	RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error)

	// ResetAll zeroes every count and cancels any pending undo
	ResetAll(ctx context.Context, input *ResetAllInput) (*ResetAllOutput, error)

	// ResetDaily clears today's counts and photos
	ResetDaily(ctx context.Context, input *ResetDailyInput) (*ResetDailyOutput, error)

	// ListPhotos returns today's photos, most recent first
	ListPhotos(ctx context.Context, input *ListPhotosInput) (*ListPhotosOutput, error)

	// Ping reports whether the storage is reachable
	Ping(ctx context.Context) error
}
