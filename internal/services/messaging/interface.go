package messaging

import "context"

// Service turns tally results into short human-readable messages
type Service interface {
	// GetDrinkMessage returns a cheer for a logged drink
	GetDrinkMessage(ctx context.Context, input *GetDrinkMessageInput) (*GetDrinkMessageOutput, error)

	// GetUndoMessage returns a message for an undone drink
	GetUndoMessage(ctx context.Context, input *GetUndoMessageInput) (*GetUndoMessageOutput, error)

	// GetParticipantMessage returns a message for an added or removed participant
	GetParticipantMessage(ctx context.Context, input *GetParticipantMessageInput) (*GetParticipantMessageOutput, error)

	// GetResetMessage returns a message for a full or daily reset
	GetResetMessage(ctx context.Context, input *GetResetMessageInput) (*GetResetMessageOutput, error)

	// GetErrorMessage describes which operation failed and for whom
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
