package messaging

import "math/rand"

// Operation names a tally operation for messages
type Operation string

const (
	OperationSnapshot          Operation = "snapshot"
	OperationLogDrink          Operation = "log_drink"
	OperationUndo              Operation = "undo"
	OperationAddParticipant    Operation = "add_participant"
	OperationRemoveParticipant Operation = "remove_participant"
	OperationResetAll          Operation = "reset_all"
	OperationResetDaily        Operation = "reset_daily"
	OperationListPhotos        Operation = "list_photos"
)

// Config holds configuration for the messaging service
type Config struct {
	// Rand picks between message variants. Nil seeds one from the current time.
	Rand *rand.Rand
}

// GetDrinkMessageInput contains parameters for a drink message
type GetDrinkMessageInput struct {
	Participant string

	// DailyCount is the participant's count today including this drink
	DailyCount int

	WithPhoto bool
}

// GetDrinkMessageOutput contains a drink message
type GetDrinkMessageOutput struct {
	Title   string
	Message string
}

// GetUndoMessageInput contains parameters for an undo message
type GetUndoMessageInput struct {
	Participant string
}

// GetUndoMessageOutput contains an undo message
type GetUndoMessageOutput struct {
	Title   string
	Message string
}

// GetParticipantMessageInput contains parameters for a participant message
type GetParticipantMessageInput struct {
	Participant string

	// Removed is false when the participant was added
	Removed bool
}

// GetParticipantMessageOutput contains a participant message
type GetParticipantMessageOutput struct {
	Title   string
	Message string
}

// GetResetMessageInput contains parameters for a reset message
type GetResetMessageInput struct {
	// Daily is true for a reset of today's counts only
	Daily bool
}

// GetResetMessageOutput contains a reset message
type GetResetMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for an error message
type GetErrorMessageInput struct {
	Operation Operation

	// Participant is the name the operation was for, if any
	Participant string

	Err error
}

// GetErrorMessageOutput contains an error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
}
