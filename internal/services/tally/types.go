package tally

import (
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/beertally/internal/common/clock"
	"github.com/KirkDiggler/beertally/internal/common/uuid"
	"github.com/KirkDiggler/beertally/internal/models"
	tallyRepo "github.com/KirkDiggler/beertally/internal/repositories/tally"
)

// Config holds configuration for the tally service
type Config struct {
	// Repository dependencies
	Repository tallyRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zap.Logger

	// Location decides when a day ends. Nil means local time.
	Location *time.Location

	// DefaultParticipants seed an empty registry
	DefaultParticipants []string
}

// GetSnapshotInput contains parameters for reading the tally
type GetSnapshotInput struct{}

// GetSnapshotOutput contains the current tally
type GetSnapshotOutput struct {
	Snapshot *models.Snapshot
}

// LogDrinkInput contains parameters for logging a drink
type LogDrinkInput struct {
	Participant string

	// Photo is an opaque image payload such as a data URL; empty means no photo
	Photo string
}

// LogDrinkOutput contains the result of logging a drink
type LogDrinkOutput struct {
	Snapshot *models.Snapshot

	// PhotoID is set when a photo was stored
	PhotoID string
}

// UndoInput contains parameters for undoing the last drink
type UndoInput struct{}

// UndoOutput contains the result of an undo
type UndoOutput struct {
	Snapshot *models.Snapshot

	// Participant whose drink was undone
	Participant string
}

// AddParticipantInput contains parameters for adding a participant
type AddParticipantInput struct {
	Name string
}

// AddParticipantOutput contains the result of adding a participant
type AddParticipantOutput struct {
	Snapshot *models.Snapshot

	// Participant is the normalized name that was added
	Participant string
}

// RemoveParticipantInput contains parameters for removing a participant
type RemoveParticipantInput struct {
	Name string
}

// RemoveParticipantOutput contains the result of removing a participant
type RemoveParticipantOutput struct {
	Snapshot *models.Snapshot

	// Participant is the normalized name that was removed
	Participant string
}

// ResetAllInput contains parameters for resetting every count
type ResetAllInput struct{}

// ResetAllOutput contains the result of a full reset
type ResetAllOutput struct {
	Snapshot *models.Snapshot
}

// ResetDailyInput contains parameters for resetting today's counts
type ResetDailyInput struct{}

// ResetDailyOutput contains the result of a daily reset
type ResetDailyOutput struct {
	Snapshot *models.Snapshot
}

// ListPhotosInput contains parameters for listing photos
type ListPhotosInput struct{}

// ListPhotosOutput contains today's photos
type ListPhotosOutput struct {
	Date   string
	Photos []*models.DrinkPhoto
}
