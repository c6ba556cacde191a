package tally

// TallyError is a custom error type for tally errors
type TallyError string

// Error implements the error interface
func (e TallyError) Error() string {
	return string(e)
}

const (
	ErrNoUndoAvailable      TallyError = "nothing to undo"
	ErrDuplicateParticipant TallyError = "participant already exists"
	ErrInvalidParticipant   TallyError = "participant name must be 1 to 20 characters"
	ErrStorageUnavailable   TallyError = "tally storage unavailable"
	ErrNilConfig            TallyError = "config cannot be nil"
	ErrNilRepository        TallyError = "tally repository cannot be nil"
	ErrNilClock             TallyError = "clock cannot be nil"
	ErrNilUUIDGenerator     TallyError = "UUID generator cannot be nil"
	ErrNilLogger            TallyError = "logger cannot be nil"
)
