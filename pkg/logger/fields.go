package logger

// Field names shared by every log line
const (
	FieldService     = "service"
	FieldOperation   = "operation"
	FieldParticipant = "participant"
	FieldDate        = "date"
	FieldPhotoID     = "photo_id"
	FieldStore       = "store"
)
