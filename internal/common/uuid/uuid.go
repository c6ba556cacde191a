package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/beertally/internal/common/uuid UUID

// UUID generates identifiers for drink photos
type UUID interface {
	NewUUID() string
}

// RandomUUID generates random (version 4) UUIDs
type RandomUUID struct{}

func New() *RandomUUID {
	return &RandomUUID{}
}

// NewUUID returns a new random UUID string
func (RandomUUID) NewUUID() string {
	return uuid.NewString()
}
