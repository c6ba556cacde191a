package api

import "github.com/KirkDiggler/beertally/internal/models"

type logDrinkRequest struct {
	Participant string `json:"participant"`

	// Photo is an optional image data URL
	Photo string `json:"photo"`
}

type addParticipantRequest struct {
	Name string `json:"name"`
}

// snapshotResponse is the snapshot with an optional human-readable message
type snapshotResponse struct {
	*models.Snapshot
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

type photosResponse struct {
	Date   string               `json:"date"`
	Photos []*models.DrinkPhoto `json:"photos"`
}

type errorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}
