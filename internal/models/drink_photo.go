package models

import (
	"time"
)

// DrinkPhoto is a photo attached to a logged drink. Photos only live for the day
// they were taken.
type DrinkPhoto struct {
	// ID is the unique identifier for the photo
	ID string `json:"id"`

	// Participant is who the drink was logged for
	Participant string `json:"participant"`

	// ImageData is the opaque image payload, usually a base64 data URL
	ImageData string `json:"imageData"`

	// Date is the calendar day (YYYY-MM-DD) the photo belongs to
	Date string `json:"date"`

	// Timestamp is when the drink was logged
	Timestamp time.Time `json:"timestamp"`
}
