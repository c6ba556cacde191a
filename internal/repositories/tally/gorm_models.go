package tally

import (
	"time"

	"github.com/KirkDiggler/beertally/internal/models"
)

const (
	// Fixed identifiers for singleton rows
	lastActionID = "last"
	dayMarkerID  = "day"
)

type participantRow struct {
	Name      string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (participantRow) TableName() string { return "participants" }

type allTimeCountRow struct {
	Participant string `gorm:"primaryKey"`
	Total       int
}

func (allTimeCountRow) TableName() string { return "all_time_counts" }

type dailyCountRow struct {
	Participant string `gorm:"primaryKey"`
	Date        string `gorm:"primaryKey"`
	Total       int
}

func (dailyCountRow) TableName() string { return "daily_counts" }

type drinkPhotoRow struct {
	ID          string `gorm:"primaryKey"`
	Participant string
	ImageData   string
	Date        string
	TakenAt     time.Time
}

func (drinkPhotoRow) TableName() string { return "drink_photos" }

func (r *drinkPhotoRow) toModel() *models.DrinkPhoto {
	return &models.DrinkPhoto{
		ID:          r.ID,
		Participant: r.Participant,
		ImageData:   r.ImageData,
		Date:        r.Date,
		Timestamp:   r.TakenAt.UTC(),
	}
}

type lastActionRow struct {
	ID          string `gorm:"primaryKey"`
	Participant string
	CanUndo     bool
	Date        string
}

func (lastActionRow) TableName() string { return "last_actions" }

func (r *lastActionRow) toModel() *models.LastAction {
	return &models.LastAction{
		Participant: r.Participant,
		CanUndo:     r.CanUndo,
		Date:        r.Date,
	}
}

type dayMarkerRow struct {
	ID   string `gorm:"primaryKey"`
	Date string
}

func (dayMarkerRow) TableName() string { return "day_markers" }
