package models

// Snapshot is the full tally state returned by every operation
type Snapshot struct {
	// AllTimeCounts maps every participant to their all-time drink count
	AllTimeCounts map[string]int `json:"personCounts"`

	// DailyCounts maps every participant to today's drink count
	DailyCounts map[string]int `json:"dailyPersonCounts"`

	// Participants lists participants in the order they were added
	Participants []string `json:"allUsers"`

	// LastAction is the participant of the most recent drink, nil when cleared
	LastAction *string `json:"lastAction"`

	// CanUndo indicates the last action can still be undone
	CanUndo bool `json:"canUndo"`

	// Today is the current calendar day (YYYY-MM-DD)
	Today string `json:"today"`
}
