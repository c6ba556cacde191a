package models

// LastAction records the most recent drink so it can be undone once
type LastAction struct {
	// Participant is who logged the drink, empty when cleared by a reset
	Participant string

	// CanUndo is true until the action is undone, reset or rolled over
	CanUndo bool

	// Date is the calendar day (YYYY-MM-DD) the action was logged on
	Date string
}

// IsFromToday reports whether the action was logged on the given day
func (a *LastAction) IsFromToday(today string) bool {
	return a != nil && a.Date == today
}
