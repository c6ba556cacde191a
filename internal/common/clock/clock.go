package clock

import "time"

// DateLayout is the calendar day format used for day-scoped data
const DateLayout = "2006-01-02"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/beertally/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// Day formats the calendar day of t in loc. A nil loc means local time.
func Day(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}
