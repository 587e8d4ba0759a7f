package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/sketchparty/internal/common/clock Clock

// Clock is the source of wall-clock time for timers, heartbeats and uploads
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time in UTC so stored documents compare cleanly
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}
