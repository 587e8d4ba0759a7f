package models

import "time"

const (
	// DefaultTimerDuration is the drawing time in seconds when none is configured
	DefaultTimerDuration = 60

	// DefaultTotalRounds is the number of rounds when none is configured
	DefaultTotalRounds = 3

	MinTimerDuration = 10
	MaxTimerDuration = 600
	MaxTotalRounds   = 20
)

// Settings are host-controlled and only mutable in the lobby
type Settings struct {
	// TimerDuration is the drawing time per round in seconds
	TimerDuration int `json:"timerDuration"`

	// TotalRounds is how many rounds are played before the final results
	TotalRounds int `json:"totalRounds"`
}

// DefaultSettings returns the settings a new room starts with
func DefaultSettings() Settings {
	return Settings{
		TimerDuration: DefaultTimerDuration,
		TotalRounds:   DefaultTotalRounds,
	}
}

// Timer returns the drawing duration
func (s Settings) Timer() time.Duration {
	return time.Duration(s.TimerDuration) * time.Second
}

// Valid reports whether the settings are within the accepted ranges
func (s Settings) Valid() bool {
	return s.TimerDuration >= MinTimerDuration && s.TimerDuration <= MaxTimerDuration &&
		s.TotalRounds >= 1 && s.TotalRounds <= MaxTotalRounds
}
