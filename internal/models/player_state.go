package models

import (
	"errors"
	"time"
)

// PlayerStatus represents where a player is within the current round
type PlayerStatus string

const (
	// PlayerStatusWaiting indicates the player has not started drawing yet
	PlayerStatusWaiting PlayerStatus = "waiting"

	// PlayerStatusDrawing indicates the player's drawing timer is running
	PlayerStatusDrawing PlayerStatus = "drawing"

	// PlayerStatusSubmitted indicates the player has handed in a drawing
	PlayerStatusSubmitted PlayerStatus = "submitted"

	// PlayerStatusReady indicates the player readied up in the lobby
	PlayerStatusReady PlayerStatus = "ready"
)

// PlayerState is one player's per-round state.
//
// Only the payload belonging to Status may be set: TimerStartedAt for
// drawing, Drawing for submitted. Use the constructors below rather than
// building the struct by hand.
type PlayerState struct {
	Status         PlayerStatus `json:"status"`
	TimerStartedAt *time.Time   `json:"timerStartedAt,omitempty"`
	Drawing        string       `json:"drawing,omitempty"`
}

// WaitingState returns the state every player starts a round in
func WaitingState() PlayerState {
	return PlayerState{Status: PlayerStatusWaiting}
}

// DrawingState returns a drawing state whose timer started at startedAt
func DrawingState(startedAt time.Time) PlayerState {
	t := startedAt
	return PlayerState{Status: PlayerStatusDrawing, TimerStartedAt: &t}
}

// SubmittedState returns a submitted state carrying the drawing
func SubmittedState(drawing string) PlayerState {
	return PlayerState{Status: PlayerStatusSubmitted, Drawing: drawing}
}

// ReadyState returns a lobby ready-up state
func ReadyState() PlayerState {
	return PlayerState{Status: PlayerStatusReady}
}

// Validate checks the state only carries the payload its status allows
func (s PlayerState) Validate() error {
	switch s.Status {
	case PlayerStatusWaiting, PlayerStatusReady:
		if s.TimerStartedAt != nil || s.Drawing != "" {
			return errors.New("waiting and ready states carry no payload")
		}
	case PlayerStatusDrawing:
		if s.TimerStartedAt == nil {
			return errors.New("drawing state requires a timer start")
		}
		if s.Drawing != "" {
			return errors.New("drawing state cannot carry a drawing")
		}
	case PlayerStatusSubmitted:
		if s.TimerStartedAt != nil {
			return errors.New("submitted state cannot carry a timer")
		}
	default:
		return errors.New("unknown player status")
	}
	return nil
}

func (s PlayerState) clone() PlayerState {
	if s.TimerStartedAt != nil {
		t := *s.TimerStartedAt
		s.TimerStartedAt = &t
	}
	return s
}
