// Package roomstate holds the pure transition logic for a game room.
//
// Every operation returns a Transition: a function from the current room to
// the next one. Transitions may be re-run by the store against fresher data
// on a write conflict, so they never mutate their input, never perform I/O
// and return their input unchanged when a precondition does not hold.
package roomstate

import (
	"errors"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/dice"
	"github.com/KirkDiggler/sketchparty/internal/models"
)

// DefaultMaxPlayers caps how many players a room accepts
const DefaultMaxPlayers = 12

// Transition computes the next room from the current one
type Transition func(room *models.GameRoom) *models.GameRoom

// Config holds the dependencies of a Machine
type Config struct {
	Clock  clock.Clock
	Roller dice.Roller

	// MaxPlayers defaults to DefaultMaxPlayers when zero
	MaxPlayers int
}

// Machine builds transitions. It only reads the clock and the roller, both
// of which are safe to re-read when a transition is retried.
type Machine struct {
	clock      clock.Clock
	roller     dice.Roller
	maxPlayers int
}

// New creates a new Machine
func New(cfg *Config) (*Machine, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.Roller == nil {
		return nil, errors.New("roller cannot be nil")
	}

	maxPlayers := cfg.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}

	return &Machine{
		clock:      cfg.Clock,
		roller:     cfg.Roller,
		maxPlayers: maxPlayers,
	}, nil
}

// apply runs mutate on a clone of room. When mutate reports that nothing
// changed the original room is returned as-is.
func apply(room *models.GameRoom, mutate func(next *models.GameRoom) bool) *models.GameRoom {
	if room == nil {
		return nil
	}
	next := room.Clone().Normalize()
	if !mutate(next) {
		return room
	}
	return next
}

// resetPlayerStates puts every current player back to waiting
func resetPlayerStates(room *models.GameRoom) {
	room.PlayerStates = make(map[models.PlayerID]models.PlayerState, len(room.Players))
	for _, p := range room.Players {
		room.PlayerStates[p.ID] = models.WaitingState()
	}
}

func clearRound(room *models.GameRoom) {
	room.CurrentImage = nil
	room.Block = nil
	room.Votes = map[models.PlayerID]models.PlayerID{}
	clearSabotage(room)
	resetPlayerStates(room)
}
