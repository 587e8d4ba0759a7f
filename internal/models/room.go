package models

import (
	"time"
)

// RoomCode is the short human-shareable identifier of a room
type RoomCode string

// PlayerID identifies a player across rooms
type PlayerID string

// RoomStatus represents the current phase of a room
type RoomStatus string

const (
	// RoomStatusLobby indicates players are gathering between rounds
	RoomStatusLobby RoomStatus = "lobby"

	// RoomStatusDrawing indicates a round is in progress and players are drawing
	RoomStatusDrawing RoomStatus = "drawing"

	// RoomStatusVoting indicates every drawing is in and players are voting
	RoomStatusVoting RoomStatus = "voting"

	// RoomStatusResults indicates a round has been scored and more rounds remain
	RoomStatusResults RoomStatus = "results"

	// RoomStatusFinal indicates the last round has been scored
	RoomStatusFinal RoomStatus = "final"
)

// IsLobby returns true if the room is in the lobby
func (s RoomStatus) IsLobby() bool {
	return s == RoomStatusLobby
}

// IsDrawing returns true if players are drawing
func (s RoomStatus) IsDrawing() bool {
	return s == RoomStatusDrawing
}

// IsVoting returns true if players are voting
func (s RoomStatus) IsVoting() bool {
	return s == RoomStatusVoting
}

// IsResults returns true if the room is showing round results
func (s RoomStatus) IsResults() bool {
	return s == RoomStatusResults
}

// IsFinal returns true if the game is over
func (s RoomStatus) IsFinal() bool {
	return s == RoomStatusFinal
}

// Valid reports whether s is one of the known phases
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusLobby, RoomStatusDrawing, RoomStatusVoting, RoomStatusResults, RoomStatusFinal:
		return true
	}
	return false
}

// Player is a member of a room
type Player struct {
	// ID is the unique identifier of the player
	ID PlayerID `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// JoinedAt is when the player joined the room
	JoinedAt time.Time `json:"joinedAt"`
}

// CurrentImage is the shared drawing surface for the active round
type CurrentImage struct {
	URL        string    `json:"url"`
	UploadedBy PlayerID  `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// GameRoom is the authoritative shared document for one game session
type GameRoom struct {
	// RoomCode is the primary key of the room and never changes
	RoomCode RoomCode `json:"roomCode"`

	// HostID is the player allowed to start rounds, change settings, kick and end the game
	HostID PlayerID `json:"hostId"`

	// Players is ordered by join order
	Players []Player `json:"players,omitempty"`

	// Status drives which mutations are legal
	Status RoomStatus `json:"status"`

	Settings Settings `json:"settings"`

	// RoundNumber starts at 0 and is incremented each time a round begins
	RoundNumber int `json:"roundNumber"`

	// CurrentImage is nil between rounds
	CurrentImage *CurrentImage `json:"currentImage,omitempty"`

	// Block is the masked canvas region for the active round, nil when no round is active
	Block *Block `json:"block,omitempty"`

	// PlayerStates holds one entry per player, reset every round
	PlayerStates map[PlayerID]PlayerState `json:"playerStates,omitempty"`

	// Votes maps voter to the player they voted for, reset every round
	Votes map[PlayerID]PlayerID `json:"votes,omitempty"`

	// Scores is cumulative across rounds
	Scores map[PlayerID]int `json:"scores,omitempty"`

	// RoundResults is append-only
	RoundResults []RoundResult `json:"roundResults,omitempty"`

	SabotageID        PlayerID       `json:"sabotageId,omitempty"`
	SabotageTargetID  PlayerID       `json:"sabotageTargetId,omitempty"`
	SabotageEffect    SabotageEffect `json:"sabotageEffect,omitempty"`
	SabotageTriggered bool           `json:"sabotageTriggered,omitempty"`

	// Revision is bumped by the store on every commit
	Revision int64 `json:"revision"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPlayer returns true if id is a member of the room
func (r *GameRoom) HasPlayer(id PlayerID) bool {
	return r.PlayerIndex(id) >= 0
}

// PlayerIndex returns the join position of id, or -1
func (r *GameRoom) PlayerIndex(id PlayerID) int {
	for i, p := range r.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// PlayerName returns the display name of id, or an empty string
func (r *GameRoom) PlayerName(id PlayerID) string {
	if i := r.PlayerIndex(id); i >= 0 {
		return r.Players[i].Name
	}
	return ""
}

// IsHost returns true if id holds host privileges
func (r *GameRoom) IsHost(id PlayerID) bool {
	return id != "" && r.HostID == id
}

// RoundActive returns true while a round has been started and not yet wrapped up
func (r *GameRoom) RoundActive() bool {
	return r.Status.IsDrawing() || r.Status.IsVoting()
}

// AllSubmitted returns true when every player has submitted a drawing
func (r *GameRoom) AllSubmitted() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if r.PlayerStates[p.ID].Status != PlayerStatusSubmitted {
			return false
		}
	}
	return true
}

// AllVoted returns true when every player has a vote recorded
func (r *GameRoom) AllVoted() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if _, ok := r.Votes[p.ID]; !ok {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so transitions never share maps or slices with their input
func (r *GameRoom) Clone() *GameRoom {
	if r == nil {
		return nil
	}
	c := *r

	if r.Players != nil {
		c.Players = make([]Player, len(r.Players))
		copy(c.Players, r.Players)
	}

	if r.CurrentImage != nil {
		img := *r.CurrentImage
		c.CurrentImage = &img
	}

	if r.Block != nil {
		b := *r.Block
		c.Block = &b
	}

	if r.PlayerStates != nil {
		c.PlayerStates = make(map[PlayerID]PlayerState, len(r.PlayerStates))
		for k, v := range r.PlayerStates {
			c.PlayerStates[k] = v.clone()
		}
	}

	if r.Votes != nil {
		c.Votes = make(map[PlayerID]PlayerID, len(r.Votes))
		for k, v := range r.Votes {
			c.Votes[k] = v
		}
	}

	if r.Scores != nil {
		c.Scores = make(map[PlayerID]int, len(r.Scores))
		for k, v := range r.Scores {
			c.Scores[k] = v
		}
	}

	if r.RoundResults != nil {
		c.RoundResults = make([]RoundResult, len(r.RoundResults))
		for i, rr := range r.RoundResults {
			c.RoundResults[i] = rr.clone()
		}
	}

	return &c
}

// DrawingDeadline returns when a player's advisory drawing timer runs out.
// The second value is false when the player's timer has not started.
func (r *GameRoom) DrawingDeadline(id PlayerID) (time.Time, bool) {
	state, ok := r.PlayerStates[id]
	if !ok || state.Status != PlayerStatusDrawing || state.TimerStartedAt == nil {
		return time.Time{}, false
	}
	return state.TimerStartedAt.Add(r.Settings.Timer()), true
}

// TimeRemaining is the advisory countdown shown to a drawing player, never negative
func (r *GameRoom) TimeRemaining(id PlayerID, now time.Time) time.Duration {
	deadline, ok := r.DrawingDeadline(id)
	if !ok {
		return 0
	}
	if remaining := deadline.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}
