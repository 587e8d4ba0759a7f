package models

// Normalize re-populates collections the store drops when they are empty.
// It must run on every raw read before any transition touches the room.
func (r *GameRoom) Normalize() *GameRoom {
	if r == nil {
		return nil
	}

	if r.Players == nil {
		r.Players = []Player{}
	}
	if r.PlayerStates == nil {
		r.PlayerStates = map[PlayerID]PlayerState{}
	}
	if r.Votes == nil {
		r.Votes = map[PlayerID]PlayerID{}
	}
	if r.Scores == nil {
		r.Scores = map[PlayerID]int{}
	}
	if r.RoundResults == nil {
		r.RoundResults = []RoundResult{}
	}
	for i := range r.RoundResults {
		if r.RoundResults[i].Rankings == nil {
			r.RoundResults[i].Rankings = []Ranking{}
		}
	}

	defaults := DefaultSettings()
	if r.Settings.TimerDuration <= 0 {
		r.Settings.TimerDuration = defaults.TimerDuration
	}
	if r.Settings.TotalRounds <= 0 {
		r.Settings.TotalRounds = defaults.TotalRounds
	}

	if !r.Status.Valid() {
		r.Status = RoomStatusLobby
	}

	// Players listed without their per-player entries get fresh ones.
	for _, p := range r.Players {
		if _, ok := r.PlayerStates[p.ID]; !ok {
			r.PlayerStates[p.ID] = WaitingState()
		}
		if _, ok := r.Scores[p.ID]; !ok {
			r.Scores[p.ID] = 0
		}
	}

	return r
}
