package roomstate

import (
	"github.com/KirkDiggler/sketchparty/internal/models"
)

// StartRound moves the lobby into a new drawing round
func (m *Machine) StartRound(actorID models.PlayerID) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.IsHost(actorID) || !next.Status.IsLobby() || len(next.Players) == 0 {
				return false
			}

			next.RoundNumber++
			next.Status = models.RoomStatusDrawing
			block := m.GenerateBlock()
			next.Block = &block
			next.Votes = map[models.PlayerID]models.PlayerID{}
			resetPlayerStates(next)
			m.assignSaboteur(next)
			return true
		})
	}
}

// PlayerReady starts a player's drawing timer
func (m *Machine) PlayerReady(playerID models.PlayerID) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.Status.IsDrawing() || !next.HasPlayer(playerID) {
				return false
			}
			if next.PlayerStates[playerID].Status != models.PlayerStatusWaiting {
				return false
			}
			next.PlayerStates[playerID] = models.DrawingState(m.clock.Now())
			return true
		})
	}
}

// SubmitDrawing hands in a player's drawing. The submission that completes
// the set flips the room into voting; the check runs against the merged
// states on every submission so whichever commit lands last flips it.
func (m *Machine) SubmitDrawing(playerID models.PlayerID, drawing string) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.Status.IsDrawing() || !next.HasPlayer(playerID) {
				return false
			}
			if next.PlayerStates[playerID].Status == models.PlayerStatusSubmitted {
				return false
			}

			next.PlayerStates[playerID] = models.SubmittedState(drawing)

			if next.AllSubmitted() {
				next.Status = models.RoomStatusVoting
				next.Votes = map[models.PlayerID]models.PlayerID{}
			}
			return true
		})
	}
}

// NextRound returns a scored room to the lobby, keeping scores and results
func (m *Machine) NextRound(actorID models.PlayerID) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.Status.IsResults() || !next.HasPlayer(actorID) {
				return false
			}
			next.Status = models.RoomStatusLobby
			clearRound(next)
			return true
		})
	}
}

// EndGame lets the host finish early. Scores and results so far are kept.
func (m *Machine) EndGame(actorID models.PlayerID) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.IsHost(actorID) || next.Status.IsFinal() {
				return false
			}
			next.Status = models.RoomStatusFinal
			clearRound(next)
			return true
		})
	}
}

// ResetGame wipes a finished game back to an empty lobby with the same players
func (m *Machine) ResetGame(actorID models.PlayerID) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.IsHost(actorID) || !next.Status.IsFinal() {
				return false
			}

			next.Status = models.RoomStatusLobby
			next.RoundNumber = 0
			next.RoundResults = []models.RoundResult{}
			next.Scores = make(map[models.PlayerID]int, len(next.Players))
			for _, p := range next.Players {
				next.Scores[p.ID] = 0
			}
			clearRound(next)
			return true
		})
	}
}
