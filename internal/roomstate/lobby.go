package roomstate

import (
	"github.com/KirkDiggler/sketchparty/internal/models"
)

// NewRoom builds the document for a freshly created room with the host as its only player
func (m *Machine) NewRoom(code models.RoomCode, hostID models.PlayerID, hostName string) *models.GameRoom {
	now := m.clock.Now()

	room := &models.GameRoom{
		RoomCode: code,
		HostID:   hostID,
		Players: []models.Player{
			{ID: hostID, Name: hostName, JoinedAt: now},
		},
		Status:      models.RoomStatusLobby,
		Settings:    models.DefaultSettings(),
		RoundNumber: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return room.Normalize()
}

// Join adds a player to the lobby. Joining twice is a no-op.
func (m *Machine) Join(playerID models.PlayerID, name string) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if playerID == "" || next.HasPlayer(playerID) {
				return false
			}
			if !next.Status.IsLobby() || len(next.Players) >= m.maxPlayers {
				return false
			}

			next.Players = append(next.Players, models.Player{
				ID:       playerID,
				Name:     name,
				JoinedAt: m.clock.Now(),
			})
			next.PlayerStates[playerID] = models.WaitingState()
			next.Scores[playerID] = 0
			return true
		})
	}
}

// ReadyUp marks a player as ready in the lobby
func (m *Machine) ReadyUp(playerID models.PlayerID) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.Status.IsLobby() || !next.HasPlayer(playerID) {
				return false
			}
			if next.PlayerStates[playerID].Status == models.PlayerStatusReady {
				return false
			}
			next.PlayerStates[playerID] = models.ReadyState()
			return true
		})
	}
}

// UpdateSettings replaces the room settings. Only the host may do this and
// only while the room is in the lobby.
func (m *Machine) UpdateSettings(actorID models.PlayerID, settings models.Settings) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.IsHost(actorID) || !next.Status.IsLobby() {
				return false
			}
			if !settings.Valid() || settings.TotalRounds <= next.RoundNumber {
				return false
			}
			if next.Settings == settings {
				return false
			}
			next.Settings = settings
			return true
		})
	}
}

// UploadImage sets the shared drawing surface for the upcoming or active round
func (m *Machine) UploadImage(actorID models.PlayerID, url string) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if url == "" || !next.HasPlayer(actorID) {
				return false
			}
			if !next.Status.IsLobby() && !next.Status.IsDrawing() {
				return false
			}
			next.CurrentImage = &models.CurrentImage{
				URL:        url,
				UploadedBy: actorID,
				UploadedAt: m.clock.Now(),
			}
			return true
		})
	}
}

// KickPlayer removes a player from the lobby along with their state and score
func (m *Machine) KickPlayer(actorID, targetID models.PlayerID) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.IsHost(actorID) || !next.Status.IsLobby() {
				return false
			}
			idx := next.PlayerIndex(targetID)
			if idx < 0 || targetID == next.HostID {
				return false
			}

			next.Players = append(next.Players[:idx], next.Players[idx+1:]...)
			delete(next.PlayerStates, targetID)
			delete(next.Scores, targetID)
			delete(next.Votes, targetID)
			return true
		})
	}
}
