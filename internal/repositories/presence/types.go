package presence

import "github.com/KirkDiggler/sketchparty/internal/models"

type HeartbeatInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
}

type GetPresenceInput struct {
	RoomCode models.RoomCode
}

// Callback receives a fresh copy of the room's presence map
type Callback func(presence models.Presence)

type SubscribePresenceInput struct {
	RoomCode models.RoomCode
	Callback Callback
}

type RemovePlayerInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
}

type DeletePresenceInput struct {
	RoomCode models.RoomCode
}

type ListPresenceInput struct {
}

type ListPresenceOutput struct {
	Rooms map[models.RoomCode]models.Presence
}
