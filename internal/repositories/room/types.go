package room

import "github.com/KirkDiggler/sketchparty/internal/models"

type GetRoomInput struct {
	RoomCode models.RoomCode
}

type CreateRoomInput struct {
	Room *models.GameRoom
}

type UpdateRoomInput struct {
	RoomCode models.RoomCode

	// Transition receives a private copy of the latest room and returns the
	// full replacement, or nil to abort. It may run several times per call
	// and must not have side effects.
	Transition func(room *models.GameRoom) *models.GameRoom
}

type UpdateRoomOutput struct {
	// Room is the committed document
	Room *models.GameRoom

	// Previous is the document the committed attempt started from
	Previous *models.GameRoom

	// Changed is false when the transition left the room as it was and nothing was written
	Changed bool

	// Attempts counts how many times the transition ran
	Attempts int
}

type DeleteRoomInput struct {
	RoomCode models.RoomCode
}

// Callback receives the latest room, or nil once the room is gone
type Callback func(room *models.GameRoom)

type SubscribeToRoomInput struct {
	RoomCode models.RoomCode
	Callback Callback
}

type ListRoomsInput struct {
}

type ListRoomsOutput struct {
	Rooms []*models.GameRoom
}
