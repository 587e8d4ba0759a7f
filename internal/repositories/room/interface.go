package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sketchparty/internal/repositories/room Repository

import (
	"context"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

// Repository is the only sanctioned way to read and mutate a GameRoom
type Repository interface {
	// GetRoom retrieves a room by code. The result may be stale relative to in-flight transactions.
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.GameRoom, error)

	// CreateRoom stores a new room, failing with ErrRoomExists if the code is taken
	CreateRoom(ctx context.Context, input *CreateRoomInput) error

	// UpdateRoom runs a transition against the latest committed room and commits it atomically,
	// re-running the transition whenever another writer commits first
	UpdateRoom(ctx context.Context, input *UpdateRoomInput) (*UpdateRoomOutput, error)

	// DeleteRoom removes a room and tells subscribers it is gone
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) error

	// SubscribeToRoom pushes the room to the callback on every committed change
	SubscribeToRoom(ctx context.Context, input *SubscribeToRoomInput) (*Subscription, error)

	// ListRooms retrieves every stored room
	ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error)
}
