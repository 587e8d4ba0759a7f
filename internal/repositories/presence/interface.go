package presence

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sketchparty/internal/repositories/presence Repository

import (
	"context"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

// Repository tracks the last heartbeat of every player in a room.
// Writes are plain last-writer-wins and never go through a transaction.
type Repository interface {
	// Heartbeat records that a player is present right now
	Heartbeat(ctx context.Context, input *HeartbeatInput) error

	// GetPresence retrieves the heartbeats of a room
	GetPresence(ctx context.Context, input *GetPresenceInput) (models.Presence, error)

	// SubscribePresence pushes the full presence map on every heartbeat
	SubscribePresence(ctx context.Context, input *SubscribePresenceInput) (*Subscription, error)

	// RemovePlayer forgets a single player's heartbeat
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) error

	// DeletePresence forgets every heartbeat of a room
	DeletePresence(ctx context.Context, input *DeletePresenceInput) error

	// ListPresence retrieves the heartbeats of every room
	ListPresence(ctx context.Context, input *ListPresenceInput) (*ListPresenceOutput, error)
}
