package room

import (
	"time"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/models"
	presenceRepo "github.com/KirkDiggler/sketchparty/internal/repositories/presence"
	roomRepo "github.com/KirkDiggler/sketchparty/internal/repositories/room"
	"github.com/KirkDiggler/sketchparty/internal/roomstate"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/notification"
)

// DefaultMaxCodeAttempts is how many room codes CreateRoom tries before giving up
const DefaultMaxCodeAttempts = 5

// Config holds configuration for the room service
type Config struct {
	// Repository dependencies
	RoomRepo     roomRepo.Repository
	PresenceRepo presenceRepo.Repository

	// Machine builds the transitions
	Machine *roomstate.Machine

	// Notifier is told about every status change after it commits. Optional.
	Notifier notification.Service

	// Messaging writes the headline of a scored round. Optional.
	Messaging messaging.Service

	Clock clock.Clock

	// MaxCodeAttempts defaults to DefaultMaxCodeAttempts
	MaxCodeAttempts int
}

// MutationOutput is what every room mutation returns
type MutationOutput struct {
	// Room is the room after the mutation
	Room *models.GameRoom

	// Changed is false when the mutation was not allowed in the current
	// phase or had already been applied
	Changed bool

	// Headline is set when the mutation scored a round
	Headline string
}

// CreateRoomInput contains parameters for creating a room
type CreateRoomInput struct {
	HostID   models.PlayerID
	HostName string

	// Settings replaces the defaults when set
	Settings *models.Settings
}

// CreateRoomOutput contains the created room
type CreateRoomOutput struct {
	Room *models.GameRoom
}

// JoinRoomInput contains parameters for joining a room
type JoinRoomInput struct {
	RoomCode   models.RoomCode
	PlayerID   models.PlayerID
	PlayerName string
}

// JoinRoomOutput contains the result of joining a room
type JoinRoomOutput struct {
	Room *models.GameRoom

	// Joined is true when the player is a member of the room afterwards.
	// It is false when the room is full or already playing.
	Joined bool

	Changed bool
}

// GetRoomInput contains parameters for fetching a room
type GetRoomInput struct {
	RoomCode models.RoomCode
}

// GetRoomOutput contains the room
type GetRoomOutput struct {
	Room *models.GameRoom
}

type ReadyUpInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
}

type UpdateSettingsInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
	Settings models.Settings
}

type UploadImageInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
	URL      string
}

type KickPlayerInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
	TargetID models.PlayerID
}

type StartRoundInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
}

type PlayerReadyInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
}

type SubmitDrawingInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID

	// Drawing is the serialized canvas
	Drawing string
}

type SubmitVoteInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
	TargetID models.PlayerID
}

type TriggerSabotageInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
	TargetID models.PlayerID
	Effect   models.SabotageEffect
}

type NextRoundInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
}

type EndGameInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
}

type ResetGameInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
}

type HeartbeatInput struct {
	RoomCode models.RoomCode
	PlayerID models.PlayerID
}

type GetPresenceInput struct {
	RoomCode models.RoomCode
}

// GetPresenceOutput contains the presence of a room as of Now
type GetPresenceOutput struct {
	Presence models.Presence
	Statuses map[models.PlayerID]models.PresenceStatus
	Now      time.Time
}

type SubscribeRoomInput struct {
	RoomCode models.RoomCode
	Callback roomRepo.Callback
}

type SubscribePresenceInput struct {
	RoomCode models.RoomCode
	Callback presenceRepo.Callback
}
