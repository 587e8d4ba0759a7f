package notification

import (
	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/common/uuid"
	"github.com/KirkDiggler/sketchparty/internal/models"
	gameEventRepo "github.com/KirkDiggler/sketchparty/internal/repositories/gameevent"
	inviteRepo "github.com/KirkDiggler/sketchparty/internal/repositories/invite"
	pushTokenRepo "github.com/KirkDiggler/sketchparty/internal/repositories/pushtoken"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
)

// Config holds configuration for the notification service
type Config struct {
	// BaseURL is where deep links point, e.g. https://sketch.party
	BaseURL string

	// Repository dependencies
	EventRepo     gameEventRepo.Repository
	PushTokenRepo pushTokenRepo.Repository
	InviteRepo    inviteRepo.Repository

	// Service dependencies
	Messaging     messaging.Service
	Dispatcher    Dispatcher
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// Message is a single push to a single player
type Message struct {
	PlayerID models.PlayerID

	// Token is the delivery address from the player's push token
	Token string

	Title string
	Body  string

	// Link is the deep link opened when the push is tapped
	Link string
}

// RoomCommittedInput describes one committed room change
type RoomCommittedInput struct {
	// Before is the room the committed transition started from
	Before *models.GameRoom

	// After is the room that was committed
	After *models.GameRoom
}

// RoomCommittedOutput contains the result of handling a room change
type RoomCommittedOutput struct {
	// EventID is set when the change produced a game event
	EventID string

	// AlreadySent is true when another worker already sent the pushes for the event
	AlreadySent bool

	// Dispatched counts successfully handed off messages
	Dispatched int

	// Failed counts messages the dispatcher rejected
	Failed int
}

// RegisterPushTokenInput contains parameters for registering a push token
type RegisterPushTokenInput struct {
	PlayerID models.PlayerID
	Token    string
}

// RegisterPushTokenOutput contains the result of registering a push token
type RegisterPushTokenOutput struct {
	Token *models.PushToken
}

// SendInviteInput contains parameters for inviting a player
type SendInviteInput struct {
	RoomCode     models.RoomCode
	FromPlayerID models.PlayerID
	FromName     string
	ToPlayerID   models.PlayerID
}

// SendInviteOutput contains the result of inviting a player
type SendInviteOutput struct {
	Invite *models.GameInvite

	// Delivered is false when the player has no push token or delivery failed
	Delivered bool
}

// SendFriendRequestInput contains parameters for a friend request
type SendFriendRequestInput struct {
	FromPlayerID models.PlayerID
	FromName     string
	ToPlayerID   models.PlayerID
}

// SendFriendRequestOutput contains the result of a friend request
type SendFriendRequestOutput struct {
	Request   *models.FriendRequest
	Delivered bool
}

// RespondToFriendRequestInput contains parameters for answering a friend request
type RespondToFriendRequestInput struct {
	RequestID string
	PlayerID  models.PlayerID
	Accept    bool
}

// RespondToFriendRequestOutput contains the answered request
type RespondToFriendRequestOutput struct {
	Request *models.FriendRequest
}
