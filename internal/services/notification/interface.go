package notification

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/sketchparty/internal/services/notification Service
//go:generate mockgen -package=mocks -destination=mocks/mock_dispatcher.go github.com/KirkDiggler/sketchparty/internal/services/notification Dispatcher

import "context"

// Service turns committed room changes and player actions into pushes
type Service interface {
	// RoomCommitted inspects a committed room change and sends whatever it calls for
	RoomCommitted(ctx context.Context, input *RoomCommittedInput) (*RoomCommittedOutput, error)

	// RegisterPushToken records where a player's pushes go
	RegisterPushToken(ctx context.Context, input *RegisterPushTokenInput) (*RegisterPushTokenOutput, error)

	// SendInvite invites a player to a room
	SendInvite(ctx context.Context, input *SendInviteInput) (*SendInviteOutput, error)

	// SendFriendRequest asks another player to be friends
	SendFriendRequest(ctx context.Context, input *SendFriendRequestInput) (*SendFriendRequestOutput, error)

	// RespondToFriendRequest accepts or declines a friend request addressed to the player
	RespondToFriendRequest(ctx context.Context, input *RespondToFriendRequestInput) (*RespondToFriendRequestOutput, error)
}

// Dispatcher hands a message to whatever actually delivers it
type Dispatcher interface {
	Dispatch(ctx context.Context, msg *Message) error
}
