package room

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/sketchparty/internal/services/room Service

// Service defines the interface for room operations
type Service interface {
	// CreateRoom allocates a fresh room code and creates a lobby with the host in it
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom adds a player to a room in the lobby
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// GetRoom returns the current room
	GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error)

	// ReadyUp marks a player as ready in the lobby
	ReadyUp(ctx context.Context, input *ReadyUpInput) (*MutationOutput, error)

	// UpdateSettings changes the timer and round count
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*MutationOutput, error)

	// UploadImage sets the shared image for the round
	UploadImage(ctx context.Context, input *UploadImageInput) (*MutationOutput, error)

	// KickPlayer removes a player from the lobby
	KickPlayer(ctx context.Context, input *KickPlayerInput) (*MutationOutput, error)

	// StartRound moves the lobby into a new drawing round
	StartRound(ctx context.Context, input *StartRoundInput) (*MutationOutput, error)

	// PlayerReady starts a player's drawing timer
	PlayerReady(ctx context.Context, input *PlayerReadyInput) (*MutationOutput, error)

	// SubmitDrawing hands in a player's drawing for the round
	SubmitDrawing(ctx context.Context, input *SubmitDrawingInput) (*MutationOutput, error)

	// SubmitVote records a vote and scores the round once everyone has voted
	SubmitVote(ctx context.Context, input *SubmitVoteInput) (*MutationOutput, error)

	// TriggerSabotage lets the saboteur mess with another player's canvas
	TriggerSabotage(ctx context.Context, input *TriggerSabotageInput) (*MutationOutput, error)

	// NextRound returns a scored room to the lobby
	NextRound(ctx context.Context, input *NextRoundInput) (*MutationOutput, error)

	// EndGame jumps straight to the final results
	EndGame(ctx context.Context, input *EndGameInput) (*MutationOutput, error)

	// ResetGame clears a finished game back to an empty lobby
	ResetGame(ctx context.Context, input *ResetGameInput) (*MutationOutput, error)

	// Heartbeat records that a player is still around
	Heartbeat(ctx context.Context, input *HeartbeatInput) error

	// GetPresence returns the last heartbeat and derived status of each player
	GetPresence(ctx context.Context, input *GetPresenceInput) (*GetPresenceOutput, error)

	// SubscribeRoom streams every committed version of the room
	SubscribeRoom(ctx context.Context, input *SubscribeRoomInput) (Subscription, error)

	// SubscribePresence streams the presence map of the room
	SubscribePresence(ctx context.Context, input *SubscribePresenceInput) (Subscription, error)
}

// Subscription is a live feed that stops when closed
type Subscription interface {
	Close() error
}
