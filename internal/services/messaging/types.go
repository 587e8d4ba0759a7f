package messaging

import (
	"github.com/KirkDiggler/sketchparty/internal/dice"
	"github.com/KirkDiggler/sketchparty/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"
)

// ErrorType names a failure the player can see
type ErrorType string

const (
	ErrorTypeRoomNotFound ErrorType = "room_not_found"
	ErrorTypeRoomBusy     ErrorType = "room_busy"
	ErrorTypeNotAllowed   ErrorType = "not_allowed"
	ErrorTypeBadRequest   ErrorType = "bad_request"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeSlowDown     ErrorType = "slow_down"
)

// Config contains configuration for the messaging service
type Config struct {
	// Roller picks between message variants
	Roller dice.Roller
}

// GetGameStartedMessageInput contains the input for GetGameStartedMessage
type GetGameStartedMessageInput struct {
	HostName    string
	RoomCode    models.RoomCode
	RoundNumber int
	TotalRounds int
}

// GetGameStartedMessageOutput contains the output for GetGameStartedMessage
type GetGameStartedMessageOutput struct {
	Title   string
	Message string
}

// GetInviteMessageInput contains the input for GetInviteMessage
type GetInviteMessageInput struct {
	FromName string
	RoomCode models.RoomCode
}

// GetInviteMessageOutput contains the output for GetInviteMessage
type GetInviteMessageOutput struct {
	Title   string
	Message string
}

// GetRoundResultsMessageInput contains the input for GetRoundResultsMessage
type GetRoundResultsMessageInput struct {
	Result *models.RoundResult

	// Final is true when this was the last round of the game
	Final bool
}

// GetRoundResultsMessageOutput contains the output for GetRoundResultsMessage
type GetRoundResultsMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType is the type of error
	ErrorType ErrorType

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	// Message is the generated message
	Message string

	// Tone is the tone of the message
	Tone MessageTone
}
