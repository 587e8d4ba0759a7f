package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/sketchparty/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetGameStartedMessage returns the push sent to players when the host starts a round
	GetGameStartedMessage(ctx context.Context, input *GetGameStartedMessageInput) (*GetGameStartedMessageOutput, error)

	// GetInviteMessage returns the push sent with a game invite
	GetInviteMessage(ctx context.Context, input *GetInviteMessageInput) (*GetInviteMessageOutput, error)

	// GetRoundResultsMessage returns a headline for a scored round
	GetRoundResultsMessage(ctx context.Context, input *GetRoundResultsMessageInput) (*GetRoundResultsMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
