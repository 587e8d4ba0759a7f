package pushtoken

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sketchparty/internal/repositories/pushtoken Repository

import (
	"context"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

// Repository stores where each player's notifications are delivered
type Repository interface {
	// SaveToken stores or replaces a player's push token
	SaveToken(ctx context.Context, input *SaveTokenInput) error

	// GetToken retrieves a player's push token
	GetToken(ctx context.Context, input *GetTokenInput) (*models.PushToken, error)

	// GetTokens retrieves the tokens of several players, skipping players without one
	GetTokens(ctx context.Context, input *GetTokensInput) (*GetTokensOutput, error)

	// DeleteToken removes a player's push token
	DeleteToken(ctx context.Context, input *DeleteTokenInput) error
}
