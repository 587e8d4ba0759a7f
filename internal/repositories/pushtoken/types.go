package pushtoken

import "github.com/KirkDiggler/sketchparty/internal/models"

type SaveTokenInput struct {
	Token *models.PushToken
}

type GetTokenInput struct {
	PlayerID models.PlayerID
}

type GetTokensInput struct {
	PlayerIDs []models.PlayerID
}

type GetTokensOutput struct {
	Tokens map[models.PlayerID]*models.PushToken
}

type DeleteTokenInput struct {
	PlayerID models.PlayerID
}
