package models

import "time"

// PushToken is where notifications for a player are delivered
type PushToken struct {
	PlayerID  PlayerID  `json:"playerId"`
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updatedAt"`
}
