package models

import (
	"fmt"
	"time"
)

// GameEventType names something worth notifying players about
type GameEventType string

const (
	// GameEventStarted is recorded when a room moves from lobby to drawing
	GameEventStarted GameEventType = "game_started"
)

// GameEvent is the originating record for a notification.
// NotificationSent is flipped transactionally so the push goes out once.
type GameEvent struct {
	ID               string        `json:"id"`
	Type             GameEventType `json:"type"`
	RoomCode         RoomCode      `json:"roomCode"`
	RoundNumber      int           `json:"roundNumber"`
	CreatedAt        time.Time     `json:"createdAt"`
	NotificationSent bool          `json:"notificationSent"`
}

// GameEventID is the deterministic ID of an event so retries land on the same record
func GameEventID(t GameEventType, code RoomCode, round int) string {
	return fmt.Sprintf("%s:%s:%d", t, code, round)
}
