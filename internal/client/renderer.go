package client

import (
	"time"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_renderer.go github.com/KirkDiggler/sketchparty/internal/client Renderer

// Renderer draws what a session receives. All calls come from the session
// loop, one at a time.
type Renderer interface {
	// RenderRoom is called with every committed version of the room
	RenderRoom(room *models.GameRoom)

	// RenderPresence is called with the full presence map on every change.
	// now is the session's clock, for deriving idle and offline.
	RenderPresence(presence models.Presence, now time.Time)

	// RoomGone is called once when the room was deleted or the player was
	// removed from it. The client should go back home.
	RoomGone()
}
