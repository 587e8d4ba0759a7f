package room

import (
	"errors"

	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
)

// RoomError is a custom error type for room-related errors
type RoomError string

// Error implements the error interface
func (e RoomError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrRoomNotFound    RoomError = "room not found"
	ErrRoomBusy        RoomError = "room is busy, try again"
	ErrInvalidInput    RoomError = "invalid input"
	ErrInvalidRoomCode RoomError = "invalid room code"
	ErrInvalidSettings RoomError = "invalid settings"
	ErrNoRoomCodeLeft  RoomError = "could not allocate a free room code"
	ErrNilConfig       RoomError = "config cannot be nil"
	ErrNilRoomRepo     RoomError = "room repository cannot be nil"
	ErrNilPresenceRepo RoomError = "presence repository cannot be nil"
	ErrNilMachine      RoomError = "state machine cannot be nil"
	ErrNilClock        RoomError = "clock cannot be nil"
)

// ErrorTypeOf classifies err for the player-facing error copy
func ErrorTypeOf(err error) messaging.ErrorType {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return messaging.ErrorTypeRoomNotFound
	case errors.Is(err, ErrRoomBusy), errors.Is(err, ErrNoRoomCodeLeft):
		return messaging.ErrorTypeRoomBusy
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidRoomCode), errors.Is(err, ErrInvalidSettings):
		return messaging.ErrorTypeBadRequest
	default:
		return ""
	}
}
