package roomstate

import (
	"strings"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

const (
	// RoomCodeLength is the number of characters in a room code
	RoomCodeLength = 6

	// RoomCodeAlphabet leaves out 0, O, 1 and I so codes read unambiguously
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NewRoomCode generates a random room code. Uniqueness is checked by the store.
func (m *Machine) NewRoomCode() models.RoomCode {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		code[i] = RoomCodeAlphabet[m.roller.Roll(len(RoomCodeAlphabet))-1]
	}
	return models.RoomCode(code)
}

// ValidRoomCode reports whether code could have come from NewRoomCode
func ValidRoomCode(code models.RoomCode) bool {
	if len(code) != RoomCodeLength {
		return false
	}
	for _, c := range string(code) {
		if !strings.ContainsRune(RoomCodeAlphabet, c) {
			return false
		}
	}
	return true
}
