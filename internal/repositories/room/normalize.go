package room

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

// NormalizeRoom decodes a stored room and fills in every collection the
// store leaves out when empty. All raw reads go through here, including
// the read at the start of each transaction attempt.
func NormalizeRoom(raw []byte) (*models.GameRoom, error) {
	var room models.GameRoom
	if err := json.Unmarshal(raw, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	return room.Normalize(), nil
}
