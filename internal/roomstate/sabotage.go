package roomstate

import (
	"github.com/KirkDiggler/sketchparty/internal/models"
)

// minSabotagePlayers is the smallest room that gets a saboteur
const minSabotagePlayers = 3

func (m *Machine) assignSaboteur(room *models.GameRoom) {
	clearSabotage(room)
	if len(room.Players) < minSabotagePlayers {
		return
	}
	room.SabotageID = room.Players[m.roller.Roll(len(room.Players))-1].ID
}

func clearSabotage(room *models.GameRoom) {
	room.SabotageID = ""
	room.SabotageTargetID = ""
	room.SabotageEffect = ""
	room.SabotageTriggered = false
}

// TriggerSabotage lets this round's saboteur hit one other player, once
func (m *Machine) TriggerSabotage(saboteurID, targetID models.PlayerID, effect models.SabotageEffect) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.Status.IsDrawing() || next.SabotageTriggered {
				return false
			}
			if saboteurID == "" || next.SabotageID != saboteurID {
				return false
			}
			if targetID == saboteurID || !next.HasPlayer(targetID) || !effect.Valid() {
				return false
			}

			next.SabotageTargetID = targetID
			next.SabotageEffect = effect
			next.SabotageTriggered = true
			return true
		})
	}
}
