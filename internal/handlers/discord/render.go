package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/bwmarrin/discordgo"
)

// Component custom IDs carry the room code after the action, e.g. join_room:ABC234
const (
	ButtonJoinRoom   = "join_room"
	ButtonStartRound = "start_round"

	componentSeparator = ":"
)

func componentID(action string, code models.RoomCode) string {
	return action + componentSeparator + string(code)
}

func parseComponentID(customID string) (string, models.RoomCode, bool) {
	action, code, ok := strings.Cut(customID, componentSeparator)
	if !ok || action == "" || code == "" {
		return "", "", false
	}
	return action, models.RoomCode(code), true
}

func statusLine(room *models.GameRoom) string {
	switch room.Status {
	case models.RoomStatusLobby:
		return "Waiting in the lobby"
	case models.RoomStatusDrawing:
		return fmt.Sprintf("Drawing round %d of %d", room.RoundNumber, room.Settings.TotalRounds)
	case models.RoomStatusVoting:
		return fmt.Sprintf("Voting on round %d", room.RoundNumber)
	case models.RoomStatusResults:
		return fmt.Sprintf("Round %d is scored", room.RoundNumber)
	case models.RoomStatusFinal:
		return "Game over"
	default:
		return string(room.Status)
	}
}

// renderRoomEmbed shows the players, scores and phase of a room
func renderRoomEmbed(room *models.GameRoom, link string) *discordgo.MessageEmbed {
	var players strings.Builder
	for _, p := range room.Players {
		marker := ""
		if room.IsHost(p.ID) {
			marker = " (host)"
		}
		fmt.Fprintf(&players, "%s%s: %d pts\n", p.Name, marker, room.Scores[p.ID])
	}
	if players.Len() == 0 {
		players.WriteString("Nobody yet")
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Room %s", room.RoomCode),
		Description: statusLine(room),
		URL:         link,
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("Players (%d)", len(room.Players)),
				Value: players.String(),
			},
			{
				Name:   "Timer",
				Value:  fmt.Sprintf("%ds", room.Settings.TimerDuration),
				Inline: true,
			},
			{
				Name:   "Rounds",
				Value:  fmt.Sprintf("%d", room.Settings.TotalRounds),
				Inline: true,
			},
		},
	}
}

// renderRoomButtons offers join and start while the room is in the lobby and
// a link to the canvas otherwise
func renderRoomButtons(room *models.GameRoom, link string) []discordgo.MessageComponent {
	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label: "Open canvas",
			Style: discordgo.LinkButton,
			URL:   link,
		},
	}

	if !room.Status.IsLobby() {
		return buttons
	}

	return append([]discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Join",
			Style:    discordgo.PrimaryButton,
			CustomID: componentID(ButtonJoinRoom, room.RoomCode),
		},
		discordgo.Button{
			Label:    "Start round",
			Style:    discordgo.SuccessButton,
			CustomID: componentID(ButtonStartRound, room.RoomCode),
		},
	}, buttons...)
}
