package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/notification"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// SketchCommand handles the /sketch command. Discord user IDs are used as
// player IDs so a player keeps the same identity on the web canvas.
type SketchCommand struct {
	BaseCommand
	rooms     room.Service
	notifier  notification.Service
	messaging messaging.Service
	baseURL   string
}

// NewSketchCommand creates a new sketch command handler
func NewSketchCommand(rooms room.Service, notifier notification.Service, msgs messaging.Service, baseURL string) *SketchCommand {
	codeArg := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "code",
		Description: "Room code",
		Required:    true,
	}
	userArg := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: "Who to ask",
		Required:    true,
	}

	return &SketchCommand{
		BaseCommand: BaseCommand{
			Name:        "sketch",
			Description: "Party drawing game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a new room",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "timer",
							Description: "Seconds to draw each round",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "rounds",
							Description: "Number of rounds",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join a room",
					Options:     []*discordgo.ApplicationCommandOption{codeArg},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start the next round",
					Options:     []*discordgo.ApplicationCommandOption{codeArg},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "invite",
					Description: "Invite someone to a room",
					Options:     []*discordgo.ApplicationCommandOption{codeArg, userArg},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "friend",
					Description: "Send a friend request",
					Options:     []*discordgo.ApplicationCommandOption{userArg},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "notify",
					Description: "Get a DM when a game you're in starts",
				},
			},
		},
		rooms:     rooms,
		notifier:  notifier,
		messaging: msgs,
		baseURL:   baseURL,
	}
}

func subcommandOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		byName[opt.Name] = opt
	}
	return byName
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// userOption returns the ID of the user picked for name
func userOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.UserValue(nil).ID
	}
	return ""
}

// createSettings builds room settings from the optional create options
func createSettings(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) *models.Settings {
	timer, hasTimer := opts["timer"]
	rounds, hasRounds := opts["rounds"]
	if !hasTimer && !hasRounds {
		return nil
	}

	settings := models.DefaultSettings()
	if hasTimer {
		settings.TimerDuration = int(timer.IntValue())
	}
	if hasRounds {
		settings.TotalRounds = int(rounds.IntValue())
	}
	return &settings
}

// Handle processes a Discord interaction for the sketch command
func (c *SketchCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	userID, username := interactionUser(i)
	if userID == "" {
		return RespondWithError(s, i, "Could not tell who you are.")
	}

	ctx := context.Background()
	sub := data.Options[0]
	opts := subcommandOptions(sub.Options)

	switch sub.Name {
	case "create":
		out, err := c.rooms.CreateRoom(ctx, &room.CreateRoomInput{
			HostID:   models.PlayerID(userID),
			HostName: username,
			Settings: createSettings(opts),
		})
		if err != nil {
			return c.respondWithServiceError(s, i, err)
		}
		return c.respondWithRoom(s, i, out.Room)

	case "join":
		return c.join(ctx, s, i, models.RoomCode(stringOption(opts, "code")), userID, username)

	case "start":
		return c.start(ctx, s, i, models.RoomCode(stringOption(opts, "code")), userID)

	case "invite":
		code, err := room.ParseRoomCode(stringOption(opts, "code"))
		if err != nil {
			return c.respondWithServiceError(s, i, err)
		}
		to := userOption(opts, "user")
		out, err := c.notifier.SendInvite(ctx, &notification.SendInviteInput{
			RoomCode:     code,
			FromPlayerID: models.PlayerID(userID),
			FromName:     username,
			ToPlayerID:   models.PlayerID(to),
		})
		if err != nil {
			return c.respondWithServiceError(s, i, err)
		}
		if !out.Delivered {
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Invite saved. <@%s> hasn't turned on notifications, so send them the link: %s", to, notification.JoinLink(c.baseURL, code)))
		}
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Invite sent to <@%s>.", to))

	case "friend":
		to := userOption(opts, "user")
		if _, err := c.notifier.SendFriendRequest(ctx, &notification.SendFriendRequestInput{
			FromPlayerID: models.PlayerID(userID),
			FromName:     username,
			ToPlayerID:   models.PlayerID(to),
		}); err != nil {
			return c.respondWithServiceError(s, i, err)
		}
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Friend request sent to <@%s>.", to))

	case "notify":
		// a Discord push token is the user ID the DM goes to
		if _, err := c.notifier.RegisterPushToken(ctx, &notification.RegisterPushTokenInput{
			PlayerID: models.PlayerID(userID),
			Token:    userID,
		}); err != nil {
			return c.respondWithServiceError(s, i, err)
		}
		return RespondWithEphemeralMessage(s, i, "You'll get a DM when a game you're in starts.")

	default:
		return errors.New("unknown subcommand")
	}
}

// HandleComponent processes the join and start buttons under a room message
func (c *SketchCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	action, code, ok := parseComponentID(i.MessageComponentData().CustomID)
	if !ok {
		return RespondWithError(s, i, "Unknown button.")
	}

	userID, username := interactionUser(i)
	if userID == "" {
		return RespondWithError(s, i, "Could not tell who you are.")
	}

	ctx := context.Background()
	switch action {
	case ButtonJoinRoom:
		return c.join(ctx, s, i, code, userID, username)
	case ButtonStartRound:
		return c.start(ctx, s, i, code, userID)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", action))
	}
}

func (c *SketchCommand) join(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, code models.RoomCode, userID, username string) error {
	out, err := c.rooms.JoinRoom(ctx, &room.JoinRoomInput{
		RoomCode:   code,
		PlayerID:   models.PlayerID(userID),
		PlayerName: username,
	})
	if err != nil {
		return c.respondWithServiceError(s, i, err)
	}
	if !out.Joined {
		return RespondWithEphemeralMessage(s, i, "That room is full or already playing. Wait for the next game.")
	}
	return c.respondWithRoom(s, i, out.Room)
}

func (c *SketchCommand) start(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, code models.RoomCode, userID string) error {
	out, err := c.rooms.StartRound(ctx, &room.StartRoundInput{
		RoomCode: code,
		PlayerID: models.PlayerID(userID),
	})
	if err != nil {
		return c.respondWithServiceError(s, i, err)
	}
	if !out.Changed {
		return c.respondWithErrorType(s, i, messaging.ErrorTypeNotAllowed, "Only the host can start a round from the lobby.")
	}
	return c.respondWithRoom(s, i, out.Room)
}

func (c *SketchCommand) respondWithRoom(s *discordgo.Session, i *discordgo.InteractionCreate, r *models.GameRoom) error {
	link := notification.JoinLink(c.baseURL, r.RoomCode)
	return RespondWithEmbedAndButtons(s, i, renderRoomEmbed(r, link), renderRoomButtons(r, link))
}

func (c *SketchCommand) respondWithServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	errType := room.ErrorTypeOf(err)
	switch {
	case errors.Is(err, notification.ErrInvalidInput):
		errType = messaging.ErrorTypeBadRequest
	case errors.Is(err, notification.ErrNotRecipient):
		errType = messaging.ErrorTypeNotAllowed
	}
	if errType == "" {
		log.Error().Err(err).Msg("sketch command failed")
	}
	return c.respondWithErrorType(s, i, errType, err.Error())
}

// respondWithErrorType answers with the player-facing copy for errType,
// falling back to fallback when no copy can be produced
func (c *SketchCommand) respondWithErrorType(s *discordgo.Session, i *discordgo.InteractionCreate, errType messaging.ErrorType, fallback string) error {
	text, err := c.messaging.GetErrorMessage(context.Background(), &messaging.GetErrorMessageInput{
		ErrorType: errType,
	})
	if err != nil {
		return RespondWithError(s, i, fallback)
	}
	return RespondWithError(s, i, text.Message)
}
