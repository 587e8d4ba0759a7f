package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sketchparty/internal/dice"
)

// service implements the Service interface
type service struct {
	roller dice.Roller
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Roller == nil {
		return nil, errors.New("roller cannot be nil")
	}

	return &service{
		roller: cfg.Roller,
	}, nil
}

// pick returns one of the variants at random
func (s *service) pick(variants []string) string {
	return variants[s.roller.Roll(len(variants))-1]
}

// GetGameStartedMessage returns the push sent to players when the host starts a round
func (s *service) GetGameStartedMessage(ctx context.Context, input *GetGameStartedMessageInput) (*GetGameStartedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	host := input.HostName
	if host == "" {
		host = "Your host"
	}

	titles := []string{
		"Pencils up!",
		"The canvas awaits",
		"Time to draw!",
	}

	var messages []string
	if input.RoundNumber <= 1 {
		messages = []string{
			fmt.Sprintf("%s just started the game in room %s. Get drawing!", host, input.RoomCode),
			fmt.Sprintf("%s kicked things off in room %s. Your masterpiece is overdue.", host, input.RoomCode),
			fmt.Sprintf("Room %s is live! %s is waiting on your doodles.", input.RoomCode, host),
		}
	} else {
		messages = []string{
			fmt.Sprintf("Round %d of %d just started in room %s.", input.RoundNumber, input.TotalRounds, input.RoomCode),
			fmt.Sprintf("%s started round %d in room %s. Back to the easel!", host, input.RoundNumber, input.RoomCode),
		}
	}

	return &GetGameStartedMessageOutput{
		Title:   s.pick(titles),
		Message: s.pick(messages),
	}, nil
}

// GetInviteMessage returns the push sent with a game invite
func (s *service) GetInviteMessage(ctx context.Context, input *GetInviteMessageInput) (*GetInviteMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	from := input.FromName
	if from == "" {
		from = "A friend"
	}

	messages := []string{
		fmt.Sprintf("%s wants you in room %s. Bring your best stick figures.", from, input.RoomCode),
		fmt.Sprintf("%s invited you to draw in room %s.", from, input.RoomCode),
		fmt.Sprintf("Room %s needs another artist and %s thinks it's you.", input.RoomCode, from),
	}

	return &GetInviteMessageOutput{
		Title:   "You're invited!",
		Message: s.pick(messages),
	}, nil
}

// GetRoundResultsMessage returns a headline for a scored round
func (s *service) GetRoundResultsMessage(ctx context.Context, input *GetRoundResultsMessageInput) (*GetRoundResultsMessageOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.New("input and result cannot be nil")
	}

	rankings := input.Result.Rankings
	if len(rankings) == 0 || rankings[0].Votes == 0 {
		return &GetRoundResultsMessageOutput{
			Message: s.pick([]string{
				"Nobody got a single vote. Art is hard.",
				"The critics were silent this round.",
			}),
		}, nil
	}

	winner := rankings[0]
	tied := len(rankings) > 1 && rankings[1].Votes == winner.Votes

	var messages []string
	switch {
	case input.Final && tied:
		messages = []string{
			fmt.Sprintf("Game over! %s shares the top spot of the last round with %d votes.", winner.PlayerName, winner.Votes),
		}
	case input.Final:
		messages = []string{
			fmt.Sprintf("Game over! %s took the last round with %d votes.", winner.PlayerName, winner.Votes),
			fmt.Sprintf("And that's the game. %s closes it out with %d votes.", winner.PlayerName, winner.Votes),
		}
	case tied:
		messages = []string{
			fmt.Sprintf("Round %d is a tie at the top with %d votes each.", input.Result.RoundNumber, winner.Votes),
			fmt.Sprintf("Round %d: %s edges out a tie on join order. Rough.", input.Result.RoundNumber, winner.PlayerName),
		}
	default:
		messages = []string{
			fmt.Sprintf("%s wins round %d with %d votes!", winner.PlayerName, input.Result.RoundNumber, winner.Votes),
			fmt.Sprintf("Round %d goes to %s. The people have spoken.", input.Result.RoundNumber, winner.PlayerName),
			fmt.Sprintf("%s takes round %d. Frame it.", winner.PlayerName, input.Result.RoundNumber),
		}
	}

	return &GetRoundResultsMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	switch input.ErrorType {
	case ErrorTypeRoomNotFound:
		messages = []string{
			"That room doesn't exist anymore. Maybe start a new one?",
			"We looked everywhere. No room with that code.",
		}
	case ErrorTypeRoomBusy:
		messages = []string{
			"Everyone's scribbling at once! Give it another try.",
			"The room is a little hectic right now. Try again.",
		}
	case ErrorTypeNotAllowed:
		messages = []string{
			"You can't do that right now.",
			"Nice try, but that's not your call.",
		}
	case ErrorTypeBadRequest:
		messages = []string{
			"That didn't look right. Check what you sent.",
		}
	case ErrorTypeUnauthorized:
		messages = []string{
			"We don't know who you are. Join the room first.",
		}
	case ErrorTypeSlowDown:
		messages = []string{
			"Easy there, Picasso. Slow down a little.",
			"Too many brush strokes at once! Take a breath.",
		}
	default:
		messages = []string{
			"Something went wrong! Try again later.",
			"Oops! The paint spilled. Try again.",
		}
	}

	if tone == ToneNeutral {
		messages = messages[:1]
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}
