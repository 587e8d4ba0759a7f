package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/models"
	presenceRepo "github.com/KirkDiggler/sketchparty/internal/repositories/presence"
	roomRepo "github.com/KirkDiggler/sketchparty/internal/repositories/room"
	"github.com/KirkDiggler/sketchparty/internal/roomstate"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/KirkDiggler/sketchparty/internal/services/notification"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	roomRepo        roomRepo.Repository
	presenceRepo    presenceRepo.Repository
	machine         *roomstate.Machine
	notifier        notification.Service
	messaging       messaging.Service
	clock           clock.Clock
	maxCodeAttempts int
}

// New creates a new room service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}
	if cfg.PresenceRepo == nil {
		return nil, ErrNilPresenceRepo
	}
	if cfg.Machine == nil {
		return nil, ErrNilMachine
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	attempts := cfg.MaxCodeAttempts
	if attempts <= 0 {
		attempts = DefaultMaxCodeAttempts
	}

	return &service{
		roomRepo:        cfg.RoomRepo,
		presenceRepo:    cfg.PresenceRepo,
		machine:         cfg.Machine,
		notifier:        cfg.Notifier,
		messaging:       cfg.Messaging,
		clock:           cfg.Clock,
		maxCodeAttempts: attempts,
	}, nil
}

// ParseRoomCode accepts a code the way people type it and checks it could exist
func ParseRoomCode(raw string) (models.RoomCode, error) {
	code := models.RoomCode(strings.ToUpper(strings.TrimSpace(raw)))
	if !roomstate.ValidRoomCode(code) {
		return "", ErrInvalidRoomCode
	}
	return code, nil
}

// repoError translates repository failures into service errors
func repoError(err error) error {
	switch {
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		return ErrRoomNotFound
	case errors.Is(err, roomRepo.ErrConflictRetriesExhausted):
		return ErrRoomBusy
	default:
		return fmt.Errorf("failed to update room: %w", err)
	}
}

// mutate commits transition against the room and runs the post-commit hooks
// once, after the store has settled on a result
func (s *service) mutate(ctx context.Context, rawCode models.RoomCode, transition roomstate.Transition) (*MutationOutput, error) {
	code, err := ParseRoomCode(string(rawCode))
	if err != nil {
		return nil, err
	}

	updated, err := s.roomRepo.UpdateRoom(ctx, &roomRepo.UpdateRoomInput{
		RoomCode:   code,
		Transition: transition,
	})
	if err != nil {
		return nil, repoError(err)
	}

	output := &MutationOutput{
		Room:    updated.Room,
		Changed: updated.Changed,
	}

	if updated.Changed && updated.Previous != nil && updated.Previous.Status != updated.Room.Status {
		output.Headline = s.statusChanged(ctx, updated.Previous, updated.Room)
	}

	return output, nil
}

// statusChanged runs the side effects of a committed phase change. Failures
// are logged and never undo the commit.
func (s *service) statusChanged(ctx context.Context, before, after *models.GameRoom) string {
	logger := log.With().
		Str("room_code", string(after.RoomCode)).
		Str("from", string(before.Status)).
		Str("to", string(after.Status)).
		Logger()

	logger.Info().Int("round", after.RoundNumber).Msg("room status changed")

	if s.notifier != nil {
		if _, err := s.notifier.RoomCommitted(ctx, &notification.RoomCommittedInput{
			Before: before,
			After:  after,
		}); err != nil {
			logger.Error().Err(err).Msg("failed to notify players")
		}
	}

	scored := before.Status.IsVoting() && (after.Status.IsResults() || after.Status.IsFinal())
	if !scored || s.messaging == nil || len(after.RoundResults) == 0 {
		return ""
	}

	result := after.RoundResults[len(after.RoundResults)-1]
	headline, err := s.messaging.GetRoundResultsMessage(ctx, &messaging.GetRoundResultsMessageInput{
		Result: &result,
		Final:  after.Status.IsFinal(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to write round headline")
		return ""
	}

	return headline.Message
}

// CreateRoom allocates a fresh room code and creates a lobby with the host in it
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil || input.HostID == "" || strings.TrimSpace(input.HostName) == "" {
		return nil, ErrInvalidInput
	}
	if input.Settings != nil && !input.Settings.Valid() {
		return nil, ErrInvalidSettings
	}

	for attempt := 1; attempt <= s.maxCodeAttempts; attempt++ {
		room := s.machine.NewRoom(s.machine.NewRoomCode(), input.HostID, strings.TrimSpace(input.HostName))
		if input.Settings != nil {
			room.Settings = *input.Settings
		}

		err := s.roomRepo.CreateRoom(ctx, &roomRepo.CreateRoomInput{Room: room})
		if errors.Is(err, roomRepo.ErrRoomExists) {
			log.Debug().
				Str("room_code", string(room.RoomCode)).
				Int("attempt", attempt).
				Msg("room code taken, drawing another")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}

		log.Info().
			Str("room_code", string(room.RoomCode)).
			Str("host_id", string(input.HostID)).
			Msg("room created")

		return &CreateRoomOutput{Room: room}, nil
	}

	return nil, ErrNoRoomCodeLeft
}

// JoinRoom adds a player to a room in the lobby. Rejoining is harmless.
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	if input == nil || input.PlayerID == "" || strings.TrimSpace(input.PlayerName) == "" {
		return nil, ErrInvalidInput
	}

	out, err := s.mutate(ctx, input.RoomCode, s.machine.Join(input.PlayerID, strings.TrimSpace(input.PlayerName)))
	if err != nil {
		return nil, err
	}

	return &JoinRoomOutput{
		Room:    out.Room,
		Joined:  out.Room.HasPlayer(input.PlayerID),
		Changed: out.Changed,
	}, nil
}

// GetRoom returns the current room
func (s *service) GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}
	code, err := ParseRoomCode(string(input.RoomCode))
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{RoomCode: code})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &GetRoomOutput{Room: room}, nil
}

// ReadyUp marks a player as ready in the lobby
func (s *service) ReadyUp(ctx context.Context, input *ReadyUpInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.ReadyUp(input.PlayerID))
}

// UpdateSettings lets the host change the settings while in the lobby
func (s *service) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}
	if !input.Settings.Valid() {
		return nil, ErrInvalidSettings
	}
	return s.mutate(ctx, input.RoomCode, s.machine.UpdateSettings(input.PlayerID, input.Settings))
}

// UploadImage sets the shared image the round is drawn over
func (s *service) UploadImage(ctx context.Context, input *UploadImageInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" || input.URL == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.UploadImage(input.PlayerID, input.URL))
}

// KickPlayer removes a player from the lobby and forgets their heartbeat
func (s *service) KickPlayer(ctx context.Context, input *KickPlayerInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" || input.TargetID == "" {
		return nil, ErrInvalidInput
	}

	out, err := s.mutate(ctx, input.RoomCode, s.machine.KickPlayer(input.PlayerID, input.TargetID))
	if err != nil {
		return nil, err
	}

	if out.Changed && !out.Room.HasPlayer(input.TargetID) {
		if err := s.presenceRepo.RemovePlayer(ctx, &presenceRepo.RemovePlayerInput{
			RoomCode: out.Room.RoomCode,
			PlayerID: input.TargetID,
		}); err != nil {
			log.Error().Err(err).
				Str("room_code", string(out.Room.RoomCode)).
				Str("player_id", string(input.TargetID)).
				Msg("failed to clear presence of kicked player")
		}
	}

	return out, nil
}

// StartRound lets the host move the lobby into a new drawing round
func (s *service) StartRound(ctx context.Context, input *StartRoundInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.StartRound(input.PlayerID))
}

// PlayerReady starts a player's drawing timer
func (s *service) PlayerReady(ctx context.Context, input *PlayerReadyInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.PlayerReady(input.PlayerID))
}

// SubmitDrawing hands in a drawing; the last one in moves the room to voting
func (s *service) SubmitDrawing(ctx context.Context, input *SubmitDrawingInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.SubmitDrawing(input.PlayerID, input.Drawing))
}

// SubmitVote records a vote; the last one in scores the round
func (s *service) SubmitVote(ctx context.Context, input *SubmitVoteInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" || input.TargetID == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.SubmitVote(input.PlayerID, input.TargetID))
}

// TriggerSabotage lets this round's saboteur hit another player once
func (s *service) TriggerSabotage(ctx context.Context, input *TriggerSabotageInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" || input.TargetID == "" || !input.Effect.Valid() {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.TriggerSabotage(input.PlayerID, input.TargetID, input.Effect))
}

// NextRound returns a scored room to the lobby for the next round
func (s *service) NextRound(ctx context.Context, input *NextRoundInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.NextRound(input.PlayerID))
}

// EndGame lets the host finish the game early
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.EndGame(input.PlayerID))
}

// ResetGame lets the host wipe a finished game back to an empty lobby
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*MutationOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, input.RoomCode, s.machine.ResetGame(input.PlayerID))
}

// Heartbeat records that a player is still around
func (s *service) Heartbeat(ctx context.Context, input *HeartbeatInput) error {
	if input == nil || input.PlayerID == "" {
		return ErrInvalidInput
	}
	code, err := ParseRoomCode(string(input.RoomCode))
	if err != nil {
		return err
	}

	return s.presenceRepo.Heartbeat(ctx, &presenceRepo.HeartbeatInput{
		RoomCode: code,
		PlayerID: input.PlayerID,
	})
}

// GetPresence returns the last heartbeat and derived status of each player
func (s *service) GetPresence(ctx context.Context, input *GetPresenceInput) (*GetPresenceOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}
	code, err := ParseRoomCode(string(input.RoomCode))
	if err != nil {
		return nil, err
	}

	presence, err := s.presenceRepo.GetPresence(ctx, &presenceRepo.GetPresenceInput{RoomCode: code})
	if err != nil {
		return nil, fmt.Errorf("failed to get presence: %w", err)
	}

	now := s.clock.Now()
	statuses := make(map[models.PlayerID]models.PresenceStatus, len(presence))
	for id := range presence {
		statuses[id] = presence.StatusOf(id, now)
	}

	return &GetPresenceOutput{
		Presence: presence,
		Statuses: statuses,
		Now:      now,
	}, nil
}

// SubscribeRoom streams every committed version of the room, then nil once it is deleted
func (s *service) SubscribeRoom(ctx context.Context, input *SubscribeRoomInput) (Subscription, error) {
	if input == nil || input.Callback == nil {
		return nil, ErrInvalidInput
	}
	code, err := ParseRoomCode(string(input.RoomCode))
	if err != nil {
		return nil, err
	}

	sub, err := s.roomRepo.SubscribeToRoom(ctx, &roomRepo.SubscribeToRoomInput{
		RoomCode: code,
		Callback: input.Callback,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to room: %w", err)
	}

	return sub, nil
}

// SubscribePresence streams the presence map of the room
func (s *service) SubscribePresence(ctx context.Context, input *SubscribePresenceInput) (Subscription, error) {
	if input == nil || input.Callback == nil {
		return nil, ErrInvalidInput
	}
	code, err := ParseRoomCode(string(input.RoomCode))
	if err != nil {
		return nil, err
	}

	sub, err := s.presenceRepo.SubscribePresence(ctx, &presenceRepo.SubscribePresenceInput{
		RoomCode: code,
		Callback: input.Callback,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to presence: %w", err)
	}

	return sub, nil
}
