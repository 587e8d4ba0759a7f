package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/common/uuid"
	"github.com/KirkDiggler/sketchparty/internal/models"
	gameEventRepo "github.com/KirkDiggler/sketchparty/internal/repositories/gameevent"
	inviteRepo "github.com/KirkDiggler/sketchparty/internal/repositories/invite"
	pushTokenRepo "github.com/KirkDiggler/sketchparty/internal/repositories/pushtoken"
	"github.com/KirkDiggler/sketchparty/internal/services/messaging"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	baseURL       string
	eventRepo     gameEventRepo.Repository
	pushTokenRepo pushTokenRepo.Repository
	inviteRepo    inviteRepo.Repository
	messaging     messaging.Service
	dispatcher    Dispatcher
	clock         clock.Clock
	uuid          uuid.UUID
}

// New creates a new notification service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.EventRepo == nil {
		return nil, ErrNilEventRepo
	}
	if cfg.PushTokenRepo == nil {
		return nil, ErrNilPushTokenRepo
	}
	if cfg.InviteRepo == nil {
		return nil, ErrNilInviteRepo
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	if cfg.Dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		eventRepo:     cfg.EventRepo,
		pushTokenRepo: cfg.PushTokenRepo,
		inviteRepo:    cfg.InviteRepo,
		messaging:     cfg.Messaging,
		dispatcher:    cfg.Dispatcher,
		clock:         cfg.Clock,
		uuid:          cfg.UUIDGenerator,
	}, nil
}

// JoinLink is the deep link that drops a player straight into a room
func JoinLink(baseURL string, code models.RoomCode) string {
	return fmt.Sprintf("%s/?join=%s", strings.TrimRight(baseURL, "/"), code)
}

// RoomCommitted sends the "game started" push when a room leaves the lobby
// for a new round. The event record is keyed by room and round so repeated
// calls for the same commit find the same record, and its notificationSent
// flag stops a second round of pushes.
func (s *service) RoomCommitted(ctx context.Context, input *RoomCommittedInput) (*RoomCommittedOutput, error) {
	if input == nil || input.Before == nil || input.After == nil {
		return nil, ErrInvalidInput
	}

	before, after := input.Before, input.After
	if !before.Status.IsLobby() || !after.Status.IsDrawing() {
		return &RoomCommittedOutput{}, nil
	}

	eventID := models.GameEventID(models.GameEventStarted, after.RoomCode, after.RoundNumber)
	recorded, err := s.eventRepo.RecordEvent(ctx, &gameEventRepo.RecordEventInput{
		Event: &models.GameEvent{
			ID:          eventID,
			Type:        models.GameEventStarted,
			RoomCode:    after.RoomCode,
			RoundNumber: after.RoundNumber,
			CreatedAt:   s.clock.Now(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record game event: %w", err)
	}

	output := &RoomCommittedOutput{EventID: eventID}
	if recorded.Event.NotificationSent {
		output.AlreadySent = true
		return output, nil
	}

	recipients := make([]models.PlayerID, 0, len(after.Players))
	for _, p := range after.Players {
		if !after.IsHost(p.ID) {
			recipients = append(recipients, p.ID)
		}
	}

	if len(recipients) > 0 {
		text, err := s.messaging.GetGameStartedMessage(ctx, &messaging.GetGameStartedMessageInput{
			HostName:    after.PlayerName(after.HostID),
			RoomCode:    after.RoomCode,
			RoundNumber: after.RoundNumber,
			TotalRounds: after.Settings.TotalRounds,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build game started message: %w", err)
		}

		output.Dispatched, output.Failed, err = s.dispatchAll(ctx, recipients, text.Title, text.Message, JoinLink(s.baseURL, after.RoomCode))
		if err != nil {
			return nil, err
		}
	}

	marked, err := s.eventRepo.MarkNotificationSent(ctx, &gameEventRepo.MarkNotificationSentInput{EventID: eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to mark game event: %w", err)
	}
	if !marked.Marked {
		log.Warn().
			Str("event_id", eventID).
			Msg("game event was marked by another worker while sending")
	}

	log.Info().
		Str("room_code", string(after.RoomCode)).
		Int("round", after.RoundNumber).
		Int("dispatched", output.Dispatched).
		Int("failed", output.Failed).
		Msg("sent game started notifications")

	return output, nil
}

// dispatchAll sends one message to every recipient that has a push token.
// Individual delivery failures are counted, not returned.
func (s *service) dispatchAll(ctx context.Context, recipients []models.PlayerID, title, body, link string) (int, int, error) {
	tokens, err := s.pushTokenRepo.GetTokens(ctx, &pushTokenRepo.GetTokensInput{PlayerIDs: recipients})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get push tokens: %w", err)
	}

	dispatched, failed := 0, 0
	for _, id := range recipients {
		token, ok := tokens.Tokens[id]
		if !ok {
			continue
		}

		err := s.dispatcher.Dispatch(ctx, &Message{
			PlayerID: id,
			Token:    token.Token,
			Title:    title,
			Body:     body,
			Link:     link,
		})
		if err != nil {
			failed++
			log.Error().Err(err).Str("player_id", string(id)).Msg("failed to dispatch notification")
			continue
		}
		dispatched++
	}

	return dispatched, failed, nil
}

// RegisterPushToken records where a player's pushes go
func (s *service) RegisterPushToken(ctx context.Context, input *RegisterPushTokenInput) (*RegisterPushTokenOutput, error) {
	if input == nil || input.PlayerID == "" || input.Token == "" {
		return nil, ErrInvalidInput
	}

	token := &models.PushToken{
		PlayerID:  input.PlayerID,
		Token:     input.Token,
		UpdatedAt: s.clock.Now(),
	}

	if err := s.pushTokenRepo.SaveToken(ctx, &pushTokenRepo.SaveTokenInput{Token: token}); err != nil {
		return nil, fmt.Errorf("failed to save push token: %w", err)
	}

	return &RegisterPushTokenOutput{Token: token}, nil
}

// SendInvite stores an invite and pushes it to the invited player
func (s *service) SendInvite(ctx context.Context, input *SendInviteInput) (*SendInviteOutput, error) {
	if input == nil || input.RoomCode == "" || input.FromPlayerID == "" || input.ToPlayerID == "" {
		return nil, ErrInvalidInput
	}
	if input.FromPlayerID == input.ToPlayerID {
		return nil, ErrInvalidInput
	}

	invite := &models.GameInvite{
		ID:           s.uuid.NewUUID(),
		RoomCode:     input.RoomCode,
		FromPlayerID: input.FromPlayerID,
		ToPlayerID:   input.ToPlayerID,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.inviteRepo.SaveInvite(ctx, &inviteRepo.SaveInviteInput{Invite: invite}); err != nil {
		return nil, fmt.Errorf("failed to save invite: %w", err)
	}

	text, err := s.messaging.GetInviteMessage(ctx, &messaging.GetInviteMessageInput{
		FromName: input.FromName,
		RoomCode: input.RoomCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build invite message: %w", err)
	}

	dispatched, _, err := s.dispatchAll(ctx, []models.PlayerID{input.ToPlayerID}, text.Title, text.Message, JoinLink(s.baseURL, input.RoomCode))
	if err != nil {
		return nil, err
	}

	output := &SendInviteOutput{Invite: invite}
	if dispatched == 0 {
		return output, nil
	}

	if _, err := s.inviteRepo.MarkInviteSent(ctx, &inviteRepo.MarkInviteSentInput{InviteID: invite.ID}); err != nil {
		return nil, fmt.Errorf("failed to mark invite sent: %w", err)
	}
	invite.NotificationSent = true
	output.Delivered = true

	return output, nil
}

// SendFriendRequest stores a pending friend request and lets the other player know
func (s *service) SendFriendRequest(ctx context.Context, input *SendFriendRequestInput) (*SendFriendRequestOutput, error) {
	if input == nil || input.FromPlayerID == "" || input.ToPlayerID == "" || input.FromPlayerID == input.ToPlayerID {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now()
	request := &models.FriendRequest{
		ID:           s.uuid.NewUUID(),
		FromPlayerID: input.FromPlayerID,
		ToPlayerID:   input.ToPlayerID,
		Status:       models.FriendRequestPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.inviteRepo.SaveFriendRequest(ctx, &inviteRepo.SaveFriendRequestInput{Request: request}); err != nil {
		return nil, fmt.Errorf("failed to save friend request: %w", err)
	}

	from := input.FromName
	if from == "" {
		from = "Someone"
	}
	dispatched, _, err := s.dispatchAll(ctx, []models.PlayerID{input.ToPlayerID},
		"New friend request",
		fmt.Sprintf("%s wants to draw with you more often.", from),
		s.baseURL+"/")
	if err != nil {
		return nil, err
	}

	return &SendFriendRequestOutput{Request: request, Delivered: dispatched > 0}, nil
}

// RespondToFriendRequest accepts or declines a request addressed to the player
func (s *service) RespondToFriendRequest(ctx context.Context, input *RespondToFriendRequestInput) (*RespondToFriendRequestOutput, error) {
	if input == nil || input.RequestID == "" || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	request, err := s.inviteRepo.GetFriendRequest(ctx, &inviteRepo.GetFriendRequestInput{RequestID: input.RequestID})
	if err != nil {
		return nil, err
	}
	if request.ToPlayerID != input.PlayerID {
		return nil, ErrNotRecipient
	}

	status := models.FriendRequestDeclined
	if input.Accept {
		status = models.FriendRequestAccepted
	}

	answered, err := s.inviteRepo.RespondToFriendRequest(ctx, &inviteRepo.RespondToFriendRequestInput{
		RequestID: input.RequestID,
		Status:    status,
		At:        s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, inviteRepo.ErrFriendRequestAnswered) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to answer friend request: %w", err)
	}

	return &RespondToFriendRequestOutput{Request: answered}, nil
}
