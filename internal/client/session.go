package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/KirkDiggler/sketchparty/internal/services/room"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultHeartbeatInterval is how often an open session reports presence
	DefaultHeartbeatInterval = 5 * time.Second

	// DefaultTickInterval is how often the drawing timer is checked
	DefaultTickInterval = 500 * time.Millisecond
)

// Config holds configuration for a session
type Config struct {
	Rooms    room.Service
	Store    SessionStore
	Renderer Renderer
	Clock    clock.Clock

	HeartbeatInterval time.Duration
	TickInterval      time.Duration
}

// Session keeps one client in sync with the room it is in. Every committed
// room and presence change is pushed to the Renderer. Actions never render
// locally; the actor sees its own change when the push arrives.
type Session struct {
	rooms    room.Service
	store    SessionStore
	renderer Renderer
	clock    clock.Clock

	heartbeatInterval time.Duration
	tickInterval      time.Duration

	mu     sync.Mutex
	draft  string
	open   bool
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a session. It does nothing until Open is called.
func New(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Rooms == nil {
		return nil, errors.New("room service cannot be nil")
	}
	if cfg.Store == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("renderer cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	heartbeat := cfg.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeatInterval
	}
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}

	return &Session{
		rooms:             cfg.Rooms,
		store:             cfg.Store,
		renderer:          cfg.Renderer,
		clock:             cfg.Clock,
		heartbeatInterval: heartbeat,
		tickInterval:      tick,
	}, nil
}

// TimeRemaining is the countdown a player sees while drawing
func TimeRemaining(r *models.GameRoom, player models.PlayerID, now time.Time) time.Duration {
	if r == nil {
		return 0
	}
	return r.TimeRemaining(player, now)
}

// CreateRoom creates a room hosted by the player and remembers it
func (s *Session) CreateRoom(ctx context.Context, hostID models.PlayerID, hostName string, settings *models.Settings) (*models.GameRoom, error) {
	out, err := s.rooms.CreateRoom(ctx, &room.CreateRoomInput{
		HostID:   hostID,
		HostName: hostName,
		Settings: settings,
	})
	if err != nil {
		return nil, err
	}

	if err := SaveIntent(ctx, s.store, Intent{RoomCode: out.Room.RoomCode, PlayerID: hostID, PlayerName: hostName}); err != nil {
		return nil, err
	}
	return out.Room, nil
}

// JoinRoom joins a room and remembers it. The intent is only saved when the
// player actually became a member.
func (s *Session) JoinRoom(ctx context.Context, code models.RoomCode, playerID models.PlayerID, name string) (*room.JoinRoomOutput, error) {
	out, err := s.rooms.JoinRoom(ctx, &room.JoinRoomInput{
		RoomCode:   code,
		PlayerID:   playerID,
		PlayerName: name,
	})
	if err != nil {
		return nil, err
	}
	if !out.Joined {
		return out, nil
	}

	if err := SaveIntent(ctx, s.store, Intent{RoomCode: out.Room.RoomCode, PlayerID: playerID, PlayerName: name}); err != nil {
		return nil, err
	}
	return out, nil
}

// Open subscribes to the remembered room and starts the session loop. The
// loop runs until ctx is done, Close or Leave is called, or the room goes away.
func (s *Session) Open(ctx context.Context) error {
	intent, err := LoadIntent(ctx, s.store)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.open {
		s.mu.Unlock()
		return ErrAlreadyOpen
	}
	s.open = true
	s.mu.Unlock()

	loopCtx, cancel := context.WithCancel(ctx)

	rooms := make(chan *models.GameRoom)
	presence := make(chan models.Presence)

	roomSub, err := s.rooms.SubscribeRoom(loopCtx, &room.SubscribeRoomInput{
		RoomCode: intent.RoomCode,
		Callback: func(r *models.GameRoom) {
			select {
			case rooms <- r:
			case <-loopCtx.Done():
			}
		},
	})
	if err != nil {
		cancel()
		s.setClosed()
		return err
	}

	presenceSub, err := s.rooms.SubscribePresence(loopCtx, &room.SubscribePresenceInput{
		RoomCode: intent.RoomCode,
		Callback: func(p models.Presence) {
			select {
			case presence <- p:
			case <-loopCtx.Done():
			}
		},
	})
	if err != nil {
		cancel()
		_ = roomSub.Close()
		s.setClosed()
		return err
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer s.setClosed()
		defer func() {
			cancel()
			if err := roomSub.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close room subscription")
			}
			if err := presenceSub.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close presence subscription")
			}
		}()

		s.run(loopCtx, intent, rooms, presence)
	}()

	log.Info().
		Str("room_code", string(intent.RoomCode)).
		Str("player_id", string(intent.PlayerID)).
		Msg("session opened")

	return nil
}

func (s *Session) setClosed() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// run is the session loop. Every push, heartbeat and timer check happens
// here so the renderer is only ever called from one goroutine.
func (s *Session) run(ctx context.Context, intent Intent, rooms <-chan *models.GameRoom, presence <-chan models.Presence) {
	heartbeat := time.NewTicker(s.heartbeatInterval)
	defer heartbeat.Stop()
	tick := time.NewTicker(s.tickInterval)
	defer tick.Stop()

	s.heartbeat(ctx, intent)

	var latest *models.GameRoom
	wasMember := false
	submittedRound := -1

	for {
		select {
		case <-ctx.Done():
			return

		case r := <-rooms:
			if r == nil || (wasMember && !r.HasPlayer(intent.PlayerID)) {
				s.roomGone(intent)
				return
			}
			if r.HasPlayer(intent.PlayerID) {
				wasMember = true
			}
			latest = r
			s.renderer.RenderRoom(r)

		case p := <-presence:
			s.renderer.RenderPresence(p, s.clock.Now())

		case <-heartbeat.C:
			s.heartbeat(ctx, intent)

		case <-tick.C:
			if latest == nil || latest.RoundNumber == submittedRound {
				continue
			}
			if s.autosubmit(ctx, intent, latest) {
				submittedRound = latest.RoundNumber
			}
		}
	}
}

func (s *Session) heartbeat(ctx context.Context, intent Intent) {
	err := s.rooms.Heartbeat(ctx, &room.HeartbeatInput{
		RoomCode: intent.RoomCode,
		PlayerID: intent.PlayerID,
	})
	if err != nil && ctx.Err() == nil {
		log.Warn().Err(err).
			Str("room_code", string(intent.RoomCode)).
			Msg("heartbeat failed")
	}
}

// autosubmit hands in the draft once the player's drawing timer runs out.
// It returns true once a submit was attempted for the round.
func (s *Session) autosubmit(ctx context.Context, intent Intent, r *models.GameRoom) bool {
	if !r.Status.IsDrawing() {
		return false
	}
	if _, started := r.DrawingDeadline(intent.PlayerID); !started {
		return false
	}
	if r.TimeRemaining(intent.PlayerID, s.clock.Now()) > 0 {
		return false
	}

	s.mu.Lock()
	draft := s.draft
	s.mu.Unlock()

	_, err := s.rooms.SubmitDrawing(ctx, &room.SubmitDrawingInput{
		RoomCode: intent.RoomCode,
		PlayerID: intent.PlayerID,
		Drawing:  draft,
	})
	if err != nil {
		log.Error().Err(err).
			Str("room_code", string(intent.RoomCode)).
			Int("round", r.RoundNumber).
			Msg("autosubmit failed")
	} else {
		log.Info().
			Str("room_code", string(intent.RoomCode)).
			Str("player_id", string(intent.PlayerID)).
			Int("round", r.RoundNumber).
			Msg("timer ran out, drawing submitted")
	}
	return true
}

func (s *Session) roomGone(intent Intent) {
	log.Info().
		Str("room_code", string(intent.RoomCode)).
		Str("player_id", string(intent.PlayerID)).
		Msg("room is gone, returning home")

	// the loop context may already be done, the store still has to be cleared
	if err := s.store.Clear(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to clear session")
	}
	s.renderer.RoomGone()
}

// SetDraft keeps the latest canvas so it can be handed in when the timer runs out
func (s *Session) SetDraft(drawing string) {
	s.mu.Lock()
	s.draft = drawing
	s.mu.Unlock()
}

// Done is closed when the session loop exits. It is nil before Open.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Close stops the session and keeps the remembered room, so a later Open
// picks up where it left off
func (s *Session) Close() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Leave forgets the room locally and stops the session. The player stays a
// member of the room.
func (s *Session) Leave(ctx context.Context) error {
	s.Close()
	return s.store.Clear(ctx)
}

func (s *Session) intent(ctx context.Context) (Intent, error) {
	return LoadIntent(ctx, s.store)
}

func (s *Session) ReadyUp(ctx context.Context) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.ReadyUp(ctx, &room.ReadyUpInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID})
}

func (s *Session) UpdateSettings(ctx context.Context, settings models.Settings) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.UpdateSettings(ctx, &room.UpdateSettingsInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID, Settings: settings})
}

func (s *Session) UploadImage(ctx context.Context, url string) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.UploadImage(ctx, &room.UploadImageInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID, URL: url})
}

func (s *Session) KickPlayer(ctx context.Context, target models.PlayerID) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.KickPlayer(ctx, &room.KickPlayerInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID, TargetID: target})
}

func (s *Session) StartRound(ctx context.Context) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.StartRound(ctx, &room.StartRoundInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID})
}

// PlayerReady starts this player's drawing timer
func (s *Session) PlayerReady(ctx context.Context) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.PlayerReady(ctx, &room.PlayerReadyInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID})
}

// SubmitDrawing hands in drawing, or the current draft when drawing is empty
func (s *Session) SubmitDrawing(ctx context.Context, drawing string) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	if drawing == "" {
		s.mu.Lock()
		drawing = s.draft
		s.mu.Unlock()
	}
	return s.rooms.SubmitDrawing(ctx, &room.SubmitDrawingInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID, Drawing: drawing})
}

func (s *Session) SubmitVote(ctx context.Context, target models.PlayerID) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.SubmitVote(ctx, &room.SubmitVoteInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID, TargetID: target})
}

func (s *Session) TriggerSabotage(ctx context.Context, target models.PlayerID, effect models.SabotageEffect) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.TriggerSabotage(ctx, &room.TriggerSabotageInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID, TargetID: target, Effect: effect})
}

func (s *Session) NextRound(ctx context.Context) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.NextRound(ctx, &room.NextRoundInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID})
}

func (s *Session) EndGame(ctx context.Context) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.EndGame(ctx, &room.EndGameInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID})
}

func (s *Session) ResetGame(ctx context.Context) (*room.MutationOutput, error) {
	in, err := s.intent(ctx)
	if err != nil {
		return nil, err
	}
	return s.rooms.ResetGame(ctx, &room.ResetGameInput{RoomCode: in.RoomCode, PlayerID: in.PlayerID})
}
