package housekeeping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	gameEventRepo "github.com/KirkDiggler/sketchparty/internal/repositories/gameevent"
	inviteRepo "github.com/KirkDiggler/sketchparty/internal/repositories/invite"
	presenceRepo "github.com/KirkDiggler/sketchparty/internal/repositories/presence"
	roomRepo "github.com/KirkDiggler/sketchparty/internal/repositories/room"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMaxAge is how long a record may sit untouched before it is swept
	DefaultMaxAge = 24 * time.Hour

	// DefaultInterval is how often Run sweeps
	DefaultInterval = time.Hour
)

// Config holds configuration for the sweeper
type Config struct {
	RoomRepo     roomRepo.Repository
	PresenceRepo presenceRepo.Repository
	InviteRepo   inviteRepo.Repository
	EventRepo    gameEventRepo.Repository
	Clock        clock.Clock

	MaxAge   time.Duration
	Interval time.Duration
}

// Report counts what one sweep deleted
type Report struct {
	Rooms          int
	Presence       int
	Invites        int
	FriendRequests int
	Events         int

	// Failed counts records that could not be deleted; they are retried next sweep
	Failed int
}

// Sweeper deletes abandoned rooms and everything hanging off them. Push
// tokens are kept, they belong to players rather than games.
type Sweeper struct {
	rooms    roomRepo.Repository
	presence presenceRepo.Repository
	invites  inviteRepo.Repository
	events   gameEventRepo.Repository
	clock    clock.Clock
	maxAge   time.Duration
	interval time.Duration
}

// New creates a new sweeper
func New(cfg *Config) (*Sweeper, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RoomRepo == nil {
		return nil, errors.New("room repository cannot be nil")
	}
	if cfg.PresenceRepo == nil {
		return nil, errors.New("presence repository cannot be nil")
	}
	if cfg.InviteRepo == nil {
		return nil, errors.New("invite repository cannot be nil")
	}
	if cfg.EventRepo == nil {
		return nil, errors.New("game event repository cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Sweeper{
		rooms:    cfg.RoomRepo,
		presence: cfg.PresenceRepo,
		invites:  cfg.InviteRepo,
		events:   cfg.EventRepo,
		clock:    cfg.Clock,
		maxAge:   maxAge,
		interval: interval,
	}, nil
}

// Run sweeps once right away and then every interval until ctx is done
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.Sweep(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Msg("sweep failed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Sweep deletes every record older than the max age. A room counts from its
// last commit, presence from its newest heartbeat.
func (s *Sweeper) Sweep(ctx context.Context) (*Report, error) {
	cutoff := s.clock.Now().Add(-s.maxAge)
	report := &Report{}

	if err := s.sweepRooms(ctx, cutoff, report); err != nil {
		return nil, err
	}
	if err := s.sweepPresence(ctx, cutoff, report); err != nil {
		return nil, err
	}
	if err := s.sweepInvites(ctx, cutoff, report); err != nil {
		return nil, err
	}
	if err := s.sweepFriendRequests(ctx, cutoff, report); err != nil {
		return nil, err
	}
	if err := s.sweepEvents(ctx, cutoff, report); err != nil {
		return nil, err
	}

	log.Info().
		Int("rooms", report.Rooms).
		Int("presence", report.Presence).
		Int("invites", report.Invites).
		Int("friend_requests", report.FriendRequests).
		Int("events", report.Events).
		Int("failed", report.Failed).
		Time("cutoff", cutoff).
		Msg("sweep finished")

	return report, nil
}

func (s *Sweeper) sweepRooms(ctx context.Context, cutoff time.Time, report *Report) error {
	out, err := s.rooms.ListRooms(ctx, &roomRepo.ListRoomsInput{})
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	for _, r := range out.Rooms {
		if !r.UpdatedAt.Before(cutoff) {
			continue
		}

		err := s.rooms.DeleteRoom(ctx, &roomRepo.DeleteRoomInput{RoomCode: r.RoomCode})
		if err != nil && !errors.Is(err, roomRepo.ErrRoomNotFound) {
			report.Failed++
			log.Error().Err(err).Str("room_code", string(r.RoomCode)).Msg("failed to delete room")
			continue
		}
		report.Rooms++
	}

	return nil
}

// sweepPresence goes by heartbeat age alone. A room listed as missing may
// have been created after the room scan, so its fresh heartbeats stay.
func (s *Sweeper) sweepPresence(ctx context.Context, cutoff time.Time, report *Report) error {
	out, err := s.presence.ListPresence(ctx, &presenceRepo.ListPresenceInput{})
	if err != nil {
		return fmt.Errorf("failed to list presence: %w", err)
	}

	for code, presence := range out.Rooms {
		if !presence.Newest().Before(cutoff) {
			continue
		}

		if err := s.presence.DeletePresence(ctx, &presenceRepo.DeletePresenceInput{RoomCode: code}); err != nil {
			report.Failed++
			log.Error().Err(err).Str("room_code", string(code)).Msg("failed to delete presence")
			continue
		}
		report.Presence++
	}

	return nil
}

func (s *Sweeper) sweepInvites(ctx context.Context, cutoff time.Time, report *Report) error {
	out, err := s.invites.ListInvites(ctx, &inviteRepo.ListInvitesInput{})
	if err != nil {
		return fmt.Errorf("failed to list invites: %w", err)
	}

	for _, invite := range out.Invites {
		if !invite.CreatedAt.Before(cutoff) {
			continue
		}

		err := s.invites.DeleteInvite(ctx, &inviteRepo.DeleteInviteInput{InviteID: invite.ID})
		if err != nil && !errors.Is(err, inviteRepo.ErrInviteNotFound) {
			report.Failed++
			log.Error().Err(err).Str("invite_id", invite.ID).Msg("failed to delete invite")
			continue
		}
		report.Invites++
	}

	return nil
}

func (s *Sweeper) sweepFriendRequests(ctx context.Context, cutoff time.Time, report *Report) error {
	out, err := s.invites.ListFriendRequests(ctx, &inviteRepo.ListFriendRequestsInput{})
	if err != nil {
		return fmt.Errorf("failed to list friend requests: %w", err)
	}

	for _, request := range out.Requests {
		if !request.UpdatedAt.Before(cutoff) {
			continue
		}

		err := s.invites.DeleteFriendRequest(ctx, &inviteRepo.DeleteFriendRequestInput{RequestID: request.ID})
		if err != nil && !errors.Is(err, inviteRepo.ErrFriendRequestNotFound) {
			report.Failed++
			log.Error().Err(err).Str("request_id", request.ID).Msg("failed to delete friend request")
			continue
		}
		report.FriendRequests++
	}

	return nil
}

func (s *Sweeper) sweepEvents(ctx context.Context, cutoff time.Time, report *Report) error {
	out, err := s.events.ListEvents(ctx, &gameEventRepo.ListEventsInput{})
	if err != nil {
		return fmt.Errorf("failed to list game events: %w", err)
	}

	for _, event := range out.Events {
		if !event.CreatedAt.Before(cutoff) {
			continue
		}

		if err := s.events.DeleteEvent(ctx, &gameEventRepo.DeleteEventInput{EventID: event.ID}); err != nil {
			report.Failed++
			log.Error().Err(err).Str("event_id", event.ID).Msg("failed to delete game event")
			continue
		}
		report.Events++
	}

	return nil
}
