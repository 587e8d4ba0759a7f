package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Subscription is a live feed of one room. Close stops delivery and
// releases the underlying connection.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Close stops the subscription and waits for the callback to return.
// It is safe to call on a nil Subscription and more than once.
func (s *Subscription) Close() error {
	if s == nil || s.cancel == nil {
		return nil
	}
	s.cancel()
	<-s.done
	return nil
}

// SubscribeToRoom delivers the current room right away and then every
// committed version in commit order. The callback runs on a single
// goroutine and receives nil when the room is deleted or does not exist.
func (r *redisRepository) SubscribeToRoom(ctx context.Context, input *SubscribeToRoomInput) (*Subscription, error) {
	if input == nil || input.RoomCode == "" {
		return nil, errors.New("input and room code cannot be empty")
	}
	if input.Callback == nil {
		return nil, errors.New("callback cannot be nil")
	}

	pubsub := r.client.Subscribe(ctx, roomChannel(input.RoomCode))

	// Wait for the subscription to be confirmed so no commit made after
	// this call returns can be missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to room: %w", err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go r.deliver(subCtx, pubsub, input, sub.done)

	return sub, nil
}

func (r *redisRepository) deliver(ctx context.Context, pubsub *redis.PubSub, input *SubscribeToRoomInput, done chan struct{}) {
	defer close(done)
	defer pubsub.Close()

	logger := log.With().Str("room_code", string(input.RoomCode)).Logger()

	// Revisions only grow, so anything at or below the last delivered one is stale
	var lastRevision int64
	push := func(room *models.GameRoom) {
		if room == nil {
			lastRevision = 0
			input.Callback(nil)
			return
		}
		if room.Revision <= lastRevision {
			return
		}
		lastRevision = room.Revision
		input.Callback(room)
	}

	snapshot, err := r.GetRoom(ctx, &GetRoomInput{RoomCode: input.RoomCode})
	switch {
	case errors.Is(err, ErrRoomNotFound):
		push(nil)
	case err != nil:
		if ctx.Err() != nil {
			return
		}
		logger.Error().Err(err).Msg("failed to load initial room snapshot")
	default:
		push(snapshot)
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if msg.Payload == "" {
				push(nil)
				continue
			}
			room, err := NormalizeRoom([]byte(msg.Payload))
			if err != nil {
				logger.Warn().Err(err).Msg("dropping unreadable room update")
				continue
			}
			push(room)
		}
	}
}
