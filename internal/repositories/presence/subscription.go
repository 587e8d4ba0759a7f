package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Subscription is a live feed of one room's presence
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

// SubscribePresence delivers the current presence map right away and then
// the merged map after every heartbeat
func (r *redisRepository) SubscribePresence(ctx context.Context, input *SubscribePresenceInput) (*Subscription, error) {
	if input == nil || input.RoomCode == "" {
		return nil, errors.New("input and room code cannot be empty")
	}
	if input.Callback == nil {
		return nil, errors.New("callback cannot be nil")
	}

	pubsub := r.client.Subscribe(ctx, presenceChannel(input.RoomCode))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to presence: %w", err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go r.deliver(subCtx, pubsub, input, sub.done)

	return sub, nil
}

func (r *redisRepository) deliver(ctx context.Context, pubsub *redis.PubSub, input *SubscribePresenceInput, done chan struct{}) {
	defer close(done)
	defer pubsub.Close()

	logger := log.With().Str("room_code", string(input.RoomCode)).Logger()

	current, err := r.GetPresence(ctx, &GetPresenceInput{RoomCode: input.RoomCode})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Error().Err(err).Msg("failed to load initial presence")
		current = models.Presence{}
	}
	input.Callback(copyPresence(current))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var u update
			if err := json.Unmarshal([]byte(msg.Payload), &u); err != nil {
				logger.Warn().Err(err).Msg("dropping unreadable presence update")
				continue
			}

			switch {
			case u.Cleared:
				current = models.Presence{}
			case u.Removed:
				delete(current, u.PlayerID)
			default:
				seen := time.UnixMilli(u.LastSeen).UTC()
				// last writer wins, so an older heartbeat never overwrites a newer one
				if seen.Before(current[u.PlayerID]) {
					continue
				}
				current[u.PlayerID] = seen
			}

			input.Callback(copyPresence(current))
		}
	}
}

func copyPresence(p models.Presence) models.Presence {
	out := make(models.Presence, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
