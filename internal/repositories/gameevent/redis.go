package gameevent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	eventKeyPrefix = "game_event:"

	maxMarkRetries = 10
	scanBatchSize  = 100
)

var (
	// ErrEventNotFound is returned when an event is not found
	ErrEventNotFound = errors.New("game event not found")

	// ErrMarkConflict is returned when the flag could not be flipped because of constant contention
	ErrMarkConflict = errors.New("too many conflicting updates to game event")
)

// Config holds configuration for the Redis game event repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game event repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func eventKey(id string) string {
	return fmt.Sprintf("%s%s", eventKeyPrefix, id)
}

func decodeEvent(raw []byte) (*models.GameEvent, error) {
	var event models.GameEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game event: %w", err)
	}
	return &event, nil
}

// RecordEvent stores the event with SETNX so concurrent recorders agree on one record
func (r *redisRepository) RecordEvent(ctx context.Context, input *RecordEventInput) (*RecordEventOutput, error) {
	if input == nil || input.Event == nil {
		return nil, errors.New("input and event cannot be nil")
	}
	if input.Event.ID == "" {
		return nil, errors.New("event ID cannot be empty")
	}

	eventJSON, err := json.Marshal(input.Event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game event: %w", err)
	}

	created, err := r.client.SetNX(ctx, eventKey(input.Event.ID), eventJSON, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to record game event: %w", err)
	}

	if created {
		event := *input.Event
		return &RecordEventOutput{Event: &event, Created: true}, nil
	}

	existing, err := r.GetEvent(ctx, &GetEventInput{EventID: input.Event.ID})
	if err != nil {
		return nil, err
	}

	return &RecordEventOutput{Event: existing}, nil
}

// GetEvent retrieves an event by ID
func (r *redisRepository) GetEvent(ctx context.Context, input *GetEventInput) (*models.GameEvent, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.New("input and event ID cannot be empty")
	}

	raw, err := r.client.Get(ctx, eventKey(input.EventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get game event: %w", err)
	}

	return decodeEvent(raw)
}

// MarkNotificationSent flips the flag inside WATCH/MULTI so exactly one
// caller observes the false to true change
func (r *redisRepository) MarkNotificationSent(ctx context.Context, input *MarkNotificationSentInput) (*MarkNotificationSentOutput, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.New("input and event ID cannot be empty")
	}

	key := eventKey(input.EventID)
	var marked bool
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to get game event: %w", err)
		}

		event, err := decodeEvent(raw)
		if err != nil {
			return err
		}
		if event.NotificationSent {
			marked = false
			return nil
		}

		event.NotificationSent = true
		eventJSON, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal game event: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, eventJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}

		marked = true
		return nil
	}

	for i := 0; i < maxMarkRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &MarkNotificationSentOutput{Marked: marked}, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to mark game event: %w", err)
	}

	return nil, ErrMarkConflict
}

// ListEvents retrieves every stored event
func (r *redisRepository) ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	events := []*models.GameEvent{}
	iter := r.client.Scan(ctx, 0, eventKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		raw, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get game event: %w", err)
		}
		event, err := decodeEvent(raw)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan game events: %w", err)
	}

	return &ListEventsOutput{Events: events}, nil
}

// DeleteEvent removes an event
func (r *redisRepository) DeleteEvent(ctx context.Context, input *DeleteEventInput) error {
	if input == nil || input.EventID == "" {
		return errors.New("input and event ID cannot be empty")
	}

	if err := r.client.Del(ctx, eventKey(input.EventID)).Err(); err != nil {
		return fmt.Errorf("failed to delete game event: %w", err)
	}

	return nil
}
