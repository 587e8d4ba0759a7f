package room

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// Key prefixes for Redis
	roomKeyPrefix     = "room:"
	roomChannelSuffix = ":updates"

	// DefaultMaxRetries bounds how often a transition is re-run after losing a write race
	DefaultMaxRetries = 25

	scanBatchSize = 100
)

// Config holds configuration for the Redis room repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// MaxRetries defaults to DefaultMaxRetries
	MaxRetries int

	// Clock stamps UpdatedAt on every commit, defaults to the wall clock
	Clock clock.Clock
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client     *redis.Client
	clock      clock.Clock
	maxRetries int
}

// NewRedis creates a new Redis-backed room repository
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

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &redisRepository{
		client:     cfg.RedisClient,
		clock:      clk,
		maxRetries: maxRetries,
	}, nil
}

func roomKey(code models.RoomCode) string {
	return fmt.Sprintf("%s%s", roomKeyPrefix, code)
}

func roomChannel(code models.RoomCode) string {
	return roomKey(code) + roomChannelSuffix
}

// GetRoom retrieves a room by code from Redis
func (r *redisRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.GameRoom, error) {
	if input == nil || input.RoomCode == "" {
		return nil, errors.New("input and room code cannot be empty")
	}

	raw, err := r.client.Get(ctx, roomKey(input.RoomCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return NormalizeRoom(raw)
}

// CreateRoom stores a brand new room. It never overwrites an existing code.
func (r *redisRepository) CreateRoom(ctx context.Context, input *CreateRoomInput) error {
	if input == nil || input.Room == nil {
		return errors.New("input and room cannot be nil")
	}
	if input.Room.RoomCode == "" {
		return errors.New("room code cannot be empty")
	}

	room := input.Room.Clone().Normalize()
	room.Revision = 1
	if room.CreatedAt.IsZero() {
		room.CreatedAt = r.clock.Now()
	}
	room.UpdatedAt = room.CreatedAt

	roomJSON, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	ok, err := r.client.SetNX(ctx, roomKey(room.RoomCode), roomJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	if !ok {
		return ErrRoomExists
	}

	*input.Room = *room
	return nil
}

// UpdateRoom applies the transition inside WATCH/MULTI. If the room key
// changes between the read and EXEC the attempt is discarded and the
// transition runs again against the fresh document.
func (r *redisRepository) UpdateRoom(ctx context.Context, input *UpdateRoomInput) (*UpdateRoomOutput, error) {
	if input == nil || input.RoomCode == "" {
		return nil, errors.New("input and room code cannot be empty")
	}
	if input.Transition == nil {
		return nil, errors.New("transition cannot be nil")
	}

	key := roomKey(input.RoomCode)
	channel := roomChannel(input.RoomCode)

	var output *UpdateRoomOutput
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrTransactionAborted
			}
			return fmt.Errorf("failed to get room: %w", err)
		}

		current, err := NormalizeRoom(raw)
		if err != nil {
			return err
		}

		next := input.Transition(current.Clone())
		if next == nil {
			return ErrTransactionAborted
		}
		next = next.Normalize()
		next.RoomCode = current.RoomCode
		next.Revision = current.Revision
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = current.UpdatedAt

		unchanged, err := sameDocument(current, next)
		if err != nil {
			return err
		}
		if unchanged {
			output = &UpdateRoomOutput{Room: current, Previous: current}
			return nil
		}

		next.Revision = current.Revision + 1
		next.UpdatedAt = r.clock.Now()
		nextJSON, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}

		// The update is published inside the same MULTI so subscribers see
		// commits in the order they were applied.
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, nextJSON, 0)
			pipe.Publish(ctx, channel, nextJSON)
			return nil
		})
		if err != nil {
			return err
		}

		output = &UpdateRoomOutput{Room: next, Previous: current, Changed: true}
		return nil
	}

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			output.Attempts = attempt
			return output, nil
		}

		if errors.Is(err, redis.TxFailedErr) {
			log.Debug().
				Str("room_code", string(input.RoomCode)).
				Int("attempt", attempt).
				Msg("room changed during update, retrying")
			continue
		}

		if errors.Is(err, ErrRoomNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	log.Warn().
		Str("room_code", string(input.RoomCode)).
		Int("max_retries", r.maxRetries).
		Msg("gave up updating room after repeated conflicts")

	return nil, ErrConflictRetriesExhausted
}

func sameDocument(a, b *models.GameRoom) (bool, error) {
	aJSON, err := json.Marshal(a)
	if err != nil {
		return false, fmt.Errorf("failed to marshal room: %w", err)
	}
	bJSON, err := json.Marshal(b)
	if err != nil {
		return false, fmt.Errorf("failed to marshal room: %w", err)
	}
	return bytes.Equal(aJSON, bJSON), nil
}

// DeleteRoom removes a room and publishes an empty payload so subscribers
// learn the room is gone
func (r *redisRepository) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil || input.RoomCode == "" {
		return errors.New("input and room code cannot be empty")
	}

	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, roomKey(input.RoomCode))
		pipe.Publish(ctx, roomChannel(input.RoomCode), "")
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	if del.Val() == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// ListRooms retrieves every stored room
func (r *redisRepository) ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var keys []string
	iter := r.client.Scan(ctx, 0, roomKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan rooms: %w", err)
	}

	if len(keys) == 0 {
		return &ListRoomsOutput{Rooms: []*models.GameRoom{}}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, key)
	}

	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	rooms := make([]*models.GameRoom, 0, len(keys))
	for i, cmd := range cmds {
		raw, err := cmd.Bytes()
		if err != nil {
			// deleted between the scan and the get
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get room: %w", err)
		}

		room, err := NormalizeRoom(raw)
		if err != nil {
			log.Warn().Err(err).Str("key", keys[i]).Msg("skipping unreadable room")
			continue
		}
		rooms = append(rooms, room)
	}

	return &ListRoomsOutput{Rooms: rooms}, nil
}
