package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// Key prefixes for Redis
	presenceKeyPrefix     = "presence:"
	presenceChannelSuffix = ":updates"

	scanBatchSize = 100
)

// Config holds configuration for the Redis presence repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Clock stamps heartbeats, defaults to the wall clock
	Clock clock.Clock
}

// redisRepository implements the Repository interface using one Redis hash per room
type redisRepository struct {
	client *redis.Client
	clock  clock.Clock
}

// update is what travels over the presence channel
type update struct {
	PlayerID models.PlayerID `json:"playerId,omitempty"`
	LastSeen int64           `json:"lastSeen,omitempty"`
	Removed  bool            `json:"removed,omitempty"`
	Cleared  bool            `json:"cleared,omitempty"`
}

// NewRedis creates a new Redis-backed presence repository
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

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &redisRepository{
		client: cfg.RedisClient,
		clock:  clk,
	}, nil
}

func presenceKey(code models.RoomCode) string {
	return fmt.Sprintf("%s%s", presenceKeyPrefix, code)
}

func presenceChannel(code models.RoomCode) string {
	return presenceKey(code) + presenceChannelSuffix
}

func (r *redisRepository) publish(ctx context.Context, code models.RoomCode, u update) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal presence update: %w", err)
	}
	return r.client.Publish(ctx, presenceChannel(code), payload).Err()
}

// Heartbeat records the current time for the player
func (r *redisRepository) Heartbeat(ctx context.Context, input *HeartbeatInput) error {
	if input == nil || input.RoomCode == "" || input.PlayerID == "" {
		return errors.New("input, room code and player ID cannot be empty")
	}

	now := r.clock.Now().UnixMilli()
	if err := r.client.HSet(ctx, presenceKey(input.RoomCode), string(input.PlayerID), now).Err(); err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}

	if err := r.publish(ctx, input.RoomCode, update{PlayerID: input.PlayerID, LastSeen: now}); err != nil {
		return fmt.Errorf("failed to publish heartbeat: %w", err)
	}

	return nil
}

// GetPresence retrieves the heartbeats of a room. A room nobody has
// reported in yet has an empty map.
func (r *redisRepository) GetPresence(ctx context.Context, input *GetPresenceInput) (models.Presence, error) {
	if input == nil || input.RoomCode == "" {
		return nil, errors.New("input and room code cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, presenceKey(input.RoomCode)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get presence: %w", err)
	}

	return decodePresence(fields), nil
}

func decodePresence(fields map[string]string) models.Presence {
	presence := make(models.Presence, len(fields))
	for id, raw := range fields {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Warn().Str("player_id", id).Str("value", raw).Msg("ignoring unreadable heartbeat")
			continue
		}
		presence[models.PlayerID(id)] = time.UnixMilli(ms).UTC()
	}
	return presence
}

// RemovePlayer forgets a single player's heartbeat
func (r *redisRepository) RemovePlayer(ctx context.Context, input *RemovePlayerInput) error {
	if input == nil || input.RoomCode == "" || input.PlayerID == "" {
		return errors.New("input, room code and player ID cannot be empty")
	}

	if err := r.client.HDel(ctx, presenceKey(input.RoomCode), string(input.PlayerID)).Err(); err != nil {
		return fmt.Errorf("failed to remove player presence: %w", err)
	}

	if err := r.publish(ctx, input.RoomCode, update{PlayerID: input.PlayerID, Removed: true}); err != nil {
		return fmt.Errorf("failed to publish presence removal: %w", err)
	}

	return nil
}

// DeletePresence forgets every heartbeat of a room
func (r *redisRepository) DeletePresence(ctx context.Context, input *DeletePresenceInput) error {
	if input == nil || input.RoomCode == "" {
		return errors.New("input and room code cannot be empty")
	}

	if err := r.client.Del(ctx, presenceKey(input.RoomCode)).Err(); err != nil {
		return fmt.Errorf("failed to delete presence: %w", err)
	}

	if err := r.publish(ctx, input.RoomCode, update{Cleared: true}); err != nil {
		return fmt.Errorf("failed to publish presence reset: %w", err)
	}

	return nil
}

// ListPresence retrieves the heartbeats of every room that has any
func (r *redisRepository) ListPresence(ctx context.Context, input *ListPresenceInput) (*ListPresenceOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	rooms := make(map[models.RoomCode]models.Presence)
	iter := r.client.Scan(ctx, 0, presenceKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get presence: %w", err)
		}
		code := models.RoomCode(strings.TrimPrefix(key, presenceKeyPrefix))
		rooms[code] = decodePresence(fields)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan presence: %w", err)
	}

	return &ListPresenceOutput{Rooms: rooms}, nil
}
