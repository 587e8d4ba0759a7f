package pushtoken

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
	tokenKeyPrefix = "push_token:"
)

// ErrTokenNotFound is returned when a player has no push token
var ErrTokenNotFound = errors.New("push token not found")

// Config holds configuration for the Redis push token repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed push token repository
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

func tokenKey(id models.PlayerID) string {
	return fmt.Sprintf("%s%s", tokenKeyPrefix, id)
}

// SaveToken stores or replaces a player's push token
func (r *redisRepository) SaveToken(ctx context.Context, input *SaveTokenInput) error {
	if input == nil || input.Token == nil {
		return errors.New("input and token cannot be nil")
	}
	if input.Token.PlayerID == "" || input.Token.Token == "" {
		return errors.New("player ID and token cannot be empty")
	}

	tokenJSON, err := json.Marshal(input.Token)
	if err != nil {
		return fmt.Errorf("failed to marshal push token: %w", err)
	}

	if err := r.client.Set(ctx, tokenKey(input.Token.PlayerID), tokenJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save push token: %w", err)
	}

	return nil
}

// GetToken retrieves a player's push token
func (r *redisRepository) GetToken(ctx context.Context, input *GetTokenInput) (*models.PushToken, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	tokenJSON, err := r.client.Get(ctx, tokenKey(input.PlayerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get push token: %w", err)
	}

	var token models.PushToken
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push token: %w", err)
	}

	return &token, nil
}

// GetTokens retrieves the tokens of several players in one round trip
func (r *redisRepository) GetTokens(ctx context.Context, input *GetTokensInput) (*GetTokensOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tokens := make(map[models.PlayerID]*models.PushToken, len(input.PlayerIDs))
	if len(input.PlayerIDs) == 0 {
		return &GetTokensOutput{Tokens: tokens}, nil
	}

	keys := make([]string, len(input.PlayerIDs))
	for i, id := range input.PlayerIDs {
		keys[i] = tokenKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get push tokens: %w", err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var token models.PushToken
		if err := json.Unmarshal([]byte(raw), &token); err != nil {
			return nil, fmt.Errorf("failed to unmarshal push token: %w", err)
		}
		tokens[input.PlayerIDs[i]] = &token
	}

	return &GetTokensOutput{Tokens: tokens}, nil
}

// DeleteToken removes a player's push token
func (r *redisRepository) DeleteToken(ctx context.Context, input *DeleteTokenInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	if err := r.client.Del(ctx, tokenKey(input.PlayerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete push token: %w", err)
	}

	return nil
}
