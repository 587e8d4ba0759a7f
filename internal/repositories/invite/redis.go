package invite

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
	inviteKeyPrefix        = "invite:"
	friendRequestKeyPrefix = "friend_request:"

	maxTxRetries  = 10
	scanBatchSize = 100
)

// Config holds configuration for the Redis invite repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed invite repository
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

func inviteKey(id string) string {
	return fmt.Sprintf("%s%s", inviteKeyPrefix, id)
}

// errUnchanged tells mutate to skip the write
var errUnchanged = errors.New("unchanged")

// mutate reads key, hands it to fn and writes the result back inside
// WATCH/MULTI, retrying when the key changes underneath. fn returning
// errUnchanged skips the write without failing.
func (r *redisRepository) mutate(ctx context.Context, key string, notFound error, fn func(raw []byte) ([]byte, error)) (bool, error) {
	var written bool
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return notFound
			}
			return fmt.Errorf("failed to get %s: %w", key, err)
		}

		updated, err := fn(raw)
		if errors.Is(err, errUnchanged) {
			written = false
			return nil
		}
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		if err != nil {
			return err
		}

		written = true
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return written, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return false, err
	}

	return false, ErrTooManyConflicts
}

// scan returns the raw value of every key under prefix
func (r *redisRepository) scan(ctx context.Context, prefix string) ([][]byte, error) {
	var values [][]byte
	iter := r.client.Scan(ctx, 0, prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		raw, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get %s: %w", iter.Val(), err)
		}
		values = append(values, raw)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", prefix, err)
	}
	return values, nil
}

// SaveInvite creates or replaces an invite
func (r *redisRepository) SaveInvite(ctx context.Context, input *SaveInviteInput) error {
	if input == nil || input.Invite == nil {
		return errors.New("input and invite cannot be nil")
	}
	if input.Invite.ID == "" {
		return errors.New("invite ID cannot be empty")
	}

	inviteJSON, err := json.Marshal(input.Invite)
	if err != nil {
		return fmt.Errorf("failed to marshal invite: %w", err)
	}

	if err := r.client.Set(ctx, inviteKey(input.Invite.ID), inviteJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save invite: %w", err)
	}

	return nil
}

// GetInvite retrieves an invite by ID
func (r *redisRepository) GetInvite(ctx context.Context, input *GetInviteInput) (*models.GameInvite, error) {
	if input == nil || input.InviteID == "" {
		return nil, errors.New("input and invite ID cannot be empty")
	}

	raw, err := r.client.Get(ctx, inviteKey(input.InviteID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	var invite models.GameInvite
	if err := json.Unmarshal(raw, &invite); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invite: %w", err)
	}

	return &invite, nil
}

// MarkInviteSent flips notificationSent so the invite push goes out once
func (r *redisRepository) MarkInviteSent(ctx context.Context, input *MarkInviteSentInput) (*MarkInviteSentOutput, error) {
	if input == nil || input.InviteID == "" {
		return nil, errors.New("input and invite ID cannot be empty")
	}

	marked, err := r.mutate(ctx, inviteKey(input.InviteID), ErrInviteNotFound, func(raw []byte) ([]byte, error) {
		var invite models.GameInvite
		if err := json.Unmarshal(raw, &invite); err != nil {
			return nil, fmt.Errorf("failed to unmarshal invite: %w", err)
		}
		if invite.NotificationSent {
			return nil, errUnchanged
		}
		invite.NotificationSent = true
		return json.Marshal(&invite)
	})
	if err != nil {
		return nil, err
	}

	return &MarkInviteSentOutput{Marked: marked}, nil
}

// ListInvites retrieves invites, filtered by recipient when ToPlayerID is set
func (r *redisRepository) ListInvites(ctx context.Context, input *ListInvitesInput) (*ListInvitesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	values, err := r.scan(ctx, inviteKeyPrefix)
	if err != nil {
		return nil, err
	}

	invites := make([]*models.GameInvite, 0, len(values))
	for _, raw := range values {
		var invite models.GameInvite
		if err := json.Unmarshal(raw, &invite); err != nil {
			return nil, fmt.Errorf("failed to unmarshal invite: %w", err)
		}
		if input.ToPlayerID != "" && invite.ToPlayerID != input.ToPlayerID {
			continue
		}
		invites = append(invites, &invite)
	}

	return &ListInvitesOutput{Invites: invites}, nil
}

// DeleteInvite removes an invite
func (r *redisRepository) DeleteInvite(ctx context.Context, input *DeleteInviteInput) error {
	if input == nil || input.InviteID == "" {
		return errors.New("input and invite ID cannot be empty")
	}

	if err := r.client.Del(ctx, inviteKey(input.InviteID)).Err(); err != nil {
		return fmt.Errorf("failed to delete invite: %w", err)
	}

	return nil
}
