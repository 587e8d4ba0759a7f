package invite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/redis/go-redis/v9"
)

func friendRequestKey(id string) string {
	return fmt.Sprintf("%s%s", friendRequestKeyPrefix, id)
}

// SaveFriendRequest creates a friend request. It never overwrites an existing one.
func (r *redisRepository) SaveFriendRequest(ctx context.Context, input *SaveFriendRequestInput) error {
	if input == nil || input.Request == nil {
		return errors.New("input and request cannot be nil")
	}
	if input.Request.ID == "" {
		return errors.New("request ID cannot be empty")
	}

	request := *input.Request
	if request.Status == "" {
		request.Status = models.FriendRequestPending
	}

	requestJSON, err := json.Marshal(&request)
	if err != nil {
		return fmt.Errorf("failed to marshal friend request: %w", err)
	}

	ok, err := r.client.SetNX(ctx, friendRequestKey(request.ID), requestJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save friend request: %w", err)
	}
	if !ok {
		return ErrFriendRequestExists
	}

	return nil
}

// GetFriendRequest retrieves a friend request by ID
func (r *redisRepository) GetFriendRequest(ctx context.Context, input *GetFriendRequestInput) (*models.FriendRequest, error) {
	if input == nil || input.RequestID == "" {
		return nil, errors.New("input and request ID cannot be empty")
	}

	raw, err := r.client.Get(ctx, friendRequestKey(input.RequestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrFriendRequestNotFound
		}
		return nil, fmt.Errorf("failed to get friend request: %w", err)
	}

	var request models.FriendRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friend request: %w", err)
	}

	return &request, nil
}

// RespondToFriendRequest answers a pending request. Only the first answer sticks.
func (r *redisRepository) RespondToFriendRequest(ctx context.Context, input *RespondToFriendRequestInput) (*models.FriendRequest, error) {
	if input == nil || input.RequestID == "" {
		return nil, errors.New("input and request ID cannot be empty")
	}
	if input.Status != models.FriendRequestAccepted && input.Status != models.FriendRequestDeclined {
		return nil, ErrInvalidFriendRequestStatus
	}

	var answered models.FriendRequest
	_, err := r.mutate(ctx, friendRequestKey(input.RequestID), ErrFriendRequestNotFound, func(raw []byte) ([]byte, error) {
		var request models.FriendRequest
		if err := json.Unmarshal(raw, &request); err != nil {
			return nil, fmt.Errorf("failed to unmarshal friend request: %w", err)
		}
		if request.Status != models.FriendRequestPending {
			return nil, ErrFriendRequestAnswered
		}
		request.Status = input.Status
		request.UpdatedAt = input.At
		answered = request
		return json.Marshal(&request)
	})
	if err != nil {
		return nil, err
	}

	return &answered, nil
}

// ListFriendRequests retrieves friend requests, filtered by recipient when ToPlayerID is set
func (r *redisRepository) ListFriendRequests(ctx context.Context, input *ListFriendRequestsInput) (*ListFriendRequestsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	values, err := r.scan(ctx, friendRequestKeyPrefix)
	if err != nil {
		return nil, err
	}

	requests := make([]*models.FriendRequest, 0, len(values))
	for _, raw := range values {
		var request models.FriendRequest
		if err := json.Unmarshal(raw, &request); err != nil {
			return nil, fmt.Errorf("failed to unmarshal friend request: %w", err)
		}
		if input.ToPlayerID != "" && request.ToPlayerID != input.ToPlayerID {
			continue
		}
		requests = append(requests, &request)
	}

	return &ListFriendRequestsOutput{Requests: requests}, nil
}

// DeleteFriendRequest removes a friend request
func (r *redisRepository) DeleteFriendRequest(ctx context.Context, input *DeleteFriendRequestInput) error {
	if input == nil || input.RequestID == "" {
		return errors.New("input and request ID cannot be empty")
	}

	if err := r.client.Del(ctx, friendRequestKey(input.RequestID)).Err(); err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}

	return nil
}
