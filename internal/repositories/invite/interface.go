package invite

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sketchparty/internal/repositories/invite Repository

import (
	"context"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

// Repository stores game invites and friend requests
type Repository interface {
	// SaveInvite creates or replaces an invite
	SaveInvite(ctx context.Context, input *SaveInviteInput) error

	// GetInvite retrieves an invite by ID
	GetInvite(ctx context.Context, input *GetInviteInput) (*models.GameInvite, error)

	// MarkInviteSent flips the invite's notificationSent flag, reporting false if it was already set
	MarkInviteSent(ctx context.Context, input *MarkInviteSentInput) (*MarkInviteSentOutput, error)

	// ListInvites retrieves invites, optionally only those addressed to one player
	ListInvites(ctx context.Context, input *ListInvitesInput) (*ListInvitesOutput, error)

	// DeleteInvite removes an invite
	DeleteInvite(ctx context.Context, input *DeleteInviteInput) error

	// SaveFriendRequest creates a friend request
	SaveFriendRequest(ctx context.Context, input *SaveFriendRequestInput) error

	// GetFriendRequest retrieves a friend request by ID
	GetFriendRequest(ctx context.Context, input *GetFriendRequestInput) (*models.FriendRequest, error)

	// RespondToFriendRequest moves a pending request to accepted or declined
	RespondToFriendRequest(ctx context.Context, input *RespondToFriendRequestInput) (*models.FriendRequest, error)

	// ListFriendRequests retrieves friend requests, optionally only those addressed to one player
	ListFriendRequests(ctx context.Context, input *ListFriendRequestsInput) (*ListFriendRequestsOutput, error)

	// DeleteFriendRequest removes a friend request
	DeleteFriendRequest(ctx context.Context, input *DeleteFriendRequestInput) error
}
