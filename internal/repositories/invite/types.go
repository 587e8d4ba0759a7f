package invite

import (
	"time"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

type SaveInviteInput struct {
	Invite *models.GameInvite
}

type GetInviteInput struct {
	InviteID string
}

type MarkInviteSentInput struct {
	InviteID string
}

type MarkInviteSentOutput struct {
	Marked bool
}

type ListInvitesInput struct {
	// ToPlayerID filters by recipient when set
	ToPlayerID models.PlayerID
}

type ListInvitesOutput struct {
	Invites []*models.GameInvite
}

type DeleteInviteInput struct {
	InviteID string
}

type SaveFriendRequestInput struct {
	Request *models.FriendRequest
}

type GetFriendRequestInput struct {
	RequestID string
}

type RespondToFriendRequestInput struct {
	RequestID string
	Status    models.FriendRequestStatus
	At        time.Time
}

type ListFriendRequestsInput struct {
	// ToPlayerID filters by recipient when set
	ToPlayerID models.PlayerID
}

type ListFriendRequestsOutput struct {
	Requests []*models.FriendRequest
}

type DeleteFriendRequestInput struct {
	RequestID string
}
