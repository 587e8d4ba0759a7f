package models

import "time"

// GameInvite asks a player to join a room
type GameInvite struct {
	ID           string    `json:"id"`
	RoomCode     RoomCode  `json:"roomCode"`
	FromPlayerID PlayerID  `json:"fromPlayerId"`
	ToPlayerID   PlayerID  `json:"toPlayerId"`
	CreatedAt    time.Time `json:"createdAt"`

	// NotificationSent guards the invite push so it goes out at most once
	NotificationSent bool `json:"notificationSent"`
}

// FriendRequestStatus is the lifecycle of a friend request
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// FriendRequest is a pending or answered friendship between two players
type FriendRequest struct {
	ID           string              `json:"id"`
	FromPlayerID PlayerID            `json:"fromPlayerId"`
	ToPlayerID   PlayerID            `json:"toPlayerId"`
	Status       FriendRequestStatus `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}
