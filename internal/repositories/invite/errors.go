package invite

import "errors"

var (
	// ErrInviteNotFound is returned when an invite is not found
	ErrInviteNotFound = errors.New("invite not found")

	// ErrFriendRequestNotFound is returned when a friend request is not found
	ErrFriendRequestNotFound = errors.New("friend request not found")

	// ErrFriendRequestExists is returned when saving a request whose ID is taken
	ErrFriendRequestExists = errors.New("friend request already exists")

	// ErrFriendRequestAnswered is returned when responding to a request that is no longer pending
	ErrFriendRequestAnswered = errors.New("friend request already answered")

	// ErrInvalidFriendRequestStatus is returned when a response is neither accepted nor declined
	ErrInvalidFriendRequestStatus = errors.New("invalid friend request status")

	// ErrTooManyConflicts is returned when a record kept changing under a transaction
	ErrTooManyConflicts = errors.New("too many conflicting updates")
)
