package notification

// NotificationError is a custom error type for notification errors
type NotificationError string

// Error implements the error interface
func (e NotificationError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidInput     NotificationError = "invalid input"
	ErrNotRecipient     NotificationError = "friend request is addressed to someone else"
	ErrNilConfig        NotificationError = "config cannot be nil"
	ErrNilEventRepo     NotificationError = "game event repository cannot be nil"
	ErrNilPushTokenRepo NotificationError = "push token repository cannot be nil"
	ErrNilInviteRepo    NotificationError = "invite repository cannot be nil"
	ErrNilMessaging     NotificationError = "messaging service cannot be nil"
	ErrNilDispatcher    NotificationError = "dispatcher cannot be nil"
	ErrNilClock         NotificationError = "clock cannot be nil"
	ErrNilUUIDGenerator NotificationError = "UUID generator cannot be nil"
	ErrMissingBaseURL   NotificationError = "base URL cannot be empty"
)
