package gameevent

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sketchparty/internal/repositories/gameevent Repository

import (
	"context"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

// Repository stores the events notifications originate from
type Repository interface {
	// RecordEvent stores the event unless one with the same ID exists, and returns the stored one
	RecordEvent(ctx context.Context, input *RecordEventInput) (*RecordEventOutput, error)

	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, input *GetEventInput) (*models.GameEvent, error)

	// MarkNotificationSent flips the notificationSent flag, reporting false if it was already set
	MarkNotificationSent(ctx context.Context, input *MarkNotificationSentInput) (*MarkNotificationSentOutput, error)

	// ListEvents retrieves every stored event
	ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error)

	// DeleteEvent removes an event
	DeleteEvent(ctx context.Context, input *DeleteEventInput) error
}
