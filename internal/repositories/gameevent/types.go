package gameevent

import "github.com/KirkDiggler/sketchparty/internal/models"

type RecordEventInput struct {
	Event *models.GameEvent
}

type RecordEventOutput struct {
	Event *models.GameEvent

	// Created is false when the event had already been recorded
	Created bool
}

type GetEventInput struct {
	EventID string
}

type MarkNotificationSentInput struct {
	EventID string
}

type MarkNotificationSentOutput struct {
	// Marked is false when another worker had already marked the event
	Marked bool
}

type ListEventsInput struct {
}

type ListEventsOutput struct {
	Events []*models.GameEvent
}

type DeleteEventInput struct {
	EventID string
}
