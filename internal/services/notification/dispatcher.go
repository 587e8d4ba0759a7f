package notification

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogDispatcher writes every message to the log instead of delivering it.
// It is what runs when no real delivery channel is configured.
type LogDispatcher struct {
	logger zerolog.Logger
}

// NewLogDispatcher creates a dispatcher that logs at info level
func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{
		logger: log.With().Str("component", "log_dispatcher").Logger(),
	}
}

// Dispatch logs the message
func (d *LogDispatcher) Dispatch(ctx context.Context, msg *Message) error {
	if msg == nil {
		return errors.New("message cannot be nil")
	}

	d.logger.Info().
		Str("player_id", string(msg.PlayerID)).
		Str("title", msg.Title).
		Str("body", msg.Body).
		Str("link", msg.Link).
		Msg("notification")

	return nil
}

// MultiDispatcher hands each message to every dispatcher in turn and
// reports the first failure
type MultiDispatcher []Dispatcher

// Dispatch sends msg through every dispatcher
func (m MultiDispatcher) Dispatch(ctx context.Context, msg *Message) error {
	var first error
	for _, d := range m {
		if err := d.Dispatch(ctx, msg); err != nil && first == nil {
			first = err
		}
	}
	return first
}
