package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sketchparty/internal/services/notification"
	"github.com/bwmarrin/discordgo"
)

// DirectMessenger is the part of a Discord session needed to send a DM
type DirectMessenger interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Dispatcher delivers notifications as Discord DMs. The push token of a
// player is their Discord user ID.
type Dispatcher struct {
	messenger DirectMessenger
}

// NewDispatcher creates a DM dispatcher
func NewDispatcher(messenger DirectMessenger) (*Dispatcher, error) {
	if messenger == nil {
		return nil, errors.New("messenger cannot be nil")
	}
	return &Dispatcher{messenger: messenger}, nil
}

var _ notification.Dispatcher = (*Dispatcher)(nil)

// Dispatch sends msg to the DM channel of msg.Token
func (d *Dispatcher) Dispatch(ctx context.Context, msg *notification.Message) error {
	if msg == nil || msg.Token == "" {
		return errors.New("message and token cannot be empty")
	}

	channel, err := d.messenger.UserChannelCreate(msg.Token, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Body,
		URL:         msg.Link,
		Color:       colorGreen,
	}
	if _, err := d.messenger.ChannelMessageSendEmbed(channel.ID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}

	return nil
}
