package command

import (
	"context"
	"log/slog"

	"github.com/zephyrtronium/twitchpaster/channels"
	"github.com/zephyrtronium/twitchpaster/links"
	"github.com/zephyrtronium/twitchpaster/message"
)

// Chat is the chat connection as is visible to commands.
type Chat interface {
	// Message sends a message.
	Message(ctx context.Context, msg message.Sent)
	// Join joins a channel.
	Join(ctx context.Context, channel string) error
	// Part leaves a channel.
	Part(ctx context.Context, channel string) error
}

// Robot is the bot state as is visible to commands.
type Robot struct {
	Log      *slog.Logger
	Channels *channels.Registry
	Links    *links.History
	Chat     Chat
}
