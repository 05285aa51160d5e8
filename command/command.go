package command

import (
	"context"

	"github.com/zephyrtronium/twitchpaster/message"
)

// Invocation is a command invocation. An Invocation and its fields must not
// be modified or retained by any command.
type Invocation struct {
	// Channel is the channel where the invocation occurred.
	Channel string
	// Message is the message which triggered the invocation. It is always
	// non-nil, but not all fields are guaranteed to be populated.
	Message *message.Received
	// Args is the parsed arguments to the command.
	Args map[string]string
}

// Func executes a command.
type Func func(ctx context.Context, robo *Robot, call *Invocation)

// reply sends a reply to the invocation's message in its channel.
func (call *Invocation) reply(ctx context.Context, robo *Robot, text string) {
	robo.Chat.Message(ctx, message.Sent{Reply: call.Message.ID, To: call.Channel, Text: text})
}
