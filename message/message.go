package message

import (
	"fmt"
	"strings"
	"time"
)

// Received is a chat message received from TMI.
type Received struct {
	// ID is the unique ID of the message.
	ID string
	// To is the channel to which the message was sent.
	To string
	// Login is the login name of the message sender.
	Login string
	// Name is the display name of the message sender.
	Name string
	// Text is the text of the message.
	Text string
	// Timestamp is the timestamp of the message as milliseconds since the
	// Unix epoch.
	Timestamp int64
}

func (m *Received) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// DisplayName returns the sender's display name, or their login if they
// have none.
func (m *Received) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Login
}

// Sent is a message to be sent to a channel.
type Sent struct {
	// Reply is a message to reply to. If empty, the message is not interpreted
	// as a reply.
	Reply string
	// To is the channel to which the message is sent.
	To string
	// Text is the message text.
	Text string
}

// formatString is a type to prevent misuse of format strings passed to [Format].
type formatString string

// Format constructs a message to send from a format string literal and
// formatting arguments.
func Format(reply, to string, f formatString, args ...any) Sent {
	return Sent{
		Reply: reply,
		To:    to,
		Text:  strings.TrimSpace(fmt.Sprintf(string(f), args...)),
	}
}
