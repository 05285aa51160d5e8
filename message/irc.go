package message

import (
	"strconv"
	"strings"

	"gitlab.com/zephyrtronium/tmi"
)

// FromTMI adapts a TMI PRIVMSG.
func FromTMI(m *tmi.Message) *Received {
	id, _ := m.Tag("id")
	ts, _ := m.Tag("tmi-sent-ts")
	u, _ := strconv.ParseInt(ts, 10, 64)
	r := Received{
		ID:        id,
		To:        m.To(),
		Login:     strings.ToLower(m.Nick),
		Name:      m.DisplayName(),
		Text:      m.Trailing,
		Timestamp: u,
	}
	return &r
}

// ToTMI creates a message to send to TMI. If msg.Reply is not empty, then the
// result is a reply to the message with that ID.
func ToTMI(msg Sent) *tmi.Message {
	r := tmi.Privmsg(msg.To, msg.Text)
	if msg.Reply != "" {
		r.Tags = "reply-parent-msg-id=" + msg.Reply
	}
	return r
}
