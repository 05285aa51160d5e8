package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gitlab.com/zephyrtronium/tmi"

	"github.com/zephyrtronium/twitchpaster/dispatch"
	"github.com/zephyrtronium/twitchpaster/message"
)

func (robo *Robot) tmiLoop(ctx context.Context, send chan<- *tmi.Message, recv <-chan *tmi.Message, events chan<- dispatch.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-recv:
			if !ok {
				return
			}
			switch msg.Command {
			case "PRIVMSG":
				m := message.FromTMI(msg)
				ev := dispatch.Event{Message: m, Self: m.Login == robo.tmi.me}
				select {
				case events <- ev:
				default:
					slog.WarnContext(ctx, "dispatch queue full; dropping message",
						slog.String("in", m.To),
						slog.String("user", m.Login),
						slog.String("id", m.ID),
					)
				}
			case "NOTICE":
				slog.InfoContext(ctx, "TMI notice", slog.String("channel", msg.To()), slog.String("text", msg.Trailing))
			case "GLOBALUSERSTATE":
				slog.InfoContext(ctx, "connected to TMI", slog.String("GLOBALUSERSTATE", msg.Tags))
			case "366": // End NAMES
				if len(msg.Params) > 1 {
					slog.InfoContext(ctx, "joined channel", slog.String("channel", msg.Params[1]))
				}
			case "376": // End MOTD
				go robo.joinTwitch(ctx, send)
			}
		}
	}
}

func (robo *Robot) joinTwitch(ctx context.Context, send chan<- *tmi.Message) {
	ls := robo.channels.List()
	burst := 20
	for len(ls) > 0 {
		l := ls[:min(burst, len(ls))]
		ls = ls[len(l):]
		msg := tmi.Message{
			Command: "JOIN",
			Params:  []string{strings.Join(l, ",")},
		}
		select {
		case <-ctx.Done():
			return
		case send <- &msg:
			// do nothing
		}
		if len(ls) > 0 {
			// Per https://dev.twitch.tv/docs/irc/#rate-limits we get 20 join
			// attempts per ten seconds. Use a slightly longer delay to ensure
			// we don't get globaled by clock drift.
			select {
			case <-ctx.Done():
				return
			case <-time.After(11 * time.Second):
			}
		}
	}
}

// sendTMI sends a message to TMI after waiting for the global rate limit.
func (robo *Robot) sendTMI(ctx context.Context, send chan<- *tmi.Message, msg message.Sent) {
	if err := robo.tmi.rate.Wait(ctx); err != nil {
		return
	}
	resp := message.ToTMI(msg)
	select {
	case <-ctx.Done():
		return
	case send <- resp:
	}
}

var errNoTMI = errors.New("no TMI connection")

// tmiChat is the chat connection used by commands and the dispatcher.
type tmiChat struct {
	robo *Robot
}

func (c *tmiChat) Message(ctx context.Context, msg message.Sent) {
	if c.robo.tmi == nil {
		slog.WarnContext(ctx, "no TMI connection for message", slog.String("to", msg.To), slog.String("text", msg.Text))
		return
	}
	c.robo.sendTMI(ctx, c.robo.tmi.send, msg)
}

func (c *tmiChat) Join(ctx context.Context, channel string) error {
	return c.membership(ctx, "JOIN", channel)
}

func (c *tmiChat) Part(ctx context.Context, channel string) error {
	return c.membership(ctx, "PART", channel)
}

func (c *tmiChat) membership(ctx context.Context, cmd, channel string) error {
	if c.robo.tmi == nil {
		return errNoTMI
	}
	msg := tmi.Message{
		Command: cmd,
		Params:  []string{channel},
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case c.robo.tmi.send <- &msg:
		return nil
	}
}
