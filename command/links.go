package command

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/zephyrtronium/twitchpaster/links"
)

// LastLink replies with the most recent paste link generated in the channel
// which has not yet expired.
// No arguments.
func LastLink(ctx context.Context, robo *Robot, call *Invocation) {
	now := call.Message.Time()
	if call.Message.Timestamp == 0 {
		now = time.Now()
	}
	l, err := robo.Links.Last(ctx, call.Channel, now)
	switch {
	case err == nil:
		call.reply(ctx, robo, "The last PasteBin link generated by TwitchPaster was: "+l.URL)
	case errors.Is(err, links.ErrNoLinks):
		call.reply(ctx, robo, "TwitchPaster has no PasteBin links available for this channel!")
	default:
		robo.Log.ErrorContext(ctx, "couldn't get last link", slog.String("channel", call.Channel), slog.Any("err", err))
		call.reply(ctx, robo, "TwitchPaster has no PasteBin links available for this channel!")
	}
}
