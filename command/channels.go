package command

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zephyrtronium/twitchpaster/channels"
)

// Join joins the invoker's own channel and remembers it.
// No arguments.
func Join(ctx context.Context, robo *Robot, call *Invocation) {
	ch := channels.Name(call.Message.Login)
	if robo.Channels.Has(ch) {
		call.reply(ctx, robo, channels.ErrAlreadyIn.Error())
		return
	}
	if err := robo.Chat.Join(ctx, ch); err != nil {
		robo.Log.ErrorContext(ctx, "couldn't join", slog.String("channel", ch), slog.Any("err", err))
		call.reply(ctx, robo, "Error joining channel!")
		return
	}
	switch err := robo.Channels.Join(ch); {
	case err == nil:
		robo.Log.InfoContext(ctx, "joined", slog.String("channel", ch), slog.String("by", call.Message.Login))
		call.reply(ctx, robo, "Joined channel "+ch+".")
	case errors.Is(err, channels.ErrAlreadyIn):
		// Someone else got there while we were joining.
		call.reply(ctx, robo, err.Error())
	default:
		robo.Log.ErrorContext(ctx, "couldn't save joined channel", slog.String("channel", ch), slog.Any("err", err))
		if err := robo.Chat.Part(ctx, ch); err != nil {
			robo.Log.ErrorContext(ctx, "couldn't part after failed join", slog.String("channel", ch), slog.Any("err", err))
		}
		call.reply(ctx, robo, "Error joining channel!")
	}
}

// Leave leaves the channel in which it is invoked. Only the channel owner may
// use it.
// No arguments.
func Leave(ctx context.Context, robo *Robot, call *Invocation) {
	ch := call.Channel
	if err := robo.Channels.CanLeave(ch, call.Message.Login); err != nil {
		call.reply(ctx, robo, err.Error())
		return
	}
	if err := robo.Chat.Part(ctx, ch); err != nil {
		robo.Log.ErrorContext(ctx, "couldn't part", slog.String("channel", ch), slog.Any("err", err))
		call.reply(ctx, robo, "Error leaving channel.")
		return
	}
	if err := robo.Channels.Leave(ch, call.Message.Login); err != nil {
		if !errors.Is(err, channels.ErrNotIn) {
			robo.Log.ErrorContext(ctx, "couldn't save left channel", slog.String("channel", ch), slog.Any("err", err))
		}
		call.reply(ctx, robo, "Error leaving channel.")
		return
	}
	robo.Log.InfoContext(ctx, "left", slog.String("channel", ch))
	call.reply(ctx, robo, "Left channel "+ch+".")
}
