package main

import (
	"context"
	"crypto/tls"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gitlab.com/zephyrtronium/pick"
	"gitlab.com/zephyrtronium/tmi"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/zephyrtronium/twitchpaster/channels"
	"github.com/zephyrtronium/twitchpaster/command"
	"github.com/zephyrtronium/twitchpaster/cooldown"
	"github.com/zephyrtronium/twitchpaster/dispatch"
	"github.com/zephyrtronium/twitchpaster/links"
	"github.com/zephyrtronium/twitchpaster/metrics"
	"github.com/zephyrtronium/twitchpaster/pastebin"
)

// Robot is the overall configuration for the bot.
type Robot struct {
	// channels is the registry of joined channels.
	channels *channels.Registry
	// links is the history of generated links.
	links *links.History
	// db is the link history database.
	db *sqlitex.Pool
	// limiter is the per-user paste cooldown.
	limiter *cooldown.Limiter
	// paster creates pastes.
	paster *pastebin.Client
	// emotes is the distribution of emotes appended to link replies.
	emotes *pick.Dist[string]
	// metrics are the bot's metrics.
	metrics metrics.Metrics
	// tmi contains the bot's TMI connection settings. It may be nil if there
	// is no Twitch configuration.
	tmi *client
	// prefix is the command prefix.
	prefix string
	// queue is the capacity of the dispatch queue.
	queue int
	// sweep is the interval between sweeps of expired state.
	sweep time.Duration
}

// client is the settings for the TMI connection.
type client struct {
	send chan *tmi.Message
	recv chan *tmi.Message
	// me is the bot's login.
	me string
	// pass is the oauth: password.
	pass string
	// rate is the global rate limiter for sending messages.
	rate *rate.Limiter
}

// New creates a new robot instance. Use SetSources, InitTwitch, InitPastebin,
// and SetCooldown to finish initialization.
func New() *Robot {
	return &Robot{
		metrics: metrics.New("twitchpaster"),
		limiter: cooldown.New(0, 0, 0),
	}
}

// Run connects to services and runs the bot until ctx is canceled.
func (robo *Robot) Run(ctx context.Context, listen string) error {
	defer robo.db.Close()
	group, ctx := errgroup.WithContext(ctx)
	q := robo.queue
	if q <= 0 {
		q = 64
	}
	events := make(chan dispatch.Event, q)
	chat := &tmiChat{robo: robo}
	d := &dispatch.Dispatcher{
		Robot: &command.Robot{
			Log:      slog.Default(),
			Channels: robo.channels,
			Links:    robo.links,
			Chat:     chat,
		},
		Paster:  robo.paster,
		Limiter: robo.limiter,
		Metrics: robo.metrics,
		Prefix:  robo.prefix,
		Emotes:  robo.emotes,
		Sweep:   robo.sweep,
	}
	group.Go(func() error { return d.Run(ctx, events) })
	if robo.tmi != nil {
		group.Go(func() error { return robo.twitch(ctx, group, events) })
	}
	if listen != "" {
		group.Go(func() error { return robo.api(ctx, listen, new(http.ServeMux), robo.metrics.Collectors()) })
	}
	err := group.Wait()
	if err == context.Canceled {
		// If the first error is context canceled, then we are shutting down
		// normally in response to a sigint.
		err = nil
	}
	return err
}

func (robo *Robot) twitch(ctx context.Context, group *errgroup.Group, events chan<- dispatch.Event) error {
	cfg := tmi.ConnectConfig{
		Dial:         new(tls.Dialer).DialContext,
		RetryWait:    tmi.RetryList(true, 0, time.Second, time.Minute, 5*time.Minute),
		Nick:         strings.ToLower(robo.tmi.me),
		Pass:         robo.tmi.pass,
		Capabilities: []string{"twitch.tv/commands", "twitch.tv/tags"},
		Timeout:      300 * time.Second,
	}
	group.Go(func() error {
		robo.tmiLoop(ctx, robo.tmi.send, robo.tmi.recv, events)
		return nil
	})
	tmi.Connect(ctx, cfg, tmi.Log(log.Default(), false), robo.tmi.send, robo.tmi.recv)
	return ctx.Err()
}
