// Package dispatch routes chat messages to commands and paste submissions.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gitlab.com/zephyrtronium/pick"

	"github.com/zephyrtronium/twitchpaster/codeblock"
	"github.com/zephyrtronium/twitchpaster/command"
	"github.com/zephyrtronium/twitchpaster/cooldown"
	"github.com/zephyrtronium/twitchpaster/links"
	"github.com/zephyrtronium/twitchpaster/message"
	"github.com/zephyrtronium/twitchpaster/metrics"
	"github.com/zephyrtronium/twitchpaster/pastebin"
)

// DefaultPrefix is the prefix of chat commands.
const DefaultPrefix = "!pastebin"

// DefaultSweep is the default interval between sweeps of expired state.
const DefaultSweep = time.Minute

// Event is a chat message delivered to the dispatcher.
type Event struct {
	// Message is the received message.
	Message *message.Received
	// Self indicates that the bot itself sent the message.
	Self bool
}

// Paster submits pastes.
type Paster interface {
	Submit(ctx context.Context, req pastebin.Request) (string, error)
}

// Dispatcher handles chat events. Its fields must be set before calling Run
// and must not be modified afterward.
type Dispatcher struct {
	// Robot is the state visible to commands. Its Chat is also used to send
	// paste replies, and its Links records generated links.
	Robot *command.Robot
	// Paster submits pastes.
	Paster Paster
	// Limiter is the per-user paste cooldown. It is used only by the
	// goroutine running Run.
	Limiter *cooldown.Limiter
	// Metrics are the dispatcher's metrics.
	Metrics metrics.Metrics
	// Prefix is the command prefix. If empty, DefaultPrefix is used.
	Prefix string
	// Emotes is the distribution of emotes appended to link replies.
	// If nil, no emotes are appended.
	Emotes *pick.Dist[string]
	// Sweep is the interval between sweeps. If zero, DefaultSweep is used.
	Sweep time.Duration
	// Now returns the current time. If nil, time.Now is used.
	Now func() time.Time

	// wg tracks goroutines started by the dispatcher.
	wg sync.WaitGroup
}

// result is a completed paste submission.
type result struct {
	msg   *message.Received
	req   pastebin.Request
	url   string
	err   error
	start time.Time
	trace uuid.UUID
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Dispatcher) log() *slog.Logger {
	if d.Robot.Log != nil {
		return d.Robot.Log
	}
	return slog.Default()
}

// Run handles events until ctx is canceled or events is closed.
// When events is closed, Run waits for outstanding pastes to finish and
// returns nil.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) error {
	results := make(chan result, 16)
	defer d.wg.Wait()
	sweep := d.Sweep
	if sweep <= 0 {
		sweep = DefaultSweep
	}
	tick := time.NewTicker(sweep)
	defer tick.Stop()
	pending := 0
	for {
		if events == nil && pending == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if d.handle(ctx, results, ev) {
				pending++
			}
		case r := <-results:
			pending--
			d.finish(ctx, r)
		case <-tick.C:
			d.sweep(ctx, d.now())
		}
	}
}

// handle processes a single event. It reports whether it started a paste.
func (d *Dispatcher) handle(ctx context.Context, results chan<- result, ev Event) bool {
	if ev.Self || ev.Message == nil {
		return false
	}
	m := ev.Message
	d.Metrics.TMIMsgsCount.Observe(1)
	prefix := d.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if cmd, ok := parseCommand(prefix, m.Text); ok {
		d.command(ctx, m, cmd)
		return false
	}
	blk, ok := codeblock.Classify(m.Text)
	if !ok {
		return false
	}
	d.Metrics.CodeBlockCount.Observe(1)
	log := d.log().With(slog.String("in", m.To), slog.String("user", m.Login))
	now := d.now()
	v := d.Limiter.Check(m.To, m.Login, now)
	if !v.Allow {
		d.Metrics.RateLimitedCount.Observe(1)
		log.InfoContext(ctx, "rate limited", slog.Bool("warn", v.Warn))
		if v.Warn {
			d.say(ctx, message.Format(m.ID, m.To, "@%s, You can only create Pastebins once every minute!", m.Login))
		}
		return false
	}
	d.Limiter.Start(m.To, m.Login, now)
	req := pastebin.Format(blk.Body, blk.Lang, m.DisplayName(), m.To)
	trace := uuid.New()
	log.InfoContext(ctx, "paste", slog.Any("trace", trace), slog.String("format", req.Format), slog.Int("len", len(req.Code)))
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		url, err := d.Paster.Submit(ctx, req)
		r := result{msg: m, req: req, url: url, err: err, start: now, trace: trace}
		select {
		case <-ctx.Done():
		case results <- r:
		}
	}()
	return true
}

// finish replies to a completed paste.
func (d *Dispatcher) finish(ctx context.Context, r result) {
	m := r.msg
	now := d.now()
	log := d.log().With(slog.String("in", m.To), slog.String("user", m.Login), slog.Any("trace", r.trace))
	d.Metrics.PasteLatency.Observe(now.Sub(r.start).Seconds())
	if r.err != nil {
		kind := "error"
		var perr *pastebin.Error
		if errors.As(r.err, &perr) {
			kind = strings.ReplaceAll(perr.Kind.String(), " ", "_")
		}
		d.Metrics.PasteCount.Observe(1, kind)
		log.ErrorContext(ctx, "paste failed", slog.Any("err", r.err))
		if d.Limiter.Warn(m.To, m.Login, now) {
			d.say(ctx, message.Format(m.ID, m.To, "@%s, TwitchPaster had an issue generating you a PasteBin link!", m.Login))
		}
		return
	}
	d.Metrics.PasteCount.Observe(1, "ok")
	log.InfoContext(ctx, "pasted", slog.String("url", r.url))
	if d.Robot.Links != nil {
		l := links.Link{
			Channel: m.To,
			URL:     r.url,
			User:    m.Login,
			Time:    now,
			Expires: now.Add(r.req.Expire),
		}
		if err := d.Robot.Links.Record(ctx, l); err != nil {
			log.ErrorContext(ctx, "couldn't record link", slog.Any("err", err))
		}
	}
	var e string
	if d.Emotes != nil {
		e = d.Emotes.Pick(rand.Uint32())
	}
	d.say(ctx, message.Format(m.ID, m.To, "@%s, TwitchPaster has generated your PasteBin link: %s %s", m.Login, r.url, e))
}

// sweep forgets expired cooldowns and links.
func (d *Dispatcher) sweep(ctx context.Context, now time.Time) {
	n := d.Limiter.Sweep(now)
	d.Metrics.CooldownEntries.Observe(float64(d.Limiter.Len()))
	log := d.log()
	if d.Robot.Links != nil {
		k, err := d.Robot.Links.Prune(ctx, now)
		if err != nil {
			log.ErrorContext(ctx, "couldn't prune links", slog.Any("err", err))
		}
		log.DebugContext(ctx, "sweep", slog.Int("cooldowns", n), slog.Int("links", k))
		return
	}
	log.DebugContext(ctx, "sweep", slog.Int("cooldowns", n))
}

// say sends a message without blocking the dispatch loop.
func (d *Dispatcher) say(ctx context.Context, msg message.Sent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.Robot.Chat.Message(ctx, msg)
	}()
}

// command runs a chat command without blocking the dispatch loop.
func (d *Dispatcher) command(ctx context.Context, m *message.Received, text string) {
	c, args := findTwitch(twitchAny, text)
	if c == nil {
		return
	}
	d.Metrics.TMICommandCount.Observe(1, c.name)
	d.log().InfoContext(ctx, "command",
		slog.String("name", c.name),
		slog.String("in", m.To),
		slog.String("user", m.Login),
		slog.Any("args", args),
	)
	inv := command.Invocation{
		Channel: m.To,
		Message: m,
		Args:    args,
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		c.fn(ctx, d.Robot, &inv)
	}()
}
