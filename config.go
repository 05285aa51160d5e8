package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gitlab.com/zephyrtronium/pick"
	"gitlab.com/zephyrtronium/tmi"
	"golang.org/x/time/rate"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/zephyrtronium/twitchpaster/channels"
	"github.com/zephyrtronium/twitchpaster/cooldown"
	"github.com/zephyrtronium/twitchpaster/links"
	"github.com/zephyrtronium/twitchpaster/pastebin"
)

// Load loads the bot configuration from TOML. Values of the form ${VAR} are
// expanded from the environment.
func Load(ctx context.Context, r io.Reader) (*Config, *toml.MetaData, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't decode config: %w", err)
	}
	expandcfg(&cfg, os.Getenv)
	return &cfg, &md, nil
}

// loadEnv loads variables from a .env file into the environment, if the file
// exists. Variables already set are not overridden.
func loadEnv(ctx context.Context, file string) error {
	err := godotenv.Load(file)
	switch {
	case err == nil:
		slog.DebugContext(ctx, "loaded environment", slog.String("file", file))
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("couldn't load environment from %s: %w", file, err)
	}
}

// SetSources opens the channel registry and link history.
func (robo *Robot) SetSources(ctx context.Context, ch ChannelsCfg, db DBCfg) error {
	reg, err := channels.Open(ch.File, ch.Default)
	if err != nil {
		return fmt.Errorf("couldn't open channel registry: %w", err)
	}
	robo.channels = reg
	slog.DebugContext(ctx, "link history db", slog.String("path", db.Links))
	pool, err := sqlitex.NewPool(db.Links, sqlitex.PoolOptions{})
	if err != nil {
		return fmt.Errorf("couldn't open link history db: %w", err)
	}
	if err := links.Init(ctx, pool); err != nil {
		pool.Close()
		return err
	}
	robo.links, err = links.Open(ctx, pool)
	if err != nil {
		pool.Close()
		return fmt.Errorf("couldn't open link history: %w", err)
	}
	robo.db = pool
	return nil
}

// InitTwitch initializes the TMI client configuration.
func (robo *Robot) InitTwitch(ctx context.Context, cfg ClientCfg) error {
	if cfg.User == "" {
		return errors.New("no Twitch username; set tmi.user or TWITCH_USERNAME")
	}
	if cfg.Pass == "" {
		return errors.New("no Twitch OAuth token; set tmi.pass or TWITCH_PASSWORD")
	}
	pass := cfg.Pass
	if !strings.HasPrefix(pass, "oauth:") {
		pass = "oauth:" + pass
	}
	every, num := cfg.Rate.Every, cfg.Rate.Num
	if every <= 0 || num <= 0 {
		// Twitch's limit for regular users is 20 messages per 30 seconds.
		every, num = 30, 20
	}
	robo.tmi = &client{
		send: make(chan *tmi.Message, 1),
		recv: make(chan *tmi.Message, 8), // 8 is enough for on-connect msgs
		me:   strings.ToLower(strings.TrimPrefix(cfg.User, "#")),
		pass: pass,
		rate: rate.NewLimiter(rate.Every(fseconds(every)/time.Duration(num)), num),
	}
	robo.prefix = cfg.Prefix
	robo.queue = cfg.Queue
	if e := mergemaps(cfg.Emotes); len(e) != 0 {
		robo.emotes = pick.New(pick.FromMap(e))
	}
	slog.InfoContext(ctx, "TMI configured", slog.String("nick", robo.tmi.me), slog.Int("emotes", len(cfg.Emotes)))
	return nil
}

// InitPastebin initializes the Pastebin client.
func (robo *Robot) InitPastebin(ctx context.Context, cfg PastebinCfg) error {
	if cfg.Key == "" {
		return errors.New("no Pastebin API key; set pastebin.key or PASTEBIN_API_KEY")
	}
	timeout := fseconds(cfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	robo.paster = &pastebin.Client{
		HTTP:      &http.Client{Timeout: timeout},
		Key:       cfg.Key,
		Endpoint:  cfg.Endpoint,
		UserAgent: cfg.Agent,
	}
	return nil
}

// SetCooldown configures per-user paste cooldowns.
func (robo *Robot) SetCooldown(cfg CooldownCfg) {
	robo.limiter = cooldown.New(fseconds(cfg.Cooldown), fseconds(cfg.Warning), cfg.Size)
	robo.sweep = fseconds(cfg.Sweep)
}

func mergemaps(ms ...map[string]int) map[string]int {
	u := make(map[string]int)
	for _, m := range ms {
		for k, v := range m {
			u[k] += v
		}
	}
	return u
}

func fseconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Config is the marshaled structure of the bot's configuration.
type Config struct {
	// TMI is the configuration for connecting to Twitch chat.
	TMI ClientCfg `toml:"tmi"`
	// Pastebin is the configuration for creating pastes.
	Pastebin PastebinCfg `toml:"pastebin"`
	// Cooldown is the per-user paste cooldown configuration.
	Cooldown CooldownCfg `toml:"cooldown"`
	// Channels is the channel registry configuration.
	Channels ChannelsCfg `toml:"channels"`
	// DB is the table of database connection strings.
	DB DBCfg `toml:"db"`
	// HTTP is the HTTP API configuration.
	HTTP HTTPCfg `toml:"http"`
}

// ClientCfg is the configuration for connecting to TMI.
type ClientCfg struct {
	// User is the bot's login name.
	User string `toml:"user"`
	// Pass is the bot's OAuth token, with or without the oauth: prefix.
	Pass string `toml:"pass"`
	// Prefix is the command prefix.
	Prefix string `toml:"prefix"`
	// Queue is the number of received messages to buffer for dispatch.
	Queue int `toml:"queue"`
	// Rate is the global rate limit for sending messages.
	Rate Rate `toml:"rate"`
	// Emotes is the emotes and their weights to append to link replies.
	Emotes map[string]int `toml:"emotes"`
}

// PastebinCfg is the configuration for the Pastebin API.
type PastebinCfg struct {
	// Key is the Pastebin developer API key.
	Key string `toml:"key"`
	// Endpoint overrides the paste creation endpoint.
	Endpoint string `toml:"endpoint"`
	// Agent is the User-Agent to send.
	Agent string `toml:"agent"`
	// Timeout is the HTTP timeout in seconds.
	Timeout float64 `toml:"timeout"`
}

// CooldownCfg is the per-user cooldown configuration. Times are in seconds.
type CooldownCfg struct {
	Cooldown float64 `toml:"cooldown"`
	Warning  float64 `toml:"warning"`
	Size     int     `toml:"size"`
	Sweep    float64 `toml:"sweep"`
}

// ChannelsCfg is the channel registry configuration.
type ChannelsCfg struct {
	// File is the path to the JSON channel list.
	File string `toml:"file"`
	// Default is the list of channels to join when File does not exist.
	Default []string `toml:"default"`
}

// DBCfg is the configuration of databases.
type DBCfg struct {
	Links string `toml:"links"`
}

// HTTPCfg is the HTTP API configuration.
type HTTPCfg struct {
	// Listen is the address on which to serve the API.
	// If empty, the API is disabled.
	Listen string `toml:"listen"`
}

// Rate is a rate limit configuration allowing Num events per Every seconds.
type Rate struct {
	Every float64 `toml:"every"`
	Num   int     `toml:"num"`
}

func expandcfg(cfg *Config, expand func(s string) string) {
	fields := []*string{
		&cfg.TMI.User,
		&cfg.TMI.Pass,
		&cfg.TMI.Prefix,
		&cfg.Pastebin.Key,
		&cfg.Pastebin.Endpoint,
		&cfg.Pastebin.Agent,
		&cfg.Channels.File,
		&cfg.DB.Links,
		&cfg.HTTP.Listen,
	}
	for _, f := range fields {
		*f = os.Expand(*f, expand)
	}
	for i, s := range cfg.Channels.Default {
		cfg.Channels.Default[i] = os.Expand(s, expand)
	}
	if cfg.Channels.File == "" {
		cfg.Channels.File = "channels.json"
	}
	if cfg.DB.Links == "" {
		cfg.DB.Links = "file:links.db"
	}
}
