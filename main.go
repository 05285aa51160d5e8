package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/zephyrtronium/twitchpaster/codeblock"
	"github.com/zephyrtronium/twitchpaster/pastebin"
)

var app = cli.Command{
	Name:  "twitchpaster",
	Usage: "Twitch chat bot that moves code blocks to Pastebin",

	Flags: []cli.Flag{
		&flagConfig,
		&flagEnv,
		&flagLog,
		&flagLogFormat,
	},
	Commands: []*cli.Command{
		{
			Name:      "paste",
			Usage:     "Create a paste from a file or standard input without serving",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "lang",
					Usage: "Syntax highlighting format or alias",
				},
				&cli.StringFlag{
					Name:  "title",
					Usage: "Paste title",
					Value: "twitchpaster",
				},
			},
			Action: cliPaste,
		},
	},
	Action: cliRun,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()
	err := app.Run(ctx, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the environment file and the config named by the flags.
func loadConfig(ctx context.Context, cmd *cli.Command) (*Config, error) {
	if err := loadEnv(ctx, cmd.String("env")); err != nil {
		return nil, err
	}
	r, err := os.Open(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("couldn't open config file: %w", err)
	}
	defer r.Close()
	cfg, _, err := Load(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("couldn't load config: %w", err)
	}
	return cfg, nil
}

func cliRun(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	robo := New()
	if err := robo.InitTwitch(ctx, cfg.TMI); err != nil {
		return err
	}
	if err := robo.InitPastebin(ctx, cfg.Pastebin); err != nil {
		return err
	}
	robo.SetCooldown(cfg.Cooldown)
	if err := robo.SetSources(ctx, cfg.Channels, cfg.DB); err != nil {
		return err
	}
	return robo.Run(ctx, cfg.HTTP.Listen)
}

func cliPaste(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	robo := New()
	if err := robo.InitPastebin(ctx, cfg.Pastebin); err != nil {
		return err
	}
	var r io.Reader = os.Stdin
	if f := cmd.Args().First(); f != "" && f != "-" {
		file, err := os.Open(f)
		if err != nil {
			return fmt.Errorf("couldn't open input: %w", err)
		}
		defer file.Close()
		r = file
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("couldn't read input: %w", err)
	}
	lang := cmd.String("lang")
	if l, ok := codeblock.Lookup(lang); ok {
		lang = l
	}
	req := pastebin.Format(string(b), lang, "", "")
	req.Title = cmd.String("title")
	url, err := robo.paster.Submit(ctx, req)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

var (
	flagConfig = cli.StringFlag{
		Name:       "config",
		Required:   true,
		Usage:      "TOML config file",
		Persistent: true,
		Action: func(ctx context.Context, cmd *cli.Command, s string) error {
			i, err := os.Stat(s)
			if err != nil {
				return err
			}
			if !i.Mode().IsRegular() {
				return errors.New("config must be a regular file")
			}
			return nil
		},
	}

	flagEnv = cli.StringFlag{
		Name:       "env",
		Usage:      "Environment file to load before reading the config, if it exists",
		Value:      ".env",
		Persistent: true,
	}

	flagLog = cli.StringFlag{
		Name:       "log",
		Usage:      "Logging level, one of debug, info, warn, error",
		Value:      "info",
		Persistent: true,
		Action: func(ctx context.Context, c *cli.Command, s string) error {
			var l slog.Level
			return l.UnmarshalText([]byte(s))
		},
	}

	flagLogFormat = cli.StringFlag{
		Name:       "log-format",
		Usage:      "Logging format, either text or json",
		Value:      "text",
		Persistent: true,
		Action: func(ctx context.Context, c *cli.Command, s string) error {
			switch strings.ToLower(s) {
			case "text", "json":
				return nil
			default:
				return errors.New("unknown logging format")
			}
		},
	}
)

func loggerFromFlags(cmd *cli.Command) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(cmd.String("log"))); err != nil {
		panic(err)
	}
	var h slog.Handler
	switch strings.ToLower(cmd.String("log-format")) {
	case "text":
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	case "json":
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	}
	return slog.New(h)
}
