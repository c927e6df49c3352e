// Package main provides the CLI entry point for videodocs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/logger"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/osfilesystem"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/smartcapture"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/config"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "videodocs",
		Usage:   l10n.T("Work with video documents in MMIF files"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    l10n.T("YAML configuration file"),
				Category: l10n.T("Configuration"),
			},
			&cli.StringFlag{
				Name:     "backend",
				Usage:    l10n.T("Decoding backend (auto, vidio, gocv)"),
				Category: l10n.T("Configuration"),
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.StringFlag{
				Name:     "log-format",
				Usage:    l10n.T("Log format (console, json)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T("Logging"),
			},
		},
		Commands: []*cli.Command{
			framerateCommand(),
			convertCommand(),
			extractCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("videodocs version %s", version))
					return nil
				},
			},
		},
	}
}

// session holds what every command needs after global flags are applied.
type session struct {
	cfg  config.Config
	log  ports.Logger
	fs   ports.FileSystem
	sync func()
}

// newSession loads the configuration, applies global flag overrides and
// creates the logger.
func newSession(c *cli.Context) (*session, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.Bool("quiet") {
		cfg.LogLevel = ports.LevelQuiet.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, fs: osfilesystem.New(), sync: func() {}}
	level := ports.ParseLogLevel(cfg.LogLevel)
	switch {
	case level == ports.LevelQuiet:
		s.log = logger.NewNoop()
	case cfg.LogFormat == "json":
		z, err := logger.NewZap(level)
		if err != nil {
			return nil, err
		}
		s.log = z
		s.sync = func() { _ = z.Sync() }
	default:
		s.log = logger.NewConsole(level)
	}
	return s, nil
}

// opener returns a capture opener for the configured backend.
func (s *session) opener() (ports.CaptureOpener, error) {
	backend, err := smartcapture.ParseBackend(s.cfg.Backend)
	if err != nil {
		return nil, err
	}
	opener, info, err := smartcapture.NewOpener(smartcapture.Options{Backend: backend})
	if err != nil {
		return nil, err
	}
	s.log.Debug("Using %s decoding backend", info.Backend)
	return opener, nil
}

// prober returns a frame rate prober. Without a decoding backend only MP4
// containers can be probed.
func (s *session) prober() ports.FrameRateProber {
	opener, err := s.opener()
	if err != nil {
		s.log.Debug("No decoding backend: %v", err)
	}
	return smartcapture.NewProber(opener, s.log)
}
