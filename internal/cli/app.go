// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/sheenterm/internal/commands"
	"github.com/jeranaias/sheenterm/internal/config"
	"github.com/jeranaias/sheenterm/internal/host"
	"github.com/jeranaias/sheenterm/internal/server"
	"github.com/jeranaias/sheenterm/internal/ui/intro"
	"github.com/jeranaias/sheenterm/internal/ui/overlay"
	"github.com/jeranaias/sheenterm/internal/ui/styles"
)

// app bundles what both runners share.
type app struct {
	opts       *options
	cfg        *config.Config
	configPath string
	logger     *log.Logger
	closeLog   func() error
	theme      *styles.Theme
	host       *host.Client
}

// newApp loads configuration and builds the logger, theme and host client.
// Logs go to logOut unless the config names a log file.
func (o *options) newApp(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}

	a := &app{
		opts:       o,
		cfg:        cfg,
		configPath: o.watchPath(),
		logger:     logger,
		closeLog:   closeLog,
		theme:      styles.NewTheme(GetColorProfile()),
	}
	a.host = host.NewClient(&host.Config{
		ResourceName:  cfg.Host.ResourceName,
		BaseURL:       cfg.Host.BaseURL,
		Timeout:       cfg.Host.Timeout(),
		RatePerSecond: cfg.Host.RatePerSecond,
		Burst:         cfg.Host.Burst,
		Logger:        logger,
	})
	logger.Debug("starting", "version", Version, "endpoint", a.host.Endpoint(host.EventCloseUI))
	return a, nil
}

// Close releases the host client and the log file.
func (a *app) Close() {
	a.host.Close()
	if err := a.closeLog(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: closing log file:", err)
	}
}

func (a *app) newInterpreter() *commands.Interpreter {
	return commands.NewInterpreter(a.host, commands.WithLogger(a.logger))
}

func (a *app) overlayConfig() overlay.Config {
	return overlay.Config{
		Width:        a.cfg.UI.Width,
		Height:       a.cfg.UI.Height,
		ExitDelay:    a.cfg.UI.ExitDelay(),
		StartVisible: a.cfg.UI.StartVisible,
		Intro: intro.Config{
			Matrix:       a.cfg.Intro.Matrix(),
			WelcomeDelay: a.cfg.Intro.WelcomeDelay(),
			CharInterval: a.cfg.Intro.CharInterval(),
			Typing:       a.cfg.Intro.TypingAnimation,
		},
	}
}

func (a *app) newServer() *server.Server {
	return server.New(server.Config{
		Addr:          a.cfg.Server.ListenAddr,
		Token:         a.cfg.Server.Token,
		Version:       Version,
		RatePerSecond: 20,
		Burst:         20,
		Logger:        a.logger,
	})
}

// watch re-applies the parts of the config that can change at runtime: the
// log level of this logger and the host endpoint. Blocks until ctx is done.
func (a *app) watch(ctx context.Context) {
	if a.configPath == "" {
		return
	}
	l := a.logger.WithPrefix("config")

	err := config.Watch(ctx, a.configPath, func(cfg *config.Config) {
		if err := a.reload(cfg); err != nil {
			l.Warn("config reload rejected", "path", a.configPath, "err", err)
			return
		}
		l.Info("config reloaded", "path", a.configPath)
	}, func(err error) {
		l.Warn("config reload failed", "path", a.configPath, "err", err)
	})
	if err != nil {
		l.Warn("config watcher stopped", "err", err)
	}
}

// reload lays the command-line flags over a freshly loaded config and
// applies the result.
func (a *app) reload(cfg *config.Config) error {
	a.opts.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.apply(cfg)
	return nil
}

func (a *app) apply(cfg *config.Config) {
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		a.logger.SetLevel(level)
	}
	a.host.SetEndpoint(cfg.Host.ResourceName, cfg.Host.BaseURL)
}

// =============================================================================
// LOGGING
// =============================================================================

// newLogger builds the process logger. The returned func closes the log
// file, if one was opened.
func newLogger(cfg config.LogConfig, out io.Writer) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	closeFn := func() error { return nil }
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, closeFn, nil
}
