// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/sheenterm/internal/config"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// options holds the persistent flags shared by every command.
type options struct {
	configFile string
	resource   string
	hostURL    string
	listen     string
	noServer   bool
	typing     bool
	show       bool
	logLevel   string

	// changed records which flags were set on the command line.
	changed map[string]bool
}

// overridable lists the flags that beat the config file.
var overridable = []string{"resource", "host-url", "listen", "no-server", "typing", "show", "log-level"}

// NewRootCommand builds the sheenterm command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{})
}

func newRootCommand(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "sheenterm",
		Short: "In-game terminal overlay",
		Long: `sheenterm is the SHEEN SCRIPTS terminal overlay.

The overlay stays hidden until the host posts {"action":"SHOW_UI"} to the
message server, then opens a draggable window that runs terminal commands.
Type "help" inside the overlay for the command list.

When stdin or stdout is not a terminal, sheenterm runs in plain mode.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !CanRunTUI() {
				return runPlainCommand(cmd, opts)
			}
			a, err := opts.newApp(cmd, io.Discard)
			if err != nil {
				return err
			}
			defer a.Close()
			return runTUI(cmd.Context(), a)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default ~/.sheenterm/config.toml)")
	pf.StringVar(&opts.resource, "resource", "", "host resource name for outbound callbacks")
	pf.StringVar(&opts.hostURL, "host-url", "", "base URL for outbound callbacks, replaces https://{resource}")
	pf.StringVar(&opts.listen, "listen", "", "address the message server listens on")
	pf.BoolVar(&opts.noServer, "no-server", false, "do not start the message server")
	pf.BoolVar(&opts.typing, "typing", false, "type the welcome banner one character at a time")
	pf.BoolVar(&opts.show, "show", false, "open the overlay at startup")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newPlainCommand(opts),
		newVersionCommand(),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// loadConfig loads the config file and lays explicitly set flags over it.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	o.captureChanged(cmd)

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	o.applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func (o *options) captureChanged(cmd *cobra.Command) {
	flags := cmd.Flags()
	o.changed = make(map[string]bool, len(overridable))
	for _, name := range overridable {
		if flags.Changed(name) {
			o.changed[name] = true
		}
	}
}

// applyFlags overwrites cfg with every flag set on the command line. It is
// used at startup and again on each config reload.
func (o *options) applyFlags(cfg *config.Config) {
	if o.changed["resource"] {
		cfg.Host.ResourceName = o.resource
	}
	if o.changed["host-url"] {
		cfg.Host.BaseURL = o.hostURL
	}
	if o.changed["listen"] {
		cfg.Server.ListenAddr = o.listen
	}
	if o.changed["no-server"] {
		cfg.Server.Enabled = !o.noServer
	}
	if o.changed["typing"] {
		cfg.Intro.TypingAnimation = o.typing
	}
	if o.changed["show"] {
		cfg.UI.StartVisible = o.show
	}
	if o.changed["log-level"] {
		cfg.Log.Level = o.logLevel
	}
}

// watchPath returns the config file worth watching, or "" when there is
// none on disk.
func (o *options) watchPath() string {
	path := o.configFile
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return ""
		}
		path = p
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// =============================================================================
// VERSION
// =============================================================================

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sheenterm %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
			return err
		},
	}
}
