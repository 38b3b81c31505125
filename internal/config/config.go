// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for sheenterm.
//
// Configuration file location (in order of precedence):
//   - --config flag
//   - ~/.sheenterm/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/sheenterm/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete sheenterm configuration.
type Config struct {
	Host   HostConfig   `toml:"host"`
	Server ServerConfig `toml:"server"`
	Intro  IntroConfig  `toml:"intro"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// HostConfig describes how to reach the host application.
type HostConfig struct {
	// ResourceName is the host resource owning the overlay. Outbound calls go
	// to https://{resource_name}/{EVENT}.
	ResourceName string `toml:"resource_name"`
	// BaseURL replaces https://{resource_name} when set.
	BaseURL string `toml:"base_url"`
	// TimeoutMS bounds each outbound call.
	TimeoutMS int `toml:"timeout_ms"`
	// RatePerSecond and Burst limit outbound calls.
	RatePerSecond float64 `toml:"rate_per_second"`
	Burst         int     `toml:"burst"`
}

// ServerConfig controls the inbound listener the host posts messages to.
type ServerConfig struct {
	Enabled    bool   `toml:"enabled"`
	ListenAddr string `toml:"listen_addr"`
	// Token, when set, is required as "Authorization: Bearer <token>".
	Token string `toml:"token"`
}

// IntroConfig controls the one-time intro sequence.
type IntroConfig struct {
	// TypingAnimation reveals the banner character by character when true,
	// otherwise all at once.
	TypingAnimation bool `toml:"typing_animation"`
	MatrixMS        int  `toml:"matrix_ms"`
	WelcomeDelayMS  int  `toml:"welcome_delay_ms"`
	CharIntervalMS  int  `toml:"char_interval_ms"`
}

// UIConfig controls the overlay window.
type UIConfig struct {
	Width       int  `toml:"width"`
	Height      int  `toml:"height"`
	ExitDelayMS int  `toml:"exit_delay_ms"`
	// StartVisible shows the overlay at startup without waiting for the host.
	StartVisible bool `toml:"start_visible"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level"`
	// File receives logs in TUI mode. Empty discards them there.
	File string `toml:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Host: HostConfig{
			ResourceName:  "sheen-terminal",
			TimeoutMS:     10000,
			RatePerSecond: 5,
			Burst:         5,
		},
		Server: ServerConfig{
			Enabled:    true,
			ListenAddr: "127.0.0.1:30125",
		},
		Intro: IntroConfig{
			TypingAnimation: false,
			MatrixMS:        2000,
			WelcomeDelayMS:  2500,
			CharIntervalMS:  30,
		},
		UI: UIConfig{
			Width:       90,
			Height:      24,
			ExitDelayMS: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Timeout returns the outbound call timeout.
func (h HostConfig) Timeout() time.Duration { return ms(h.TimeoutMS) }

// Matrix returns how long the matrix stage plays.
func (i IntroConfig) Matrix() time.Duration { return ms(i.MatrixMS) }

// WelcomeDelay returns when, after the first show, the banner starts.
func (i IntroConfig) WelcomeDelay() time.Duration { return ms(i.WelcomeDelayMS) }

// CharInterval returns the typing cadence.
func (i IntroConfig) CharInterval() time.Duration { return ms(i.CharIntervalMS) }

// ExitDelay returns the pause between "Exiting..." and the close.
func (u UIConfig) ExitDelay() time.Duration { return ms(u.ExitDelayMS) }

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the sheenterm configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".sheenterm"), nil
}

// ConfigPath returns the path to the default TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from path, or from the default location when
// path is empty. A missing default file is not an error; a missing explicit
// file is. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return finish(Default())
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return finish(Default())
		}
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	return finish(cfg)
}

// finish applies env overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep the
// values already in cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// fillDefaults fills in any zero values that would break the overlay.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Host.TimeoutMS <= 0 {
		cfg.Host.TimeoutMS = defaults.Host.TimeoutMS
	}
	if cfg.Host.RatePerSecond <= 0 {
		cfg.Host.RatePerSecond = defaults.Host.RatePerSecond
	}
	if cfg.Host.Burst <= 0 {
		cfg.Host.Burst = defaults.Host.Burst
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = defaults.Server.ListenAddr
	}
	if cfg.Intro.CharIntervalMS <= 0 {
		cfg.Intro.CharIntervalMS = defaults.Intro.CharIntervalMS
	}
	if cfg.UI.Width <= 0 {
		cfg.UI.Width = defaults.UI.Width
	}
	if cfg.UI.Height <= 0 {
		cfg.UI.Height = defaults.UI.Height
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg to path, creating the parent directory.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# sheenterm configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Host.ResourceName == "" && c.Host.BaseURL == "" {
		errs = append(errs, ValidationError{
			Field:   "host.resource_name",
			Message: "either resource_name or base_url must be set",
		})
	}
	if strings.ContainsAny(c.Host.ResourceName, "/ ") {
		errs = append(errs, ValidationError{
			Field:   "host.resource_name",
			Message: fmt.Sprintf("invalid resource name '%s'", c.Host.ResourceName),
		})
	}
	if c.Host.BaseURL != "" {
		u, err := url.Parse(c.Host.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "host.base_url",
				Message: fmt.Sprintf("invalid URL '%s', must be http(s)://host[:port]", c.Host.BaseURL),
			})
		}
	}

	if c.Server.Enabled {
		if _, _, err := net.SplitHostPort(c.Server.ListenAddr); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.listen_addr",
				Message: fmt.Sprintf("invalid address '%s': %v", c.Server.ListenAddr, err),
			})
		}
	}

	if c.Intro.MatrixMS < 0 || c.Intro.WelcomeDelayMS < 0 {
		errs = append(errs, ValidationError{
			Field:   "intro",
			Message: "durations must not be negative",
		})
	}
	if c.Intro.WelcomeDelayMS < c.Intro.MatrixMS {
		errs = append(errs, ValidationError{
			Field:   "intro.welcome_delay_ms",
			Message: "must not be shorter than matrix_ms",
		})
	}
	if c.UI.ExitDelayMS < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.exit_delay_ms",
			Message: "must not be negative",
		})
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
//   - SHEENTERM_RESOURCE: overrides host.resource_name
//   - SHEENTERM_HOST_URL: overrides host.base_url
//   - SHEENTERM_LISTEN: overrides server.listen_addr
//   - SHEENTERM_TYPING: overrides intro.typing_animation
//   - SHEENTERM_LOG_LEVEL: overrides log.level
//   - SHEENTERM_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SHEENTERM_RESOURCE"); v != "" {
		c.Host.ResourceName = v
	}
	if v := os.Getenv("SHEENTERM_HOST_URL"); v != "" {
		c.Host.BaseURL = v
	}
	if v := os.Getenv("SHEENTERM_LISTEN"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv("SHEENTERM_TYPING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Intro.TypingAnimation = b
		}
	}
	if v := os.Getenv("SHEENTERM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SHEENTERM_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}
