// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for sheenterm.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - HostConfig: Where outbound host callbacks go
//   - ServerConfig: Inbound listener for host messages
//   - IntroConfig: Intro sequence timings and the typing flag
//   - UIConfig: Overlay window size and exit delay
//   - LogConfig: Log level and file
//
// # Configuration Precedence
//
//   - Environment variables (SHEENTERM_*)
//   - --config file, or ~/.sheenterm/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	go config.Watch(ctx, path, onChange, onError)
package config
