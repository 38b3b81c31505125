// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli wires sheenterm together behind a cobra command tree.
//
// # Commands
//
//   - sheenterm: the full-screen overlay (falls back to plain mode off a TTY)
//   - sheenterm plain: a line-mode terminal on stdin/stdout
//   - sheenterm version: build information
//   - sheenterm config init|show|path: manage the TOML config file
//
// # Runtime
//
// The overlay runner starts the inbound message server, forwards SHOW_UI
// messages into the bubbletea program and watches the config file. The
// plain runner funnels typed lines and async completions into one goroutine
// that owns the interpreter.
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute())
//	}
package cli
