// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package overlay provides the terminal window shown over the game.
//
// The window is a bubbletea Model. It owns the command interpreter and is
// the only goroutine that touches the session; host round trips run as
// tea.Cmds and come back as messages.
//
// # Key Types
//
//   - Model: window state, input, transcript viewport, intro, drag
//   - KeyMap: key bindings
//   - ShowMsg: sent by the host listener to open the window
//
// # Behavior
//
//   - Enter submits; Up/Down walk history
//   - Esc closes the window and notifies the host
//   - "exit" closes after the configured delay
//   - The title bar can be dragged with the mouse
//   - The first ShowMsg plays the intro; later ones just open the window
package overlay
