// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the per-session state of the terminal overlay.
//
// Every container here lives for exactly one process lifetime and starts
// empty. Nothing is persisted.
//
// # Key Types
//
//   - Transcript: append-only display lines (Clear is the only removal)
//   - History: submitted command lines plus the recall cursor
//   - Notes: free-text notes added with "notes add"
//   - Aliases: user-defined command renames, single level
//   - State: bundles the four containers for one interpreter
//
// # Ownership
//
// None of these types are safe for concurrent use. A State belongs to a
// single goroutine (the bubbletea Update loop, or the plain-mode owner loop)
// and every mutation must happen there.
package session
