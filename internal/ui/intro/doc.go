// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package intro plays the one-time opening sequence of the overlay.
//
// The sequence runs Idle → Matrix → Transition → Typing → Ready. It starts
// on the first show signal only; later show signals leave it alone. The
// banner is revealed either one column per tick across every line at
// once, or all at once when typing is disabled.
//
// Model is a value type driven by bubbletea messages, meant to be embedded
// in the overlay model.
package intro
