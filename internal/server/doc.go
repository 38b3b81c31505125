// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server receives messages from the game host.
//
// The host posts JSON objects such as {"action":"SHOW_UI"}. Recognized
// messages are queued on a channel that the UI drains; everything else is
// acknowledged and dropped.
//
// Endpoints:
//   - POST /message - Deliver a host message
//   - GET  /health  - Liveness and counters
//
// Requests pass through recovery, request-id, logging, rate limiting and,
// when a token is configured, bearer authentication.
package server
