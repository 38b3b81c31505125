// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the UI and config code.
//
// # Key Functions
//
//   - StringWidth, TruncateWidth, PadWidth: display-width aware text
//   - RunePrefix: first n runes of a string, for the typing effect
//   - WriteFileAtomic: temp file + fsync + rename
package util
