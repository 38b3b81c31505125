// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the sheenterm overlay.
//
// The overlay imitates a phosphor terminal: green text on black inside a
// bordered window with a draggable title bar. Colors are AdaptiveColor;
// the overlay always resolves the dark variant since it paints its own
// background.
//
// # Key Types
//
//   - Theme: every lipgloss.Style the overlay and intro render with
//   - LineKind: classification of transcript lines for coloring
//
// # Usage
//
//	theme := styles.NewTheme(termenv.ColorProfile())
//	view := theme.Window.Render(body)
//	line := theme.RenderLine("> help")
package styles
