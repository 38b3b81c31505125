// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PHOSPHOR PALETTE
// =============================================================================

// Phosphor - Default output text
var Phosphor = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#33FF66"}

// PhosphorBright - Echoed commands and the banner
var PhosphorBright = lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#7CFF9B"}

// PhosphorDim - Hints, rules, matrix trails
var PhosphorDim = lipgloss.AdaptiveColor{Light: "#6B9E7F", Dark: "#1F7A3A"}

// PhosphorDeep - Title bar background
var PhosphorDeep = lipgloss.AdaptiveColor{Light: "#D1FAE5", Dark: "#0B2A14"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Error and failure lines
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Usage lines
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Cyan - Host results
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Window background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}

// Border - Window frame
var Border = lipgloss.AdaptiveColor{Light: "#34D399", Dark: "#22C55E"}

// BorderActive - Window frame while dragging
var BorderActive = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#A7F3D0"}

// TextMuted - Status hints
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
