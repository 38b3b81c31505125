// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the overlay.
type Theme struct {
	ColorProfile termenv.Profile

	renderer *lipgloss.Renderer

	// ==========================================================================
	// WINDOW
	// ==========================================================================

	Window       lipgloss.Style
	WindowActive lipgloss.Style
	TitleBar     lipgloss.Style
	TitleText    lipgloss.Style
	TitleHint    lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT
	// ==========================================================================

	Output lipgloss.Style
	Echo   lipgloss.Style
	Error  lipgloss.Style
	Usage  lipgloss.Style
	Result lipgloss.Style

	// ==========================================================================
	// INPUT
	// ==========================================================================

	Prompt lipgloss.Style
	Input  lipgloss.Style
	Cursor lipgloss.Style

	// ==========================================================================
	// INTRO
	// ==========================================================================

	Banner     lipgloss.Style
	BannerRule lipgloss.Style
	Matrix     lipgloss.Style
	MatrixHead lipgloss.Style
}

// NewTheme creates a theme that renders for the given color profile.
// termenv.Ascii strips all color, which is how NO_COLOR is honored.
func NewTheme(profile termenv.Profile) *Theme {
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(profile)
	// The window paints its own black background.
	r.SetHasDarkBackground(true)

	t := &Theme{
		ColorProfile: profile,
		renderer:     r,
	}
	t.initStyles()
	return t
}

// Renderer is the renderer the theme's styles were built with.
func (t *Theme) Renderer() *lipgloss.Renderer {
	return t.renderer
}

func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	t.Window = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Background(Surface)
	t.WindowActive = t.Window.BorderForeground(BorderActive)

	t.TitleBar = s().
		Background(PhosphorDeep).
		Foreground(PhosphorBright).
		Padding(0, 1)
	t.TitleText = s().
		Bold(true).
		Foreground(PhosphorBright)
	t.TitleHint = s().
		Foreground(TextMuted)

	t.Output = s().Foreground(Phosphor)
	t.Echo = s().Foreground(PhosphorBright).Bold(true)
	t.Error = s().Foreground(Rose)
	t.Usage = s().Foreground(Amber)
	t.Result = s().Foreground(Cyan)

	t.Prompt = s().Foreground(PhosphorBright).Bold(true)
	t.Input = s().Foreground(Phosphor)
	t.Cursor = s().Foreground(PhosphorBright)

	t.Banner = s().Foreground(PhosphorBright).Bold(true)
	t.BannerRule = s().Foreground(PhosphorDim)
	t.Matrix = s().Foreground(PhosphorDim)
	t.MatrixHead = s().Foreground(PhosphorBright).Bold(true)
}

// =============================================================================
// LINE CLASSIFICATION
// =============================================================================

// LineKind is the coloring class of a transcript line.
type LineKind int

const (
	LineOutput LineKind = iota // plain command output
	LineEcho                   // "> command"
	LineError                  // "Error: ..." and "Failed: ..."
	LineUsage                  // "Usage: ..."
	LineResult                 // "Result: ..."
)

// Classify picks the LineKind for a transcript line by its prefix.
func Classify(line string) LineKind {
	switch {
	case strings.HasPrefix(line, "> "):
		return LineEcho
	case strings.HasPrefix(line, "Error: "), strings.HasPrefix(line, "Failed: "):
		return LineError
	case strings.HasPrefix(line, "Usage: "):
		return LineUsage
	case strings.HasPrefix(line, "Result: "):
		return LineResult
	default:
		return LineOutput
	}
}

// RenderLine styles a transcript line according to its kind.
func (t *Theme) RenderLine(line string) string {
	switch Classify(line) {
	case LineEcho:
		return t.Echo.Render(line)
	case LineError:
		return t.Error.Render(line)
	case LineUsage:
		return t.Usage.Render(line)
	case LineResult:
		return t.Result.Render(line)
	default:
		return t.Output.Render(line)
	}
}
