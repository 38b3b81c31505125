// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sheenterm/internal/util"
)

const (
	windowTitle = "SHEEN TERMINAL"
	titleHint   = "esc to close"
	hiddenHint  = "sheenterm · waiting for host · F2 open · ctrl+c quit"
)

// refresh re-renders the body into the viewport and scrolls to the end.
func (m *Model) refresh() {
	width := m.innerWidth()
	var b strings.Builder

	banner := m.intro.BannerLines()
	transcript := m.interp.State().Transcript.Lines()
	for i, line := range banner {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.theme.Banner.Render(util.TruncateWidth(line, width)))
	}
	for i, line := range transcript {
		if i > 0 || len(banner) > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.theme.RenderLine(util.TruncateWidth(line, width)))
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.visible {
		return m.hiddenView()
	}
	// The rain covers the whole screen until the banner takes over.
	if m.intro.Raining() && m.termWidth > 0 && m.termHeight > 0 {
		return strings.Join(m.intro.RainView(m.theme), "\n")
	}

	window := m.windowView()
	if m.x == 0 && m.y == 0 {
		return window
	}

	pad := strings.Repeat(" ", m.x)
	lines := strings.Split(window, "\n")
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", m.y))
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pad)
		b.WriteString(line)
	}
	return b.String()
}

func (m Model) hiddenView() string {
	hint := m.theme.TitleHint.Render(hiddenHint)
	if m.termHeight <= 1 {
		return hint
	}
	return strings.Repeat("\n", m.termHeight-1) + hint
}

// windowView renders the bordered window without positioning. The rain
// only lands in the body before the terminal size is known.
func (m Model) windowView() string {
	width := m.innerWidth()

	var body string
	if m.intro.Raining() {
		body = strings.Join(m.intro.RainView(m.theme), "\n")
	} else {
		body = m.viewport.View()
	}
	body = lipgloss.NewStyle().Width(width).Height(m.bodyHeight()).Render(body)

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.titleView(),
		body,
		lipgloss.NewStyle().Width(width).Render(m.input.View()),
	)

	frame := m.theme.Window
	if m.dragging {
		frame = m.theme.WindowActive
	}
	return frame.Render(content)
}

// titleView renders the title bar with the close hint right-aligned.
func (m Model) titleView() string {
	width := m.innerWidth()
	// TitleBar pads one column on each side.
	room := width - 2

	title := util.TruncateWidth(windowTitle, room)
	hint := ""
	if gap := room - util.StringWidth(title) - util.StringWidth(titleHint); gap >= 1 {
		hint = strings.Repeat(" ", gap) + m.theme.TitleHint.Render(titleHint)
	} else {
		title = util.PadWidth(title, room)
	}

	return m.theme.TitleBar.Width(width).Render(m.theme.TitleText.Render(title) + hint)
}
