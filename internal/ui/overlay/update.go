// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package overlay

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sheenterm/internal/commands"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.layout()
		return m, nil

	case ShowMsg:
		return m.show()

	case completionMsg:
		m.interp.Complete(msg.completion)
		m.syncTranscript()
		return m, nil

	case exitMsg:
		return m.hide()

	case closeNotifiedMsg:
		if msg.err != nil {
			m.logger.Warn("close notification failed", "err", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Intro timers and cursor blink.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	stage, revealed := m.intro.Stage(), m.intro.Revealed()
	m.intro, cmd = m.intro.Update(msg)
	cmds = append(cmds, cmd)
	if m.intro.Stage() != stage || m.intro.Revealed() != revealed {
		m.refresh()
	}
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// SHOW / HIDE
// =============================================================================

// show opens the window and starts the intro the first time.
func (m Model) show() (tea.Model, tea.Cmd) {
	m.visible = true
	focus := m.input.Focus()

	var introCmd tea.Cmd
	m.intro, introCmd = m.intro.Start()
	m.refresh()
	return m, tea.Batch(focus, textinput.Blink, introCmd)
}

// hide closes the window and tells the host. The host is told on every
// close, including a repeated one.
func (m Model) hide() (tea.Model, tea.Cmd) {
	m.visible = false
	m.dragging = false
	m.input.Blur()
	return m, m.notifyClosed()
}

func (m Model) notifyClosed() tea.Cmd {
	host := m.host
	if host == nil {
		return nil
	}
	return func() tea.Msg {
		return closeNotifiedMsg{err: host.CloseUI(context.Background())}
	}
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if !m.visible {
		if key.Matches(msg, m.keys.Open) {
			return m.show()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		return m.hide()

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.HistoryPrev):
		if line, ok := m.interp.State().History.Prev(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		if line, ok := m.interp.State().History.Next(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the input line. Whitespace-only input is left untouched.
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}

	out, ok := m.interp.Submit(raw)
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.syncTranscript()

	var cmds []tea.Cmd
	if out.Pending != nil {
		cmds = append(cmds, runPending(out.Pending))
	}
	if out.Close {
		cmds = append(cmds, tea.Tick(m.cfg.ExitDelay, func(time.Time) tea.Msg { return exitMsg{} }))
	}
	return m, tea.Batch(cmds...)
}

// runPending waits on a host call off the update loop. There is no
// cancellation; a late result still lands in the transcript.
func runPending(pending func(context.Context) commands.Completion) tea.Cmd {
	return func() tea.Msg {
		return completionMsg{completion: pending(context.Background())}
	}
}

// syncTranscript notices a clear and re-renders.
func (m *Model) syncTranscript() {
	if gen := m.interp.State().Transcript.Generation(); gen != m.generation {
		m.generation = gen
		m.intro = m.intro.Dismiss()
	}
	m.refresh()
}

// =============================================================================
// MOUSE
// =============================================================================

// handleMouse drags the window by its title bar and scrolls the body.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.Type {
	case tea.MouseLeft:
		if m.onTitleBar(msg.X, msg.Y) {
			m.dragging = true
			m.dragDX = msg.X - m.x
			m.dragDY = msg.Y - m.y
		}

	case tea.MouseMotion:
		if m.dragging {
			m.x, m.y = m.clamp(msg.X-m.dragDX, msg.Y-m.dragDY)
		}

	case tea.MouseRelease:
		m.dragging = false

	case tea.MouseWheelUp:
		m.viewport.LineUp(3)

	case tea.MouseWheelDown:
		m.viewport.LineDown(3)
	}
	return m, nil
}

// onTitleBar reports whether a cell is on the title row inside the frame.
func (m Model) onTitleBar(x, y int) bool {
	return y == m.y+1 && x > m.x && x < m.x+m.width-1
}
