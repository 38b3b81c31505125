// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package overlay

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/sheenterm/internal/commands"
	"github.com/jeranaias/sheenterm/internal/ui/intro"
	"github.com/jeranaias/sheenterm/internal/ui/styles"
)

// Window chrome: two border rows, the title bar and the input line.
const (
	borderRows = 2
	borderCols = 2
	titleRows  = 1
	inputRows  = 1

	minWidth  = 20
	minHeight = 6
)

// Host is notified when the window closes.
type Host interface {
	CloseUI(ctx context.Context) error
}

// Config sizes and times the window.
type Config struct {
	// Width and Height are the outer window size including the border.
	Width  int
	Height int

	// ExitDelay is how long "exit" waits before closing.
	ExitDelay time.Duration

	// StartVisible opens the window on Init, as if the host had asked.
	StartVisible bool

	Intro intro.Config
}

// Model is the overlay window.
type Model struct {
	cfg    Config
	theme  *styles.Theme
	keys   KeyMap
	interp *commands.Interpreter
	host   Host
	logger *log.Logger

	intro    intro.Model
	input    textinput.Model
	viewport viewport.Model

	visible    bool
	generation int

	// Terminal size and window geometry.
	termWidth, termHeight int
	width, height         int
	x, y                  int
	placed                bool

	// Drag state. dragDX/dragDY are the grab point relative to the
	// window's top-left corner.
	dragging       bool
	dragDX, dragDY int
}

// New creates a hidden overlay around interp. host may be nil.
func New(cfg Config, theme *styles.Theme, interp *commands.Interpreter, host Host, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Width < minWidth {
		cfg.Width = minWidth
	}
	if cfg.Height < minHeight {
		cfg.Height = minHeight
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = theme.Prompt
	ti.TextStyle = theme.Input
	ti.Cursor.Style = theme.Cursor

	m := Model{
		cfg:        cfg,
		theme:      theme,
		keys:       DefaultKeyMap(),
		interp:     interp,
		host:       host,
		logger:     logger.WithPrefix("overlay"),
		intro:      intro.New(cfg.Intro),
		input:      ti,
		viewport:   viewport.New(0, 0),
		generation: interp.State().Transcript.Generation(),
		width:      cfg.Width,
		height:     cfg.Height,
	}
	m.layout()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.cfg.StartVisible {
		return func() tea.Msg { return ShowMsg{} }
	}
	return nil
}

// Visible reports whether the window is open.
func (m Model) Visible() bool {
	return m.visible
}

// Position returns the window's top-left corner.
func (m Model) Position() (x, y int) {
	return m.x, m.y
}

// Dragging reports whether the title bar is being dragged.
func (m Model) Dragging() bool {
	return m.dragging
}

// Input returns the current input field contents.
func (m Model) Input() string {
	return m.input.Value()
}

// Intro exposes the intro state.
func (m Model) Intro() intro.Model {
	return m.intro
}

// Interpreter returns the interpreter the window drives.
func (m Model) Interpreter() *commands.Interpreter {
	return m.interp
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) innerWidth() int {
	return m.width - borderCols
}

func (m Model) bodyHeight() int {
	return m.height - borderRows - titleRows - inputRows
}

// layout fits the window into the terminal and resizes the children.
func (m *Model) layout() {
	m.width, m.height = m.cfg.Width, m.cfg.Height
	if m.termWidth > 0 && m.width > m.termWidth {
		m.width = m.termWidth
	}
	if m.termHeight > 0 && m.height > m.termHeight {
		m.height = m.termHeight
	}
	if m.width < minWidth {
		m.width = minWidth
	}
	if m.height < minHeight {
		m.height = minHeight
	}

	if !m.placed && m.termWidth > 0 {
		m.x = (m.termWidth - m.width) / 2
		m.y = (m.termHeight - m.height) / 2
		m.placed = true
	}
	m.x, m.y = m.clamp(m.x, m.y)

	m.viewport.Width = m.innerWidth()
	m.viewport.Height = m.bodyHeight()
	m.input.Width = m.innerWidth() - len(m.input.Prompt) - 1
	m.intro = m.intro.SetSize(m.rainSize())
	m.refresh()
}

// rainSize is the whole terminal once its size is known, else the window body.
func (m Model) rainSize() (int, int) {
	if m.termWidth > 0 && m.termHeight > 0 {
		return m.termWidth, m.termHeight
	}
	return m.innerWidth(), m.bodyHeight()
}

// clamp keeps the window on screen.
func (m Model) clamp(x, y int) (int, int) {
	maxX := m.termWidth - m.width
	maxY := m.termHeight - m.height
	if x > maxX {
		x = maxX
	}
	if y > maxY {
		y = maxY
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
