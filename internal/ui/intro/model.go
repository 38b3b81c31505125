// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package intro

import (
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sheenterm/internal/ui/styles"
)

// FrameInterval is the matrix rain cadence.
const FrameInterval = 50 * time.Millisecond

// Stage is where the sequence is.
type Stage int

const (
	StageIdle       Stage = iota // not started
	StageMatrix                  // rain is falling
	StageTransition              // rain gone, banner not yet shown
	StageTyping                  // banner being revealed
	StageReady                   // done
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageMatrix:
		return "matrix"
	case StageTransition:
		return "transition"
	case StageTyping:
		return "typing"
	case StageReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Config holds the sequence timings.
type Config struct {
	// Matrix is how long the rain plays.
	Matrix time.Duration

	// WelcomeDelay is measured from the start, not from the end of the rain.
	WelcomeDelay time.Duration

	// CharInterval is the typing cadence.
	CharInterval time.Duration

	// Typing reveals the banner column by column when set.
	Typing bool

	// Lines overrides Banner, mostly for tests.
	Lines []string
}

// =============================================================================
// MESSAGES
// =============================================================================

type matrixDoneMsg struct{}

type welcomeMsg struct{}

type typeMsg struct{}

type frameMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the intro state machine.
type Model struct {
	cfg       Config
	lines     []string
	width     int
	stage     Stage
	revealed  int
	dismissed bool
	rain      *Rain
}

// New creates an idle intro.
func New(cfg Config) Model {
	lines := cfg.Lines
	if lines == nil {
		lines = Banner
	}
	return Model{
		cfg:   cfg,
		lines: lines,
		width: bannerWidth(lines),
		rain:  NewRain(0, 0, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))),
	}
}

// Stage returns the current stage.
func (m Model) Stage() Stage {
	return m.stage
}

// Started reports whether Start has ever run.
func (m Model) Started() bool {
	return m.stage != StageIdle
}

// Raining reports whether the matrix should be drawn instead of the
// window.
func (m Model) Raining() bool {
	return m.stage == StageMatrix
}

// Start kicks off the sequence on the first call. Later calls do nothing,
// so the sequence never replays.
func (m Model) Start() (Model, tea.Cmd) {
	if m.Started() {
		return m, nil
	}
	m.stage = StageMatrix
	return m, tea.Batch(
		tea.Tick(m.cfg.Matrix, func(time.Time) tea.Msg { return matrixDoneMsg{} }),
		tea.Tick(m.cfg.WelcomeDelay, func(time.Time) tea.Msg { return welcomeMsg{} }),
		frameTick(),
	)
}

func frameTick() tea.Cmd {
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) typeTick() tea.Cmd {
	return tea.Tick(m.cfg.CharInterval, func(time.Time) tea.Msg { return typeMsg{} })
}

// SetSize sizes the rain to the area it will cover.
func (m Model) SetSize(width, height int) Model {
	if w, h := m.rain.Size(); w != width || h != height {
		m.rain.Resize(width, height)
	}
	return m
}

// Update advances the sequence. Messages it does not own are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if m.stage != StageMatrix {
			return m, nil
		}
		m.rain.Step()
		return m, frameTick()

	case matrixDoneMsg:
		if m.stage == StageMatrix {
			m.stage = StageTransition
		}
		return m, nil

	case welcomeMsg:
		if m.stage != StageTransition && m.stage != StageMatrix {
			return m, nil
		}
		if !m.cfg.Typing || m.width == 0 {
			m.revealed = m.width
			m.stage = StageReady
			return m, nil
		}
		m.stage = StageTyping
		m.revealed = 1
		if m.revealed >= m.width {
			m.stage = StageReady
			return m, nil
		}
		return m, m.typeTick()

	case typeMsg:
		if m.stage != StageTyping {
			return m, nil
		}
		m.revealed++
		if m.revealed >= m.width || m.dismissed {
			m.stage = StageReady
			return m, nil
		}
		return m, m.typeTick()
	}
	return m, nil
}

// Revealed is how many runes of each banner line are showing.
func (m Model) Revealed() int {
	return m.revealed
}

// Dismiss hides the banner for good.
func (m Model) Dismiss() Model {
	m.dismissed = true
	return m
}

// BannerLines returns the banner as revealed so far, or nil before the
// banner appears or after Dismiss.
func (m Model) BannerLines() []string {
	if m.dismissed {
		return nil
	}
	if m.stage != StageTyping && m.stage != StageReady {
		return nil
	}
	return reveal(m.lines, m.revealed)
}

// RainView renders the current rain frame.
func (m Model) RainView(theme *styles.Theme) []string {
	return m.rain.Lines(theme)
}
