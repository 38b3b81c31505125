// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package intro

import (
	"math/rand/v2"
	"strings"

	"github.com/jeranaias/sheenterm/internal/ui/styles"
)

const (
	// trailLength is how many frames a glyph lingers behind its drop.
	trailLength = 8

	// resetBase and resetSpread decide when a drop restarts at the top:
	// once its row exceeds resetBase + U[0,resetSpread).
	resetBase   = 5
	resetSpread = 500
)

type cell struct {
	glyph rune
	age   int
}

// Rain is a grid of falling glyph columns.
type Rain struct {
	width, height int
	drops         []int
	cells         [][]cell
	rng           *rand.Rand
}

// NewRain creates a rain of width columns and height rows. Every drop
// starts on the top row.
func NewRain(width, height int, rng *rand.Rand) *Rain {
	r := &Rain{rng: rng}
	r.Resize(width, height)
	return r
}

// Resize discards the current frame and starts over at the new size.
func (r *Rain) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r.width, r.height = width, height
	r.drops = make([]int, width)
	r.cells = make([][]cell, height)
	for y := range r.cells {
		r.cells[y] = make([]cell, width)
	}
}

// Size returns the grid dimensions.
func (r *Rain) Size() (width, height int) {
	return r.width, r.height
}

// Step advances one frame: trails age, each drop writes a glyph on its row
// and moves down or restarts.
func (r *Rain) Step() {
	for y := range r.cells {
		for x := range r.cells[y] {
			c := &r.cells[y][x]
			if c.glyph == 0 {
				continue
			}
			c.age++
			if c.age > trailLength {
				c.glyph = 0
			}
		}
	}

	for x, y := range r.drops {
		if y < r.height {
			r.cells[y][x] = cell{glyph: r.glyph()}
		}
		if y > resetBase+r.rng.IntN(resetSpread) {
			r.drops[x] = 0
		} else {
			r.drops[x] = y + 1
		}
	}
}

// glyph picks a printable ASCII character.
func (r *Rain) glyph() rune {
	return rune('!' + r.rng.IntN('~'-'!'+1))
}

// Lines renders the frame, one string per row. Fresh glyphs use the head
// style and older ones the trail style.
func (r *Rain) Lines(theme *styles.Theme) []string {
	out := make([]string, r.height)
	var row, run strings.Builder
	for y := range r.cells {
		row.Reset()
		run.Reset()
		kind := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			switch kind {
			case 0:
				row.WriteString(theme.MatrixHead.Render(run.String()))
			case 1:
				row.WriteString(theme.Matrix.Render(run.String()))
			default:
				row.WriteString(run.String())
			}
			run.Reset()
		}
		for _, c := range r.cells[y] {
			k, g := 2, ' '
			if c.glyph != 0 {
				g = c.glyph
				k = 1
				if c.age == 0 {
					k = 0
				}
			}
			if k != kind {
				flush()
				kind = k
			}
			run.WriteRune(g)
		}
		flush()
		out[y] = row.String()
	}
	return out
}
