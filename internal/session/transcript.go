// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the ordered list of display lines shown in the overlay.
// Lines are only ever appended; Clear is the single exception.
type Transcript struct {
	lines []string

	// generation increments on every Clear so that readers holding an
	// offset into lines can tell their offset went stale.
	generation int
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds lines to the end of the transcript, in order.
func (t *Transcript) Append(lines ...string) {
	t.lines = append(t.lines, lines...)
}

// Clear removes every line.
func (t *Transcript) Clear() {
	t.lines = nil
	t.generation++
}

// Len returns the number of lines.
func (t *Transcript) Len() int {
	return len(t.lines)
}

// Lines returns a copy of all lines.
func (t *Transcript) Lines() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Last returns the final line, or "" when the transcript is empty.
func (t *Transcript) Last() string {
	if len(t.lines) == 0 {
		return ""
	}
	return t.lines[len(t.lines)-1]
}

// Generation returns the clear counter.
func (t *Transcript) Generation() int {
	return t.generation
}

// Since returns the lines appended after offset n. A negative or
// out-of-range offset yields every line or none respectively.
func (t *Transcript) Since(n int) []string {
	if n < 0 {
		n = 0
	}
	if n >= len(t.lines) {
		return nil
	}
	out := make([]string, len(t.lines)-n)
	copy(out, t.lines[n:])
	return out
}

// Cursor tracks how much of a transcript a reader has already consumed.
// Plain mode uses it to print only new lines.
type Cursor struct {
	offset     int
	generation int
}

// Next returns the lines the reader has not seen yet and advances past
// them. After a Clear the reader starts over from the first line.
func (c *Cursor) Next(t *Transcript) []string {
	if c.generation != t.generation {
		c.generation = t.generation
		c.offset = 0
	}
	lines := t.Since(c.offset)
	c.offset = t.Len()
	return lines
}
