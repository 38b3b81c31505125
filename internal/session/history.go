// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "strings"

// =============================================================================
// COMMAND HISTORY
// =============================================================================

// History stores submitted command lines, oldest first, together with the
// recall cursor used by the up/down keys.
//
// The cursor ranges over [0, Len()]. Len() is the "fresh empty line"
// position the cursor returns to after every Push.
type History struct {
	entries []string
	cursor  int
}

// NewHistory creates an empty history with the cursor on the empty line.
func NewHistory() *History {
	return &History{}
}

// Push records a submitted line and parks the cursor on the empty line.
func (h *History) Push(line string) {
	h.entries = append(h.entries, line)
	h.cursor = len(h.entries)
}

// Prev moves the cursor one entry back and returns that entry.
// At the oldest entry (or with no entries) it does nothing and returns false.
func (h *History) Prev() (string, bool) {
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next moves the cursor one entry forward. Landing on the empty-line
// position yields "". Already on the empty line it does nothing and
// returns false.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor], true
}

// Cursor returns the current recall position.
func (h *History) Cursor() int {
	return h.cursor
}

// Len returns the number of recorded lines.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of every recorded line in submission order.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Find returns every entry containing pattern, case-sensitively, in
// submission order. An empty pattern matches every entry.
func (h *History) Find(pattern string) []string {
	var found []string
	for _, entry := range h.entries {
		if strings.Contains(entry, pattern) {
			found = append(found, entry)
		}
	}
	return found
}
