// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestHistory_PrevAtEmptyIsNoop(t *testing.T) {
	h := NewHistory()

	if v, ok := h.Prev(); ok || v != "" {
		t.Errorf("Prev() on empty history = (%q, %v), want (\"\", false)", v, ok)
	}
	if h.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", h.Cursor())
	}
}

func TestHistory_NextAtEndIsNoop(t *testing.T) {
	h := NewHistory()
	h.Push("help")

	if _, ok := h.Next(); ok {
		t.Error("Next() with cursor at Len() should be a no-op")
	}
	if h.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", h.Cursor())
	}
}

func TestHistory_Navigation(t *testing.T) {
	h := NewHistory()
	h.Push("one")
	h.Push("two")
	h.Push("three")

	steps := []struct {
		name   string
		move   func() (string, bool)
		want   string
		wantOK bool
		cursor int
	}{
		{"up to three", h.Prev, "three", true, 2},
		{"up to two", h.Prev, "two", true, 1},
		{"up to one", h.Prev, "one", true, 0},
		{"up at top stays", h.Prev, "", false, 0},
		{"down to two", h.Next, "two", true, 1},
		{"down to three", h.Next, "three", true, 2},
		{"down to empty line", h.Next, "", true, 3},
		{"down at end stays", h.Next, "", false, 3},
	}

	for _, step := range steps {
		got, ok := step.move()
		if got != step.want || ok != step.wantOK {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", step.name, got, ok, step.want, step.wantOK)
		}
		if h.Cursor() != step.cursor {
			t.Errorf("%s: cursor = %d, want %d", step.name, h.Cursor(), step.cursor)
		}
	}
}

func TestHistory_PushResetsCursor(t *testing.T) {
	h := NewHistory()
	h.Push("a")
	h.Push("b")
	h.Prev()
	h.Prev()

	h.Push("c")
	if h.Cursor() != 3 {
		t.Errorf("Cursor() after Push = %d, want 3", h.Cursor())
	}
}

func TestHistory_Find(t *testing.T) {
	h := NewHistory()
	for _, line := range []string{"notes add milk", "help", "Notes list", "notes list"} {
		h.Push(line)
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"notes", []string{"notes add milk", "notes list"}},
		{"Notes", []string{"Notes list"}},
		{"xyz", nil},
		{"", []string{"notes add milk", "help", "Notes list", "notes list"}},
	}

	for _, tc := range tests {
		got := h.Find(tc.pattern)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Find(%q) mismatch (-want +got):\n%s", tc.pattern, diff)
		}
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_AppendAndClear(t *testing.T) {
	tr := NewTranscript()
	tr.Append("> help")
	tr.Append("a", "b")

	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tr.Len())
	}
	if tr.Last() != "b" {
		t.Errorf("Last() = %q, want %q", tr.Last(), "b")
	}

	tr.Clear()
	if tr.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", tr.Len())
	}
	if tr.Last() != "" {
		t.Errorf("Last() after Clear = %q, want empty", tr.Last())
	}
	if tr.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", tr.Generation())
	}
}

func TestTranscript_LinesIsCopy(t *testing.T) {
	tr := NewTranscript()
	tr.Append("x")

	lines := tr.Lines()
	lines[0] = "mutated"

	if tr.Last() != "x" {
		t.Error("Lines() must not expose internal storage")
	}
}

func TestCursor_Next(t *testing.T) {
	tr := NewTranscript()
	var c Cursor

	tr.Append("1", "2")
	if diff := cmp.Diff([]string{"1", "2"}, c.Next(tr)); diff != "" {
		t.Errorf("first read (-want +got):\n%s", diff)
	}

	if got := c.Next(tr); len(got) != 0 {
		t.Errorf("second read = %v, want nothing", got)
	}

	tr.Append("3")
	if diff := cmp.Diff([]string{"3"}, c.Next(tr)); diff != "" {
		t.Errorf("after append (-want +got):\n%s", diff)
	}

	tr.Clear()
	tr.Append("fresh")
	if diff := cmp.Diff([]string{"fresh"}, c.Next(tr)); diff != "" {
		t.Errorf("after clear (-want +got):\n%s", diff)
	}
}

// =============================================================================
// NOTES / ALIASES TESTS
// =============================================================================

func TestNotes(t *testing.T) {
	var n Notes
	if n.Len() != 0 {
		t.Fatalf("new Notes has %d items", n.Len())
	}
	n.Add("hello world")
	n.Add("second")

	if diff := cmp.Diff([]string{"hello world", "second"}, n.List()); diff != "" {
		t.Errorf("List() (-want +got):\n%s", diff)
	}
}

func TestAliases(t *testing.T) {
	a := NewAliases()
	if _, ok := a.Resolve("foo"); ok {
		t.Error("empty table resolved foo")
	}

	a.Set("foo", "help")
	a.Set("foo", "date")
	target, ok := a.Resolve("foo")
	if !ok || target != "date" {
		t.Errorf("Resolve(foo) = (%q, %v), want (date, true)", target, ok)
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
}

func TestNewState_Empty(t *testing.T) {
	s := NewState()
	if s.Transcript.Len() != 0 || s.History.Len() != 0 || s.Notes.Len() != 0 || s.Aliases.Len() != 0 {
		t.Error("NewState() containers must start empty")
	}
}
