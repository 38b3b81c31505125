// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// =============================================================================
// NOTES
// =============================================================================

// Notes is the session's list of free-text notes.
type Notes struct {
	items []string
}

// Add appends a note.
func (n *Notes) Add(text string) {
	n.items = append(n.items, text)
}

// List returns a copy of all notes in the order they were added.
func (n *Notes) List() []string {
	out := make([]string, len(n.items))
	copy(out, n.items)
	return out
}

// Len returns the number of notes.
func (n *Notes) Len() int {
	return len(n.items)
}

// =============================================================================
// ALIASES
// =============================================================================

// Aliases maps a lower-cased alias name to the command name it stands for.
// Targets are never re-resolved through the table, so cycles are harmless.
type Aliases struct {
	table map[string]string
}

// NewAliases creates an empty alias table.
func NewAliases() *Aliases {
	return &Aliases{table: make(map[string]string)}
}

// Set stores or replaces an alias. The caller lower-cases name.
func (a *Aliases) Set(name, target string) {
	a.table[name] = target
}

// Resolve returns the target for name if one is defined.
func (a *Aliases) Resolve(name string) (string, bool) {
	target, ok := a.table[name]
	return target, ok
}

// Len returns the number of aliases.
func (a *Aliases) Len() int {
	return len(a.table)
}

// =============================================================================
// STATE
// =============================================================================

// State is everything one interpreter mutates during a session.
type State struct {
	Transcript *Transcript
	History    *History
	Notes      *Notes
	Aliases    *Aliases
}

// NewState creates a State with every container empty.
func NewState() *State {
	return &State{
		Transcript: NewTranscript(),
		History:    NewHistory(),
		Notes:      &Notes{},
		Aliases:    NewAliases(),
	}
}
