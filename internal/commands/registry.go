// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command is a built-in the interpreter can dispatch to.
type Command struct {
	// Name is the lower-case word that invokes the command (e.g., "notes")
	Name string

	// Usage shows argument syntax (e.g., "notes <add|list> [note]")
	Usage string

	// Handler runs the command against the interpreter context
	Handler func(ctx *Context, args []string) Reply
}

// Reply is what a handler hands back to the interpreter.
type Reply struct {
	// Lines are appended to the transcript, in order, right away.
	Lines []string

	// Await, when set, blocks on the host. Its result becomes exactly one
	// transcript line once the caller passes the Completion back.
	Await func(ctx context.Context) (string, error)

	// Close asks the overlay to close after the exit delay.
	Close bool
}

// UsageLine renders the reply for a malformed invocation.
func (c *Command) UsageLine() string {
	return "Usage: " + c.Usage
}

// Lines is shorthand for a reply that only appends text.
func Lines(lines ...string) Reply {
	return Reply{Lines: lines}
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds commands in registration order.
type Registry struct {
	commands map[string]*Command
	order    []string
}

// NewRegistry creates a registry with every built-in registered.
func NewRegistry() *Registry {
	r := newRegistry()
	r.registerBuiltins()
	return r
}

func newRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
	}
}

// Register adds a command. Registering a name twice replaces the handler
// but keeps the original position.
func (r *Registry) Register(cmd *Command) {
	name := FoldName(cmd.Name)
	cmd.Name = name
	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.commands[name] = cmd
}

// Get returns the command registered under name, or nil. The lookup is
// exact; callers fold case before asking.
func (r *Registry) Get(name string) *Command {
	return r.commands[name]
}

// Names returns command names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// HelpLine renders the single line printed by "help".
func (r *Registry) HelpLine() string {
	return "Available commands: " + strings.Join(r.Names(), ", ")
}

// registerBuiltins wires the fixed command set. The order here is the
// order "help" prints.
func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "help",
		Usage:   "help",
		Handler: handleHelp,
	})
	r.Register(&Command{
		Name:        "clear",
		Usage:   "clear",
		Handler: handleClear,
	})
	r.Register(&Command{
		Name:        "exit",
		Usage:   "exit",
		Handler: handleExit,
	})
	r.Register(&Command{
		Name:        "date",
		Usage:   "date",
		Handler: handleDate,
	})
	r.Register(&Command{
		Name:        "history",
		Usage:   "history",
		Handler: handleHistory,
	})
	r.Register(&Command{
		Name:        "alias",
		Usage:   "alias <name> <command>",
		Handler: handleAlias,
	})
	r.Register(&Command{
		Name:        "notes",
		Usage:   "notes <add|list> [note]",
		Handler: handleNotes,
	})
	r.Register(&Command{
		Name:        "find",
		Usage:   "find <text>",
		Handler: handleFind,
	})
	r.Register(&Command{
		Name:        "pwgen",
		Usage:   "pwgen",
		Handler: handlePwgen,
	})
	r.Register(&Command{
		Name:        "base64",
		Usage:   "base64 <encode|decode> <text>",
		Handler: handleBase64,
	})
	r.Register(&Command{
		Name:        "time",
		Usage:   "time",
		Handler: handleTime,
	})
	r.Register(&Command{
		Name:        "testcb",
		Usage:   "testcb <any>",
		Handler: handleTestCB,
	})
}
