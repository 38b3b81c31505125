// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/sheenterm/internal/session"
)

// =============================================================================
// CONTEXT
// =============================================================================

// Host is the part of the host client the commands need.
type Host interface {
	TestCallback(ctx context.Context, text string) (string, error)
}

// Context is what handlers see. It is only touched on the goroutine that
// owns the interpreter; Reply.Await must not capture it.
type Context struct {
	State    *session.State
	Registry *Registry
	Host     Host

	// Now and Rand are swappable for tests.
	Now  func() time.Time
	Rand *rand.Rand
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// usage replies with the registered usage line for name.
func (c *Context) usage(name string) Reply {
	if cmd := c.Registry.Get(name); cmd != nil {
		return Lines(cmd.UsageLine())
	}
	return Lines("Usage: " + name)
}

func (c *Context) intN(n int) int {
	if c.Rand == nil {
		return rand.IntN(n)
	}
	return c.Rand.IntN(n)
}

// =============================================================================
// INTERPRETER
// =============================================================================

// Outcome tells the caller what else a submission needs.
type Outcome struct {
	// Pending is non-nil when a host call is outstanding. Run it off the
	// owning goroutine and pass its result to Complete.
	Pending func(ctx context.Context) Completion

	// Close is set by "exit".
	Close bool
}

// Completion is the settled result of a pending host call.
type Completion struct {
	Command string
	Line    string
	Err     error
}

// Interpreter dispatches input lines against a session. It is not safe for
// concurrent use.
type Interpreter struct {
	ctx    *Context
	logger *log.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the time source used by "date" and "time".
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) { in.ctx.Now = now }
}

// WithRand overrides the random source used by "pwgen".
func WithRand(r *rand.Rand) Option {
	return func(in *Interpreter) { in.ctx.Rand = r }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.logger = l.WithPrefix("commands")
		}
	}
}

// WithState starts the interpreter on an existing session.
func WithState(s *session.State) Option {
	return func(in *Interpreter) {
		if s != nil {
			in.ctx.State = s
		}
	}
}

// NewInterpreter creates an interpreter with a fresh session and the
// built-in commands. host may be nil; "testcb" then reports a failure.
func NewInterpreter(host Host, opts ...Option) *Interpreter {
	in := &Interpreter{
		ctx: &Context{
			State:    session.NewState(),
			Registry: NewRegistry(),
			Host:     host,
		},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// State returns the session the interpreter writes to.
func (in *Interpreter) State() *session.State {
	return in.ctx.State
}

// Registry returns the command registry.
func (in *Interpreter) Registry() *Registry {
	return in.ctx.Registry
}

// Submit handles one raw input line. Whitespace-only input is ignored and
// reported with ok=false. Otherwise the line is echoed, executed and then
// recorded in history.
func (in *Interpreter) Submit(raw string) (out Outcome, ok bool) {
	parsed := Parse(raw)
	if parsed.Empty() {
		return Outcome{}, false
	}
	out = in.execute(parsed)
	in.ctx.State.History.Push(parsed.Line)
	return out, true
}

func (in *Interpreter) execute(p ParseResult) Outcome {
	st := in.ctx.State
	st.Transcript.Append("> " + p.Line)

	name := p.Name
	if target, ok := st.Aliases.Resolve(name); ok {
		name = target
	}

	cmd := in.ctx.Registry.Get(name)
	if cmd == nil {
		in.logger.Debug("unknown command", "line", p.Line)
		st.Transcript.Append(msgNotRecognized + p.Line)
		return Outcome{}
	}

	in.logger.Debug("dispatch", "command", cmd.Name, "args", len(p.Args))
	reply := cmd.Handler(in.ctx, p.Args)
	st.Transcript.Append(reply.Lines...)

	out := Outcome{Close: reply.Close}
	if reply.Await != nil {
		out.Pending = pending(cmd.Name, reply.Await)
	}
	return out
}

// pending adapts a handler's wait into a Completion. It runs off the owning
// goroutine so it touches nothing but its arguments.
func pending(name string, await func(context.Context) (string, error)) func(context.Context) Completion {
	return func(ctx context.Context) Completion {
		line, err := await(ctx)
		if err != nil {
			line = err.Error()
		}
		return Completion{Command: name, Line: line, Err: err}
	}
}

// Complete appends the line of a settled host call.
func (in *Interpreter) Complete(c Completion) {
	if c.Err != nil {
		in.logger.Warn("host call failed", "command", c.Command, "err", c.Err)
	}
	in.ctx.State.Transcript.Append(c.Line)
}
