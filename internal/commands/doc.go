// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands interprets lines typed into the terminal overlay.
//
// An Interpreter owns the session state and a Registry of built-in
// commands. Each submitted line is echoed to the transcript, resolved
// through the alias table, dispatched to a handler and finally recorded
// in history. Handlers that talk to the host return an awaitable reply;
// the caller runs it off the owning goroutine and hands the Completion
// back through Interpreter.Complete.
//
// # Key Types
//
//   - Interpreter: Submit/Complete over a session.State
//   - Registry: Ordered set of commands, drives the help line
//   - Command: Name, usage and handler for one built-in
//   - Reply: Lines to append, optional host wait, optional close
//   - Outcome: What the caller must do after a submission
//
// # Usage
//
//	in := commands.NewInterpreter(hostClient, commands.WithLogger(logger))
//	out, ok := in.Submit("testcb ping")
//	if ok && out.Pending != nil {
//	    go func() { results <- out.Pending(ctx) }()
//	}
//	// later, on the owning goroutine:
//	in.Complete(<-results)
package commands
