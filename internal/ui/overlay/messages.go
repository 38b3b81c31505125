// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package overlay

import "github.com/jeranaias/sheenterm/internal/commands"

// ShowMsg opens the window. The first one also starts the intro.
type ShowMsg struct{}

// completionMsg carries a settled host call back to the owner.
type completionMsg struct {
	completion commands.Completion
}

// exitMsg fires once the exit delay after "exit" has passed.
type exitMsg struct{}

// closeNotifiedMsg reports the outcome of telling the host we closed.
type closeNotifiedMsg struct {
	err error
}
