// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/sheenterm/internal/server"
	"github.com/jeranaias/sheenterm/internal/ui/overlay"
)

// runTUI runs the overlay until the user quits or ctx is cancelled. A
// message server failure stops the overlay and is returned.
func runTUI(ctx context.Context, a *app) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	model := overlay.New(a.overlayConfig(), a.theme, a.newInterpreter(), a.host, a.logger)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	)

	if a.cfg.Server.Enabled {
		srv := a.newServer()
		if _, err := srv.Listen(); err != nil {
			return fmt.Errorf("failed to start message server: %w", err)
		}
		g.Go(func() error {
			return srv.Serve(gctx)
		})
		g.Go(func() error {
			forwardShows(gctx, srv.Messages(), p)
			return nil
		})
	}

	g.Go(func() error {
		a.watch(gctx)
		return nil
	})

	_, runErr := p.Run()
	cancel()
	if err := g.Wait(); err != nil {
		return fmt.Errorf("message server: %w", err)
	}
	if errors.Is(runErr, tea.ErrProgramKilled) {
		return nil
	}
	return runErr
}

// sender is the part of *tea.Program the forwarder needs.
type sender interface {
	Send(msg tea.Msg)
}

// forwardShows turns SHOW_UI messages from the host into overlay.ShowMsg.
func forwardShows(ctx context.Context, msgs <-chan server.Message, p sender) {
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-msgs:
			if m.Action == server.ActionShowUI {
				p.Send(overlay.ShowMsg{})
			}
		}
	}
}
