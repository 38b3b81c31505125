// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/sheenterm/internal/commands"
	"github.com/jeranaias/sheenterm/internal/session"
	"github.com/jeranaias/sheenterm/internal/ui/intro"
	"github.com/jeranaias/sheenterm/internal/ui/styles"
)

const plainPrompt = "> "

func newPlainCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plain",
		Short: "Run the terminal in line mode on stdin/stdout",
		Long: `Run the terminal without the overlay window.

Every command behaves as it does in the overlay. "exit", Ctrl+C and
Ctrl+D end the session and notify the host with CLOSE_UI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlainCommand(cmd, opts)
		},
	}
}

func runPlainCommand(cmd *cobra.Command, opts *options) error {
	a, err := opts.newApp(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go a.watch(ctx)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	tty := CanRunTUI()
	out := cmd.OutOrStdout()

	s := newPlainSession(a.newInterpreter(), a.theme, out, a.host, a.logger)
	s.exitDelay = a.cfg.UI.ExitDelay()
	s.echo = !tty
	s.history = line.AppendHistory
	if tty {
		term := termenv.NewOutput(out)
		s.clearScreen = func() {
			term.ClearScreen()
		}
	}
	return s.run(ctx, line)
}

// =============================================================================
// PLAIN SESSION
// =============================================================================

// lineReader is the part of *liner.State the session needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// closeNotifier is told when the session ends.
type closeNotifier interface {
	CloseUI(ctx context.Context) error
}

// plainSession drives an Interpreter from a line reader. Only the goroutine
// inside run touches the interpreter; the reader and async commands reach it
// over channels.
type plainSession struct {
	interp *commands.Interpreter
	theme  *styles.Theme
	out    io.Writer
	host   closeNotifier
	logger *log.Logger

	exitDelay time.Duration

	// echo prints the "> cmd" transcript line. Off when the terminal
	// already shows what was typed.
	echo bool

	// history and clearScreen are optional hooks into the line editor.
	history     func(string)
	clearScreen func()

	cursor     session.Cursor
	generation int
}

func newPlainSession(interp *commands.Interpreter, theme *styles.Theme, out io.Writer, host closeNotifier, logger *log.Logger) *plainSession {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &plainSession{
		interp:     interp,
		theme:      theme,
		out:        out,
		host:       host,
		logger:     logger.WithPrefix("plain"),
		echo:       true,
		generation: interp.State().Transcript.Generation(),
	}
}

// run prints the banner and processes lines until exit, EOF, Ctrl+C or ctx
// cancellation. The host is notified of the close in every case but the
// last.
func (s *plainSession) run(ctx context.Context, r lineReader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, line := range intro.Banner {
		s.println(s.theme.Banner.Render(line))
	}

	lines := make(chan string)
	next := make(chan struct{}, 1)
	readErr := make(chan error, 1)
	go readLines(ctx, r, lines, next, readErr)

	completions := make(chan commands.Completion)
	var exitTimer <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-readErr:
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				s.notifyClose(ctx)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)

		case line := <-lines:
			t := s.interp.State().Transcript
			gen := t.Generation()
			out, ok := s.interp.Submit(line)
			if ok && s.history != nil {
				s.history(line)
			}
			// The echo is the first line of the batch unless the command
			// cleared the transcript, which takes the echo with it.
			s.flush(ok && !s.echo && t.Generation() == gen)

			if out.Pending != nil {
				go awaitCompletion(ctx, out.Pending, completions)
			}
			if out.Close {
				exitTimer = time.After(s.exitDelay)
				continue
			}
			next <- struct{}{}

		case c := <-completions:
			s.interp.Complete(c)
			s.flush(false)

		case <-exitTimer:
			s.notifyClose(ctx)
			return nil
		}
	}
}

// readLines prompts for one line at a time and waits for the owner to ask
// for the next, so output from a command lands before the next prompt.
func readLines(ctx context.Context, r lineReader, lines chan<- string, next <-chan struct{}, readErr chan<- error) {
	for {
		line, err := r.Prompt(plainPrompt)
		if err != nil {
			readErr <- err
			return
		}
		select {
		case lines <- line:
		case <-ctx.Done():
			return
		}
		select {
		case <-next:
		case <-ctx.Done():
			return
		}
	}
}

func awaitCompletion(ctx context.Context, pending func(context.Context) commands.Completion, out chan<- commands.Completion) {
	c := pending(ctx)
	select {
	case out <- c:
	case <-ctx.Done():
	}
}

// flush prints transcript lines the reader has not seen yet. dropEcho skips
// the first of them.
func (s *plainSession) flush(dropEcho bool) {
	t := s.interp.State().Transcript
	if gen := t.Generation(); gen != s.generation {
		s.generation = gen
		if s.clearScreen != nil {
			s.clearScreen()
		}
	}
	lines := s.cursor.Next(t)
	if dropEcho && len(lines) > 0 {
		lines = lines[1:]
	}
	for _, line := range lines {
		s.println(s.theme.RenderLine(line))
	}
}

func (s *plainSession) println(line string) {
	if _, err := fmt.Fprintln(s.out, line); err != nil {
		s.logger.Debug("write failed", "err", err)
	}
}

func (s *plainSession) notifyClose(ctx context.Context) {
	if s.host == nil {
		return
	}
	if err := s.host.CloseUI(ctx); err != nil {
		s.logger.Warn("close notification failed", "err", err)
	}
}
