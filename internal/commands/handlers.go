// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// Fixed replies.
const (
	msgNoteAdded     = "Note added."
	msgNoNotes       = "No notes found."
	msgNoMatches     = "No matches found."
	msgBase64Invalid = "Error: Invalid base64 string"
	msgExiting       = "Exiting..."
	msgNotRecognized = "Error: Command not recognized - "
	passwordAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	passwordLength   = 8
)

// ErrNoHost is returned by host-backed commands when no host is wired.
var ErrNoHost = errors.New("no host connection")

// =============================================================================
// LOCAL COMMANDS
// =============================================================================

func handleHelp(ctx *Context, args []string) Reply {
	return Lines(ctx.Registry.HelpLine())
}

// handleClear empties the transcript, including the echo of "clear".
func handleClear(ctx *Context, args []string) Reply {
	ctx.State.Transcript.Clear()
	return Reply{}
}

func handleExit(ctx *Context, args []string) Reply {
	return Reply{Lines: []string{msgExiting}, Close: true}
}

func handleDate(ctx *Context, args []string) Reply {
	return Lines(ctx.now().UTC().Format("2006-01-02"))
}

func handleTime(ctx *Context, args []string) Reply {
	return Lines(ctx.now().Format("15:04:05"))
}

// handleHistory prints one line per entry. The current line is not yet
// recorded, so it never lists itself.
func handleHistory(ctx *Context, args []string) Reply {
	return Lines(ctx.State.History.Entries()...)
}

func handleAlias(ctx *Context, args []string) Reply {
	if len(args) < 2 {
		return ctx.usage("alias")
	}
	name := FoldName(args[0])
	target := joinArgs(args[1:])
	ctx.State.Aliases.Set(name, target)
	return Lines("Alias set: " + name + " -> " + target)
}

func handleNotes(ctx *Context, args []string) Reply {
	if len(args) == 0 {
		return ctx.usage("notes")
	}
	switch args[0] {
	case "add":
		ctx.State.Notes.Add(joinArgs(args[1:]))
		return Lines(msgNoteAdded)
	case "list":
		notes := ctx.State.Notes.List()
		if len(notes) == 0 {
			return Lines(msgNoNotes)
		}
		return Lines(notes...)
	default:
		return ctx.usage("notes")
	}
}

func handleFind(ctx *Context, args []string) Reply {
	matches := ctx.State.History.Find(joinArgs(args))
	if len(matches) == 0 {
		return Lines(msgNoMatches)
	}
	return Lines(matches...)
}

func handlePwgen(ctx *Context, args []string) Reply {
	var b strings.Builder
	b.Grow(passwordLength)
	for i := 0; i < passwordLength; i++ {
		b.WriteByte(passwordAlphabet[ctx.intN(len(passwordAlphabet))])
	}
	return Lines(b.String())
}

func handleBase64(ctx *Context, args []string) Reply {
	if len(args) == 0 {
		return ctx.usage("base64")
	}
	text := joinArgs(args[1:])
	switch args[0] {
	case "encode":
		return Lines(base64.StdEncoding.EncodeToString([]byte(text)))
	case "decode":
		decoded, err := decodeBase64(text)
		if err != nil {
			return Lines(msgBase64Invalid)
		}
		return Lines(decoded)
	default:
		return ctx.usage("base64")
	}
}

// decodeBase64 accepts what a browser's atob accepts: ASCII whitespace is
// ignored and trailing padding is optional. Bytes that are not valid UTF-8
// are mapped one-to-one onto Latin-1 runes.
func decodeBase64(s string) (string, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, s)

	if len(s)%4 == 0 {
		s = strings.TrimSuffix(s, "=")
		s = strings.TrimSuffix(s, "=")
	}
	if len(s)%4 == 1 {
		return "", base64.CorruptInputError(len(s))
	}

	raw, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	runes := make([]rune, len(raw))
	for i, c := range raw {
		runes[i] = rune(c)
	}
	return string(runes), nil
}

// =============================================================================
// HOST COMMANDS
// =============================================================================

// failedError renders a host failure as the transcript line "Failed: ...".
type failedError struct {
	err error
}

func (e *failedError) Error() string {
	return "Failed: " + e.err.Error()
}

func (e *failedError) Unwrap() error {
	return e.err
}

// handleTestCB sends the argument text to the host and shows its reply.
func handleTestCB(ctx *Context, args []string) Reply {
	text := joinArgs(args)
	if text == "" {
		return ctx.usage("testcb")
	}
	host := ctx.Host
	return Reply{
		Await: func(c context.Context) (string, error) {
			if host == nil {
				return "", &failedError{err: ErrNoHost}
			}
			body, err := host.TestCallback(c, text)
			if err != nil {
				return "", &failedError{err: err}
			}
			return "Result: " + body, nil
		},
	}
}
