// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseResult is a tokenized input line.
type ParseResult struct {
	// Line is the trimmed input, as echoed and recorded in history
	Line string

	// Name is the first token folded to lower case
	Name string

	// Args are the remaining tokens with their case preserved
	Args []string
}

// Empty reports whether the line held nothing but whitespace.
func (p ParseResult) Empty() bool {
	return p.Line == ""
}

// Parse trims input and splits it on runs of whitespace. Quotes carry no
// meaning; "notes add a  b" yields args [add a b].
func Parse(input string) ParseResult {
	line := strings.TrimSpace(input)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParseResult{}
	}
	return ParseResult{
		Line: line,
		Name: FoldName(fields[0]),
		Args: fields[1:],
	}
}

// FoldName lower-cases a command or alias name.
func FoldName(s string) string {
	return cases.Lower(language.Und).String(s)
}

// joinArgs glues args back together with single spaces.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
