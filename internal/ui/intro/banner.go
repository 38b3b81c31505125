// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package intro

import "github.com/jeranaias/sheenterm/internal/util"

// Banner is the welcome text shown once the matrix rain ends.
var Banner = []string{
	` _____ _    _ ______ ______ _   _    _____  _____ _____  _____ _____ _______ _____`,
	` / ____| |  | |  ____|  ____| \ | |  / ____|/ ____|  __ \|_   _|  __ \__   __/ ____|`,
	`| (___ | |__| | |__  | |__  |  \| | | (___ | |    | |__) | | | | |__) | | | | (___`,
	" \\___ \\|  __  |  __| |  __| | . ` |  \\___ \\| |    |  _  /  | | |  ___/  | |  \\___ \\",
	` ____) | |  | | |____| |____| |\  |  ____) | |____| | \ \ _| |_| |      | |  ____) |`,
	`|_____/|_|  |_|______|______|_| \_| |_____/ \_____|_|  \_\_____|_|      |_| |_____/`,
	`------------------------------------------------------------------------------------`,
	``,
	`Welcome to the terminal`,
	`Type "help" for a list of commands.`,
}

// bannerWidth is the rune length of the longest banner line, which is
// also the number of typing ticks.
func bannerWidth(lines []string) int {
	longest := 0
	for _, line := range lines {
		if n := util.RuneCount(line); n > longest {
			longest = n
		}
	}
	return longest
}

// reveal returns every line cut to its first n runes.
func reveal(lines []string, n int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = util.RunePrefix(line, n)
	}
	return out
}
