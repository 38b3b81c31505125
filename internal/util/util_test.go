// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStringWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"hello", 5},
		{"日本", 4},
		{"héllo", 5},
	}
	for _, tc := range tests {
		if got := StringWidth(tc.input); got != tc.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"日本語", 4, "日…"},
		{"hello", 1, "h"},
		{"hello", 0, ""},
	}
	for _, tc := range tests {
		got := TruncateWidth(tc.input, tc.width)
		if got != tc.want {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.input, tc.width, got, tc.want)
		}
		if StringWidth(got) > tc.width {
			t.Errorf("TruncateWidth(%q, %d) is %d columns wide", tc.input, tc.width, StringWidth(got))
		}
	}
}

func TestPadWidth(t *testing.T) {
	if got := PadWidth("ab", 4); got != "ab  " {
		t.Errorf("PadWidth = %q", got)
	}
	if got := PadWidth("日", 3); got != "日 " {
		t.Errorf("PadWidth wide = %q", got)
	}
	if got := PadWidth("abcdef", 3); StringWidth(got) != 3 {
		t.Errorf("PadWidth truncate = %q", got)
	}
}

func TestRunePrefix(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 0, ""},
		{"hello", 1, "h"},
		{"hello", 5, "hello"},
		{"hello", 9, "hello"},
		{"héllo", 2, "hé"},
		{"日本語", 2, "日本"},
	}
	for _, tc := range tests {
		if got := RunePrefix(tc.input, tc.n); got != tc.want {
			t.Errorf("RunePrefix(%q, %d) = %q, want %q", tc.input, tc.n, got, tc.want)
		}
	}
	if RuneCount("日本語") != 3 {
		t.Error("RuneCount should count runes")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "file.txt")

	if err := WriteFileAtomic(path, []byte("one"), 0600); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("two"), 0600); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q, want %q", data, "two")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, got %d entries", len(entries))
	}
}
