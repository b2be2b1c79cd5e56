// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")

	require.NoError(t, AtomicWriteFile(path, []byte("hello, world!"), 0o644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello, world!", string(content))
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "deep", "test.txt")

	require.NoError(t, AtomicWriteFile(path, []byte("test data"), 0o644))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")

	require.NoError(t, AtomicWriteFile(path, []byte("initial"), 0o644))
	require.NoError(t, AtomicWriteFile(path, []byte("updated"), 0o644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(content))
}

func TestAtomicWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	for i := 0; i < 5; i++ {
		require.NoError(t, AtomicWriteFile(path, []byte(strings.Repeat("x", i)), 0o600))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "test.txt", entries[0].Name())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/.abel/data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".abel", "data"), got)

	got, err = ExpandHome("/var/lib/abel")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/abel", got)

	got, err = ExpandHome("~user/x")
	require.NoError(t, err)
	assert.Equal(t, "~user/x", got, "only a bare ~ prefix is expanded")
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestCutRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"exact length untouched", "hello", 5, "hello"},
		{"cut keeps max runes", "hello world", 5, "hello..."},
		{"utf8 safe", "héllo wörld", 4, "héll..."},
		{"zero max", "hello", 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CutRunes(tc.in, tc.max))
		})
	}
}

func TestCutRunes_PreviewLength(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := CutRunes(long, 125)
	assert.Len(t, got, 128)
	assert.True(t, strings.HasSuffix(got, Ellipsis))
}

func TestTruncateWidth(t *testing.T) {
	assert.Equal(t, "hello", TruncateWidth("hello", 10))
	assert.Equal(t, "hel...", TruncateWidth("hello world", 6))
	assert.Equal(t, "", TruncateWidth("hello", 0))

	// Each CJK character is two columns wide.
	got := TruncateWidth("日本語テキスト", 7)
	assert.Equal(t, "日本...", got)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 7)
	assert.True(t, strings.HasSuffix(got, Ellipsis))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
}

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "one two three", SingleLine("one\ntwo\r\nthree"))
}
