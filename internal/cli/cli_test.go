// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/abel-tui/internal/cloud"
	"github.com/jeranaias/abel-tui/internal/model"
	"github.com/jeranaias/abel-tui/internal/session"
	"github.com/jeranaias/abel-tui/internal/storage"
	"github.com/jeranaias/abel-tui/internal/ui/components"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// scripted answers prompts from a fixed list, then reports io.EOF.
type scripted struct {
	lines   []string
	prompts []string
}

func (s *scripted) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

type echoCompleter struct{}

func (echoCompleter) Complete(ctx context.Context, turns []cloud.ChatMessage) (string, error) {
	return "echo: " + turns[len(turns)-1].Content, nil
}

func newPlain(t *testing.T, lines ...string) (*Plain, *session.Manager, *bytes.Buffer) {
	t.Helper()
	var tick int64
	clock := func() time.Time {
		tick++
		return time.UnixMilli(1741964966000 + tick)
	}
	mgr := session.NewManager(
		storage.NewConversationStore(storage.NewMemoryKV()),
		echoCompleter{},
		session.WithClock(clock),
	)
	out := &bytes.Buffer{}
	p := NewPlain(mgr, &scripted{lines: lines}, out, WithPlainClock(func() time.Time {
		return time.UnixMilli(1741964966000).Add(90 * time.Minute)
	}))
	return p, mgr, out
}

// =============================================================================
// REPL TESTS
// =============================================================================

func TestPlain_SendPrintsReply(t *testing.T) {
	p, mgr, out := newPlain(t)

	quit, err := p.Handle(context.Background(), "hello there")
	require.NoError(t, err)
	assert.False(t, quit)

	assert.Contains(t, out.String(), components.TypingText)
	assert.Contains(t, out.String(), "echo: hello there")

	msgs := mgr.ActiveMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello there", msgs[0].Text)
}

func TestPlain_BlankLineIgnored(t *testing.T) {
	p, mgr, out := newPlain(t)

	_, err := p.Handle(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Empty(t, mgr.ActiveMessages())
}

func TestPlain_SendWithoutActiveConversation(t *testing.T) {
	p, mgr, out := newPlain(t)
	mgr.SelectConversation("")

	_, err := p.Handle(context.Background(), "fresh start")
	require.NoError(t, err)

	conv, ok := mgr.Active()
	require.True(t, ok)
	assert.Equal(t, "Conversation: fresh start", conv.Title)
	assert.Len(t, conv.Messages, 1)
	assert.Contains(t, out.String(), "Started Conversation: fresh start")
}

func TestPlain_AttachAndSend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o600))

	p, mgr, out := newPlain(t)
	ctx := context.Background()

	_, err := p.Handle(ctx, "/attach "+path)
	require.NoError(t, err)
	assert.Equal(t, "you [report.pdf]> ", p.prompt())

	_, err = p.Handle(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "you> ", p.prompt())

	msgs := mgr.ActiveMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Uploaded: report.pdf", msgs[0].Text)
	assert.Contains(t, out.String(), "echo: report.pdf")
}

func TestPlain_AttachMissingFile(t *testing.T) {
	p, _, _ := newPlain(t)

	_, err := p.Handle(context.Background(), "/attach "+filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Empty(t, p.attachment)
}

func TestPlain_NewAndHistory(t *testing.T) {
	p, mgr, out := newPlain(t)
	ctx := context.Background()

	_, err := p.Handle(ctx, "/history")
	require.NoError(t, err)
	assert.Contains(t, out.String(), components.HistoryEmptyText)

	_, err = p.Handle(ctx, "first question")
	require.NoError(t, err)
	_, err = p.Handle(ctx, "/new")
	require.NoError(t, err)
	assert.Len(t, mgr.Snapshot().Conversations, 2)

	out.Reset()
	_, err = p.Handle(ctx, "/history")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "first question")
	assert.Contains(t, out.String(), "1 hour ago")
}

func TestPlain_OpenSwitchesConversation(t *testing.T) {
	p, mgr, out := newPlain(t)
	ctx := context.Background()

	_, err := p.Handle(ctx, "first question")
	require.NoError(t, err)
	firstID := mgr.Snapshot().ActiveID
	_, err = p.Handle(ctx, "/new")
	require.NoError(t, err)
	require.NotEqual(t, firstID, mgr.Snapshot().ActiveID)

	out.Reset()
	_, err = p.Handle(ctx, "/open 1")
	require.NoError(t, err)
	assert.Equal(t, firstID, mgr.Snapshot().ActiveID)
	assert.Contains(t, out.String(), "first question")

	_, err = p.Handle(ctx, "/open 9")
	assert.Error(t, err)
}

func TestPlain_DeleteAsksFirst(t *testing.T) {
	p, mgr, _ := newPlain(t, "n", "yes")
	ctx := context.Background()

	_, err := p.Handle(ctx, "keep me?")
	require.NoError(t, err)
	require.Len(t, mgr.Snapshot().Conversations, 1)

	_, err = p.Handle(ctx, "/delete 1")
	require.NoError(t, err)
	assert.Len(t, mgr.Snapshot().Conversations, 1)

	_, err = p.Handle(ctx, "/delete 1")
	require.NoError(t, err)
	snap := mgr.Snapshot()
	require.Len(t, snap.Conversations, 1, "an empty conversation replaces the deleted one")
	assert.Empty(t, snap.Conversations[0].Messages)
	assert.Empty(t, mgr.History(time.Now()))

	prompts := p.in.(*scripted).prompts
	require.Len(t, prompts, 2)
	assert.Equal(t, ConfirmDeleteQuestion+" [y/N]: ", prompts[0])
}

func TestPlain_ClearAll(t *testing.T) {
	p, mgr, out := newPlain(t, "y")
	ctx := context.Background()

	_, err := p.Handle(ctx, "one")
	require.NoError(t, err)
	_, err = p.Handle(ctx, "/new")
	require.NoError(t, err)

	_, err = p.Handle(ctx, "/clear")
	require.NoError(t, err)

	snap := mgr.Snapshot()
	require.Len(t, snap.Conversations, 1)
	assert.True(t, snap.Conversations[0].IsEmpty())
	assert.Contains(t, out.String(), "All conversations deleted.")
}

func TestPlain_UnknownCommand(t *testing.T) {
	p, _, _ := newPlain(t)

	_, err := p.Handle(context.Background(), "/frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/frobnicate")
}

func TestPlain_RunStopsOnQuitAndEOF(t *testing.T) {
	p, mgr, out := newPlain(t, "hi", "/quit", "never read")
	require.NoError(t, p.Run(context.Background()))
	assert.Len(t, mgr.ActiveMessages(), 2)
	assert.Contains(t, out.String(), "/help")
	assert.Len(t, p.in.(*scripted).lines, 1)

	p, _, _ = newPlain(t)
	assert.NoError(t, p.Run(context.Background()))
}

func TestPlain_RunPrintsErrorsAndContinues(t *testing.T) {
	p, _, out := newPlain(t, "/open x", "/quit")
	require.NoError(t, p.Run(context.Background()))
	assert.Contains(t, out.String(), "Error:")
}

// =============================================================================
// HISTORY TABLE TESTS
// =============================================================================

func TestFormatHistory(t *testing.T) {
	rows := []model.HistorySummary{
		{ID: "1", FirstUserMessage: "short question", CreatedAt: "2 minutes ago"},
		{ID: "2", FirstUserMessage: strings.Repeat("long ", 60), CreatedAt: "1 hour ago"},
	}

	got := FormatHistory(rows, 80)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "PREVIEW")
	assert.Contains(t, lines[1], "short question")
	assert.True(t, strings.HasPrefix(lines[2], "2"))
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 80)
	}
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Equal(t, components.HistoryEmptyText+"\n", FormatHistory(nil, 80))
}

func TestRowID(t *testing.T) {
	rows := []model.HistorySummary{{ID: "a"}, {ID: "b"}}

	id, err := RowID(rows, " 2 ")
	require.NoError(t, err)
	assert.Equal(t, "b", id)

	for _, bad := range []string{"0", "3", "x", ""} {
		_, err := RowID(rows, bad)
		assert.Error(t, err, bad)
	}
}

// =============================================================================
// CONFIRMATION TESTS
// =============================================================================

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"y", true},
		{"", false},
	}

	for _, tc := range tests {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(tc.input), &out, "Delete?")
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
		assert.Equal(t, "Delete? [y/N]: ", out.String())
	}
}

func TestRequireConfirmation_YesFlagSkipsPrompt(t *testing.T) {
	ok, err := RequireConfirmation(true, ConfirmDeleteAllQuestion)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsEndOfInput(t *testing.T) {
	assert.True(t, isEndOfInput(io.EOF))
	assert.True(t, isEndOfInput(errors.Wrap(io.EOF, "read")))
	assert.False(t, isEndOfInput(errors.New("other")))
}

// =============================================================================
// EXPORT TESTS
// =============================================================================

func TestPlain_Export(t *testing.T) {
	dir := t.TempDir()
	p, _, out := newPlain(t)
	p.exportDir = dir
	ctx := context.Background()

	_, err := p.Handle(ctx, "/export")
	require.Error(t, err, "empty conversations are not exported")

	_, err = p.Handle(ctx, "hello")
	require.NoError(t, err)

	_, err = p.Handle(ctx, "/export json")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
	assert.Contains(t, out.String(), "Saved ")

	_, err = p.Handle(ctx, "/export pdf")
	assert.Error(t, err)
}
