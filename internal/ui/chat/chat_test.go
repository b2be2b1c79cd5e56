// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/abel-tui/internal/cloud"
	"github.com/jeranaias/abel-tui/internal/session"
	"github.com/jeranaias/abel-tui/internal/storage"
	"github.com/jeranaias/abel-tui/internal/ui/components"
	"github.com/jeranaias/abel-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(ctx context.Context, turns []cloud.ChatMessage) (string, error) {
	return s.reply, s.err
}

type fixture struct {
	kv     *storage.MemoryKV
	mgr    *session.Manager
	prefs  *storage.Preferences
	copied []string
	mu     sync.Mutex
}

func newFixture(t *testing.T, completer session.Completer) *fixture {
	t.Helper()
	kv := storage.NewMemoryKV()
	var tick int64
	clock := func() time.Time {
		tick++
		return time.UnixMilli(1741964966000 + tick)
	}
	return &fixture{
		kv:    kv,
		mgr:   session.NewManager(storage.NewConversationStore(kv), completer, session.WithClock(clock)),
		prefs: storage.NewPreferences(kv),
	}
}

func (f *fixture) model(t *testing.T) Model {
	t.Helper()
	m := New(f.mgr, f.prefs, styles.NewTheme(), WithClipboard(func(s string) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.copied = append(f.copied, s)
		return nil
	}))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and feeds its message back into the model.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestModel_StartsWithActiveConversation(t *testing.T) {
	f := newFixture(t, stubCompleter{reply: "hi"})
	m := f.model(t)

	_, ok := m.Snapshot().Active()
	assert.True(t, ok)
	assert.Equal(t, ModeChat, m.Mode())
	assert.Contains(t, m.View(), components.Brand)
}

func TestModel_BlankSubmitIgnored(t *testing.T) {
	f := newFixture(t, stubCompleter{reply: "hi"})
	m := f.model(t)

	m.Input().SetValue("   \n ")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.Snapshot().ActiveMessages())
}

func TestModel_SubmitAppendsReply(t *testing.T) {
	f := newFixture(t, stubCompleter{reply: "Hello from abel"})
	m := f.model(t)

	m.Input().SetValue("  hello  ")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.Input().Value())

	m = drain(t, m, cmd)
	msgs := m.Snapshot().ActiveMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.True(t, msgs[0].IsUser)
	assert.Equal(t, "Hello from abel", msgs[1].Text)
	assert.False(t, m.Snapshot().Loading)
}

func TestModel_SubmitFailureShowsFallback(t *testing.T) {
	f := newFixture(t, stubCompleter{err: errors.New("boom")})
	m := f.model(t)

	m.Input().SetValue("hello")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	msgs := m.Snapshot().ActiveMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, session.FallbackReply, msgs[1].Text)
}

func TestModel_SubmitWithAttachment(t *testing.T) {
	f := newFixture(t, stubCompleter{reply: "got it"})
	m := f.model(t)

	m.Input().SetAttachment("/tmp/docs/report.pdf")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	msgs := m.Snapshot().ActiveMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Uploaded: report.pdf", msgs[0].Text)
	assert.Empty(t, m.Input().Attachment())
}

func TestModel_RemoveAttachment(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)

	m.Input().SetAttachment("notes.txt")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Empty(t, m.Input().Attachment())
}

func TestModel_StaleSnapshotIgnored(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)

	old := m.Snapshot()
	f.mgr.CreateConversation("newer")
	next, _ := m.Update(StateChangedMsg{Snapshot: f.mgr.Snapshot()})
	m = next.(Model)
	newID := m.Snapshot().ActiveID
	require.NotEqual(t, old.ActiveID, newID)

	next, _ = m.Update(StateChangedMsg{Snapshot: old})
	m = next.(Model)
	assert.Equal(t, newID, m.Snapshot().ActiveID)
}

func TestModel_LoadingSnapshotStartsSpinner(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)

	snap := m.Snapshot()
	snap.Loading = true
	snap.Version++
	_, cmd := m.Update(StateChangedMsg{Snapshot: snap})
	assert.NotNil(t, cmd)
}

// =============================================================================
// NAV BAR TESTS
// =============================================================================

func TestModel_NewChat(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)
	before := m.Snapshot().ActiveID

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.NotEqual(t, before, m.Snapshot().ActiveID)
	assert.Len(t, m.Snapshot().Conversations, 2)
}

func TestModel_ToggleThemePersists(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)
	start := m.Theme().IsDark

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, !start, m.Theme().IsDark)

	value, set := f.prefs.DarkMode()
	assert.True(t, set)
	assert.Equal(t, !start, value)
}

func TestModel_StoredPreferenceApplied(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	require.NoError(t, f.prefs.SetDarkMode(false))

	m := f.model(t)
	assert.False(t, m.Theme().IsDark)
}

func TestModel_CopyLastReply(t *testing.T) {
	f := newFixture(t, stubCompleter{reply: "copy me"})
	m := f.model(t)

	m.Input().SetValue("hello")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	m = drain(t, m, cmd)

	assert.Equal(t, []string{"copy me"}, f.copied)
	assert.Equal(t, "Copied reply to clipboard", m.Status())
}

func TestModel_CopyWithoutReply(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Nil(t, cmd)
	assert.Equal(t, "Nothing to copy yet", m.Status())
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func seedTwo(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.mgr.SendMessage(ctx, "", "first question", nil))
	require.NoError(t, f.mgr.SendMessage(ctx, "", "second question", nil))
}

func TestModel_HistoryListsConversations(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	seedTwo(t, f)
	m := f.model(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	require.Equal(t, ModeHistory, m.Mode())
	// The synthesized empty conversation has no first message and is hidden.
	assert.Len(t, m.history.Rows(), 2)
	assert.Contains(t, m.View(), components.HistoryTitle)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeChat, m.Mode())
}

func TestModel_HistorySelect(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	seedTwo(t, f)
	m := f.model(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	want := m.history.Rows()[m.history.Cursor()].ID
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeChat, m.Mode())
	assert.Equal(t, want, m.Snapshot().ActiveID)
	assert.Equal(t, want, f.mgr.Snapshot().ActiveID)
}

func TestModel_HistoryDeleteRequiresConfirmation(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	seedTwo(t, f)
	m := f.model(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	m, _ = press(t, m, runes("d"))
	require.Equal(t, ModeConfirm, m.Mode())
	assert.Contains(t, m.View(), "delete this conversation")

	// Declining keeps everything.
	m, _ = press(t, m, runes("n"))
	assert.Equal(t, ModeHistory, m.Mode())
	assert.Len(t, f.mgr.Snapshot().Conversations, 3)

	m, _ = press(t, m, runes("d"))
	m, _ = press(t, m, runes("y"))
	assert.Equal(t, ModeHistory, m.Mode())
	assert.Len(t, f.mgr.Snapshot().Conversations, 2)
	assert.Len(t, m.history.Rows(), 1)
}

func TestModel_HistoryDeleteAll(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	seedTwo(t, f)
	m := f.model(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	m, _ = press(t, m, runes("D"))
	require.Equal(t, ModeConfirm, m.Mode())
	assert.Contains(t, m.View(), "delete all conversations")

	m, _ = press(t, m, runes("y"))
	assert.Equal(t, ModeChat, m.Mode())

	snap := m.Snapshot()
	require.Len(t, snap.Conversations, 1)
	assert.True(t, snap.Conversations[0].IsEmpty())
	assert.Equal(t, snap.Conversations[0].ID, snap.ActiveID)
}

func TestModel_HistoryNewChat(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	m, _ = press(t, m, runes("n"))
	assert.Equal(t, ModeChat, m.Mode())
	assert.Len(t, m.Snapshot().Conversations, 2)
}

func TestModel_HistoryEmptyState(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Empty(t, m.history.Rows())
	assert.Contains(t, m.View(), components.HistoryEmptyText)
}

// =============================================================================
// ATTACH TESTS
// =============================================================================

func TestModel_AttachPromptEscape(t *testing.T) {
	f := newFixture(t, stubCompleter{})
	m := f.model(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.Equal(t, ModeAttach, m.Mode())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeChat, m.Mode())
	assert.Empty(t, m.Input().Attachment())
}
