// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/abel-tui/internal/session"
	"github.com/jeranaias/abel-tui/internal/ui/components"
	"github.com/jeranaias/abel-tui/internal/ui/styles"
)

// Confirmation prompts for destructive actions.
const (
	ConfirmDeleteText    = "Are you sure you want to delete this conversation?"
	ConfirmDeleteAllText = "Are you sure you want to delete all conversations?"
)

// =============================================================================
// MODE
// =============================================================================

// Mode is which surface currently receives keys.
type Mode int

const (
	ModeChat Mode = iota
	ModeHistory
	ModeConfirm
	ModeAttach
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeChat:
		return "chat"
	case ModeHistory:
		return "history"
	case ModeConfirm:
		return "confirm"
	case ModeAttach:
		return "attach"
	default:
		return "unknown"
	}
}

// pendingAction is what a confirm dialog guards.
type pendingAction struct {
	deleteAll bool
	id        string
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Preferences persists the dark-mode choice.
type Preferences interface {
	DarkMode() (value, set bool)
	SetDarkMode(on bool) error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat screen.
type Model struct {
	ctx    context.Context
	mgr    *session.Manager
	prefs  Preferences
	logger zerolog.Logger
	copyFn func(string) error

	theme      *styles.Theme
	keys       KeyMap
	navbar     *components.NavBar
	list       *components.MessageList
	input      *components.InputArea
	history    *components.HistoryDialog
	confirm    *components.ConfirmDialog
	filePrompt *components.FilePrompt

	mode    Mode
	pending pendingAction
	snap    session.Snapshot

	status    string
	statusErr bool

	width  int
	height int
	quit   bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		if fn != nil {
			m.copyFn = fn
		}
	}
}

// WithContext sets the context passed to completion calls.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// New creates the chat model. A stored dark-mode preference overrides the
// terminal's detected background.
func New(mgr *session.Manager, prefs Preferences, theme *styles.Theme, opts ...Option) Model {
	if theme == nil {
		theme = styles.NewTheme()
	}
	if prefs != nil {
		if dark, ok := prefs.DarkMode(); ok {
			theme.SetDark(dark)
		}
	}

	md := components.NewMarkdownRenderer()
	m := Model{
		ctx:        context.Background(),
		mgr:        mgr,
		prefs:      prefs,
		logger:     zerolog.Nop(),
		copyFn:     clipboard.WriteAll,
		theme:      theme,
		keys:       DefaultKeyMap(),
		navbar:     components.NewNavBar(theme),
		list:       components.NewMessageList(theme, md),
		input:      components.NewInputArea(theme),
		history:    components.NewHistoryDialog(theme),
		confirm:    components.NewConfirmDialog(theme, ""),
		filePrompt: components.NewFilePrompt(theme),
		width:      80,
		height:     24,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.snap = mgr.Snapshot()
	m.syncNav()
	m.list.Reset(m.snap.ActiveMessages(), m.snap.Loading)
	m.layout()
	return m
}

// Init focuses the input.
func (m Model) Init() tea.Cmd {
	return m.input.Focus()
}

// Mode returns the current mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Snapshot returns the last applied manager snapshot.
func (m Model) Snapshot() session.Snapshot {
	return m.snap
}

// Status returns the status line message.
func (m Model) Status() string {
	return m.status
}

// Theme returns the model's theme.
func (m Model) Theme() *styles.Theme {
	return m.theme
}

// Input returns the input component.
func (m Model) Input() *components.InputArea {
	return m.input
}

// Quitting reports whether the model asked to quit.
func (m Model) Quitting() bool {
	return m.quit
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) syncNav() {
	m.navbar.Title = ""
	if conv, ok := m.snap.Active(); ok {
		m.navbar.Title = conv.Title
	}
}

// layout distributes the window between the bars and the message list.
func (m *Model) layout() {
	m.navbar.Width = m.width
	m.input.SetWidth(m.width)
	m.history.SetSize(m.width, m.height)
	m.confirm.SetSize(m.width, m.height)
	m.filePrompt.SetSize(m.width, m.height)

	// Nav bar and status line are one line each.
	listHeight := m.height - 2 - m.input.Height()
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.width, listHeight)
}
