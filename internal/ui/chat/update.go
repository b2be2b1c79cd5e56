// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/jeranaias/abel-tui/internal/model"
	"github.com/jeranaias/abel-tui/internal/session"
	"github.com/jeranaias/abel-tui/internal/ui/components"
)

// scrollPage is how many lines pgup/pgdown move when the list is short.
const scrollPage = 10

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case StateChangedMsg:
		return m.applySnapshot(msg.Snapshot)

	case SendDoneMsg:
		if msg.Err != nil && !errors.Is(msg.Err, session.ErrEmptyMessage) {
			m.logger.Warn().Err(msg.Err).Msg("send failed")
			m.setStatus(msg.Err.Error(), true)
		}
		return m.applySnapshot(m.mgr.Snapshot())

	case CopyDoneMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("clipboard copy failed")
			m.setStatus("Copy failed: "+msg.Err.Error(), true)
		} else {
			m.setStatus("Copied reply to clipboard", false)
		}
		return m, nil

	case tea.MouseMsg:
		if m.mode == ModeChat {
			return m, m.list.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Spinner ticks and cursor blinks.
	var cmds []tea.Cmd
	cmds = append(cmds, m.list.Update(msg))
	if m.mode == ModeChat {
		cmds = append(cmds, m.input.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// applySnapshot installs snap unless it is older than the one shown.
func (m Model) applySnapshot(snap session.Snapshot) (tea.Model, tea.Cmd) {
	if snap.Version < m.snap.Version {
		return m, nil
	}

	prev := m.snap
	m.snap = snap
	m.syncNav()

	if prev.ActiveID != snap.ActiveID {
		m.list.Reset(snap.ActiveMessages(), snap.Loading)
	} else {
		m.list.SetMessages(snap.ActiveMessages(), snap.Loading)
	}

	if m.mode == ModeHistory {
		m.history.SetRows(model.BuildHistory(snap.Conversations, time.Now()))
	}

	if snap.Loading && !prev.Loading {
		return m, m.list.SpinnerTick()
	}
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quit = true
		return m, tea.Quit
	}

	switch m.mode {
	case ModeHistory:
		return m.handleHistoryKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeAttach:
		return m.handleAttachKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Send):
		return m.submit()

	case key.Matches(msg, m.keys.Attach):
		m.mode = ModeAttach
		m.input.Blur()
		return m, m.filePrompt.Open()

	case key.Matches(msg, m.keys.RemoveAttachment):
		if m.input.Attachment() != "" {
			m.input.ClearAttachment()
			m.layout()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		return m.toggleTheme()

	case key.Matches(msg, m.keys.History):
		return m.openHistory()

	case key.Matches(msg, m.keys.NewChat):
		m.mgr.CreateConversation("")
		m.setStatus("", false)
		return m.applySnapshot(m.mgr.Snapshot())

	case key.Matches(msg, m.keys.Copy):
		return m.copyLastReply()

	case key.Matches(msg, m.keys.PageUp):
		m.list.ScrollUp(scrollPage)
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.list.ScrollDown(scrollPage)
		return m, nil
	}

	return m, m.input.Update(msg)
}

// submit sends the input to the active conversation. Blank input with no
// attachment is ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	sub, ok := m.input.Submit()
	if !ok {
		return m, nil
	}
	m.layout()
	m.list.ScrollToBottom()
	m.setStatus("", false)

	var file *session.Attachment
	if sub.Attachment != "" {
		file = &session.Attachment{Name: sub.Attachment}
	}
	return m, sendCmd(m.ctx, m.mgr, m.snap.ActiveID, sub.Text, file)
}

// sendCmd runs SendMessage off the event loop.
func sendCmd(ctx context.Context, mgr *session.Manager, id, text string, file *session.Attachment) tea.Cmd {
	return func() tea.Msg {
		return SendDoneMsg{Err: mgr.SendMessage(ctx, id, text, file)}
	}
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	dark := m.theme.Toggle()
	m.list.Rerender()
	if m.prefs != nil {
		if err := m.prefs.SetDarkMode(dark); err != nil {
			m.logger.Warn().Err(err).Msg("failed to save theme preference")
			m.setStatus("Could not save theme preference", true)
			return m, nil
		}
	}
	m.setStatus(m.theme.ModeLabel()+" mode", false)
	return m, nil
}

func (m Model) openHistory() (tea.Model, tea.Cmd) {
	m.history.SetRows(model.BuildHistory(m.snap.Conversations, time.Now()))
	m.mode = ModeHistory
	m.input.Blur()
	return m, nil
}

func (m Model) closeOverlay() (tea.Model, tea.Cmd) {
	m.mode = ModeChat
	return m, m.input.Focus()
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	conv, _ := m.snap.Active()
	reply, ok := conv.LastAssistantMessage()
	if !ok {
		m.setStatus("Nothing to copy yet", false)
		return m, nil
	}
	copyFn := m.copyFn
	return m, func() tea.Msg {
		return CopyDoneMsg{Err: copyFn(reply.Text)}
	}
}

// =============================================================================
// OVERLAYS
// =============================================================================

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.history.HandleKey(msg)
	switch action.Kind {
	case components.HistorySelect:
		m.mgr.SelectConversation(action.ID)
		next, _ := m.applySnapshot(m.mgr.Snapshot())
		m = next.(Model)
		return m.closeOverlay()

	case components.HistoryNewChat:
		m.mgr.CreateConversation("")
		next, _ := m.applySnapshot(m.mgr.Snapshot())
		m = next.(Model)
		return m.closeOverlay()

	case components.HistoryDelete:
		m.pending = pendingAction{id: action.ID}
		m.confirm.Prompt = ConfirmDeleteText
		m.mode = ModeConfirm
		return m, nil

	case components.HistoryDeleteAll:
		m.pending = pendingAction{deleteAll: true}
		m.confirm.Prompt = ConfirmDeleteAllText
		m.mode = ModeConfirm
		return m, nil

	case components.HistoryClose:
		return m.closeOverlay()
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.confirm.HandleKey(msg) {
	case components.ConfirmYes:
		pending := m.pending
		m.pending = pendingAction{}
		if pending.deleteAll {
			if err := m.mgr.ClearAll(); err != nil {
				m.setStatus("Failed to clear storage: "+err.Error(), true)
			} else {
				m.setStatus("All conversations deleted", false)
			}
			next, _ := m.applySnapshot(m.mgr.Snapshot())
			m = next.(Model)
			return m.closeOverlay()
		}
		m.mgr.DeleteConversation(pending.id)
		m.mode = ModeHistory
		return m.applySnapshot(m.mgr.Snapshot())

	case components.ConfirmNo:
		m.pending = pendingAction{}
		m.mode = ModeHistory
		return m, nil
	}
	return m, nil
}

func (m Model) handleAttachKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	path, done, cmd := m.filePrompt.HandleKey(msg)
	if !done {
		return m, cmd
	}
	if path != "" {
		m.input.SetAttachment(path)
		m.layout()
		m.logger.Debug().Str("file", m.input.Attachment()).Msg("file attached")
	}
	return m.closeOverlay()
}
