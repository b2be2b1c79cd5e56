// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/abel-tui/internal/model"
	"github.com/jeranaias/abel-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE LIST COMPONENT - Scrollable chat area
// =============================================================================

// StickThreshold is how close (in lines) to the bottom the viewer must be
// for new content to scroll the list down.
const StickThreshold = 3

// TypingText is shown under the messages while a reply is outstanding.
const TypingText = "Typing..."

// EmptyConversationText is shown when the active conversation has no messages.
const EmptyConversationText = "Say something to start the conversation."

// MessageList shows the active conversation's messages in a viewport.
type MessageList struct {
	viewport viewport.Model
	spinner  spinner.Model
	theme    *styles.Theme
	markdown *MarkdownRenderer

	messages []model.Message
	loading  bool
	width    int
	height   int
	ready    bool
}

// NewMessageList creates a MessageList.
func NewMessageList(theme *styles.Theme, md *MarkdownRenderer) *MessageList {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return &MessageList{
		viewport: vp,
		spinner:  sp,
		theme:    theme,
		markdown: md,
		width:    80,
		height:   20,
	}
}

// SetSize updates the viewport dimensions and re-renders.
func (l *MessageList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.viewport.Width = width
	l.viewport.Height = height
	l.ready = true
	l.refresh(true)
}

// SetMessages replaces the displayed messages and loading state. The view
// follows new content only when it was already near the bottom.
func (l *MessageList) SetMessages(messages []model.Message, loading bool) {
	stick := l.NearBottom()
	l.messages = messages
	l.loading = loading
	l.refresh(stick)
}

// Reset shows a different conversation, starting at its bottom.
func (l *MessageList) Reset(messages []model.Message, loading bool) {
	l.messages = messages
	l.loading = loading
	l.refresh(true)
}

// Rerender redraws the content, for example after a theme change.
func (l *MessageList) Rerender() {
	l.refresh(l.NearBottom())
}

// NearBottom reports whether the viewer is within StickThreshold lines of
// the bottom.
func (l *MessageList) NearBottom() bool {
	bottom := l.viewport.YOffset + l.viewport.Height
	return l.viewport.TotalLineCount()-bottom <= StickThreshold
}

// Loading reports whether the typing indicator is shown.
func (l *MessageList) Loading() bool {
	return l.loading
}

func (l *MessageList) refresh(stick bool) {
	l.viewport.SetContent(l.render())
	if stick {
		l.viewport.GotoBottom()
	}
}

func (l *MessageList) render() string {
	if len(l.messages) == 0 && !l.loading {
		return l.theme.EmptyState.Render(EmptyConversationText)
	}

	parts := make([]string, 0, len(l.messages)+1)
	for _, msg := range l.messages {
		parts = append(parts, RenderMessage(msg, l.width, l.theme, l.markdown))
	}
	if l.loading {
		parts = append(parts, l.spinner.View()+" "+l.theme.Typing.Render(TypingText))
	}
	return strings.Join(parts, "\n\n")
}

// SpinnerTick starts the typing spinner.
func (l *MessageList) SpinnerTick() tea.Cmd {
	return l.spinner.Tick
}

// Update handles spinner ticks and scroll keys.
func (l *MessageList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !l.loading {
			return nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		l.refresh(l.NearBottom())
		return cmd
	default:
		var cmd tea.Cmd
		l.viewport, cmd = l.viewport.Update(msg)
		return cmd
	}
}

// ScrollUp scrolls up by n lines.
func (l *MessageList) ScrollUp(n int) {
	l.viewport.LineUp(n)
}

// ScrollDown scrolls down by n lines.
func (l *MessageList) ScrollDown(n int) {
	l.viewport.LineDown(n)
}

// ScrollToBottom jumps to the newest message.
func (l *MessageList) ScrollToBottom() {
	l.viewport.GotoBottom()
}

// View renders the viewport.
func (l *MessageList) View() string {
	if !l.ready {
		return ""
	}
	return l.viewport.View()
}
