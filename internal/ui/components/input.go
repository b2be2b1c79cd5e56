// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/abel-tui/internal/ui/styles"
)

// =============================================================================
// INPUT AREA COMPONENT - Multi-line message box with attachment chip
// =============================================================================

// Placeholder is shown in the empty input box.
const Placeholder = "How can Abel help?"

// inputLines is the visible height of the textarea.
const inputLines = 3

// Submission is what the user sent from the input box.
type Submission struct {
	Text string
	// Attachment is the attached file's base name, or empty.
	Attachment string
}

// InputArea is the message box.
type InputArea struct {
	textarea   textarea.Model
	attachment string
	width      int
	theme      *styles.Theme
}

// NewInputArea creates an InputArea. Enter is left to the caller; Alt+Enter
// inserts a newline.
func NewInputArea(theme *styles.Theme) *InputArea {
	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.SetHeight(inputLines)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")

	ta.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.Placeholder = ta.FocusedStyle.Placeholder

	return &InputArea{
		textarea: ta,
		width:    80,
		theme:    theme,
	}
}

// Focus focuses the input.
func (i *InputArea) Focus() tea.Cmd {
	return i.textarea.Focus()
}

// Blur removes focus from the input.
func (i *InputArea) Blur() {
	i.textarea.Blur()
}

// Focused returns whether the input is focused.
func (i *InputArea) Focused() bool {
	return i.textarea.Focused()
}

// SetWidth sets the component width.
func (i *InputArea) SetWidth(width int) {
	i.width = width
	i.textarea.SetWidth(maxInt(10, width))
}

// Height returns the rendered height in lines.
func (i *InputArea) Height() int {
	return lipgloss.Height(i.View())
}

// Value returns the current text.
func (i *InputArea) Value() string {
	return i.textarea.Value()
}

// SetValue replaces the current text.
func (i *InputArea) SetValue(s string) {
	i.textarea.SetValue(s)
}

// SetAttachment attaches the file at path. Only the base name is kept.
func (i *InputArea) SetAttachment(path string) {
	i.attachment = filepath.Base(path)
}

// ClearAttachment removes the attachment.
func (i *InputArea) ClearAttachment() {
	i.attachment = ""
}

// Attachment returns the attached file name.
func (i *InputArea) Attachment() string {
	return i.attachment
}

// Submit returns the pending input and clears the box. It returns false and
// leaves the box untouched when the text is blank and nothing is attached.
func (i *InputArea) Submit() (Submission, bool) {
	text := strings.TrimSpace(i.textarea.Value())
	if text == "" && i.attachment == "" {
		return Submission{}, false
	}
	sub := Submission{Text: text, Attachment: i.attachment}
	i.textarea.Reset()
	i.attachment = ""
	return sub, true
}

// Update forwards messages to the textarea.
func (i *InputArea) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.textarea, cmd = i.textarea.Update(msg)
	return cmd
}

// View renders the input box with the attachment chip above it.
func (i *InputArea) View() string {
	var b strings.Builder
	if i.attachment != "" {
		b.WriteString(i.theme.AttachmentChip.Render("📎 " + i.attachment))
		b.WriteString(" ")
		b.WriteString(i.theme.InputHint.Render("ctrl+x remove"))
		b.WriteString("\n")
	}
	b.WriteString(i.textarea.View())
	return i.theme.InputContainer.Width(i.width).Render(b.String())
}
