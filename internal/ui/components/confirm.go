// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/abel-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRM DIALOG COMPONENT
// =============================================================================

// ConfirmResult is the outcome of a key press in a confirm dialog.
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// ConfirmDialog asks a yes/no question before a destructive action.
type ConfirmDialog struct {
	Prompt string
	width  int
	height int
	theme  *styles.Theme
}

// NewConfirmDialog creates a dialog asking prompt.
func NewConfirmDialog(theme *styles.Theme, prompt string) *ConfirmDialog {
	return &ConfirmDialog{Prompt: prompt, width: 80, height: 20, theme: theme}
}

// SetSize sets the space available to the dialog.
func (c *ConfirmDialog) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// HandleKey maps y/enter to yes and n/esc to no.
func (c *ConfirmDialog) HandleKey(msg tea.KeyMsg) ConfirmResult {
	switch msg.String() {
	case "y", "Y", "enter":
		return ConfirmYes
	case "n", "N", "esc", "q":
		return ConfirmNo
	}
	return ConfirmPending
}

// View renders the dialog centered in its area.
func (c *ConfirmDialog) View() string {
	boxWidth := minInt(c.width-4, 60)
	body := lipgloss.JoinVertical(lipgloss.Left,
		c.theme.DialogDanger.Render(wordWrap(c.Prompt, maxInt(10, boxWidth-6))),
		c.theme.DialogHelp.Render("y confirm  n cancel"),
	)
	box := c.theme.DialogBox.Width(boxWidth).Render(body)
	return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, box)
}
