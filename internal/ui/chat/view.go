// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/abel-tui/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the screen.
// Layout: nav bar (1 line) + messages + input + status (1 line).
func (m Model) View() string {
	if m.quit {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeHistory:
		return m.history.View()
	case ModeConfirm:
		return m.confirm.View()
	case ModeAttach:
		return m.filePrompt.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.navbar.View(),
		m.list.View(),
		m.input.View(),
		m.renderStatus(),
	)
}

// renderStatus shows the last status message, or key hints when there is
// none.
func (m Model) renderStatus() string {
	if m.status != "" {
		text := util.TruncateWidth(util.SingleLine(m.status), m.width)
		if m.statusErr {
			return m.theme.StatusError.Render(text)
		}
		return m.theme.StatusInfo.Render(text)
	}

	bindings := m.keys.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, m.theme.NavKey.Render(h.Key)+" "+m.theme.InputHint.Render(h.Desc))
	}
	line := strings.Join(hints, "  ")
	if lipgloss.Width(line) > m.width {
		return m.theme.InputHint.Render(util.TruncateWidth("enter send  ctrl+c quit", m.width))
	}
	return line
}
