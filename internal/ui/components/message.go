// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/abel-tui/internal/model"
	"github.com/jeranaias/abel-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// Role labels shown above each bubble.
const (
	UserLabel      = "you"
	AssistantLabel = "abel"
)

// RenderMessage renders one message at width. User messages are plain text
// aligned right; assistant messages are Markdown aligned left.
func RenderMessage(msg model.Message, width int, theme *styles.Theme, md *MarkdownRenderer) string {
	if msg.IsUser {
		return renderUserBubble(msg, width, theme)
	}
	return renderAssistantBubble(msg, width, theme, md)
}

func renderUserBubble(msg model.Message, width int, theme *styles.Theme) string {
	// Border and padding take 4 columns; keep a left margin for alignment.
	maxContent := maxInt(10, width*3/4-4)
	content := wordWrap(msg.Text, minInt(maxContent, lipgloss.Width(msg.Text)))

	label := theme.DialogMeta.Render(UserLabel)
	bubble := theme.UserBubble.Render(content)
	block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
}

func renderAssistantBubble(msg model.Message, width int, theme *styles.Theme, md *MarkdownRenderer) string {
	maxContent := maxInt(10, width-6)
	content := msg.Text
	if md != nil {
		content = md.Render(msg.Text, theme.GlamourStyle(), maxContent)
	} else {
		content = wordWrap(content, maxContent)
	}

	label := theme.DialogMeta.Render(AssistantLabel)
	bubble := theme.AssistantBubble.Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}
