// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/abel-tui/internal/model"
	"github.com/jeranaias/abel-tui/internal/ui/styles"
	"github.com/jeranaias/abel-tui/internal/util"
)

// =============================================================================
// HISTORY DIALOG COMPONENT
// =============================================================================

// History dialog text.
const (
	HistoryTitle     = "Conversation History"
	HistoryEmptyText = "No conversations yet."
)

// HistoryActionKind says what the user chose in the history dialog.
type HistoryActionKind int

const (
	HistoryNone HistoryActionKind = iota
	HistorySelect
	HistoryDelete
	HistoryDeleteAll
	HistoryNewChat
	HistoryClose
)

// HistoryAction is the result of a key press in the dialog.
type HistoryAction struct {
	Kind HistoryActionKind
	// ID is set for HistorySelect and HistoryDelete.
	ID string
}

// HistoryDialog lists past conversations.
type HistoryDialog struct {
	rows   []model.HistorySummary
	cursor int
	offset int
	width  int
	height int
	theme  *styles.Theme
}

// NewHistoryDialog creates an empty dialog.
func NewHistoryDialog(theme *styles.Theme) *HistoryDialog {
	return &HistoryDialog{width: 80, height: 20, theme: theme}
}

// SetRows replaces the listed rows, keeping the cursor in range.
func (h *HistoryDialog) SetRows(rows []model.HistorySummary) {
	h.rows = rows
	if h.cursor >= len(rows) {
		h.cursor = maxInt(0, len(rows)-1)
	}
	h.clampOffset()
}

// Rows returns the listed rows.
func (h *HistoryDialog) Rows() []model.HistorySummary {
	return h.rows
}

// Cursor returns the selected row index.
func (h *HistoryDialog) Cursor() int {
	return h.cursor
}

// SetSize sets the space available to the dialog.
func (h *HistoryDialog) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.clampOffset()
}

// visibleRows is how many two-line rows fit in the dialog.
func (h *HistoryDialog) visibleRows() int {
	// Title, help and frame take about 8 lines.
	return maxInt(1, (h.height-8)/2)
}

func (h *HistoryDialog) clampOffset() {
	visible := h.visibleRows()
	if h.cursor < h.offset {
		h.offset = h.cursor
	}
	if h.cursor >= h.offset+visible {
		h.offset = h.cursor - visible + 1
	}
	if h.offset < 0 {
		h.offset = 0
	}
}

func (h *HistoryDialog) selectedID() string {
	if h.cursor < 0 || h.cursor >= len(h.rows) {
		return ""
	}
	return h.rows[h.cursor].ID
}

// HandleKey applies a key press and returns the chosen action.
func (h *HistoryDialog) HandleKey(msg tea.KeyMsg) HistoryAction {
	switch msg.String() {
	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
			h.clampOffset()
		}
	case "down", "j":
		if h.cursor < len(h.rows)-1 {
			h.cursor++
			h.clampOffset()
		}
	case "enter":
		if id := h.selectedID(); id != "" {
			return HistoryAction{Kind: HistorySelect, ID: id}
		}
	case "d", "delete":
		if id := h.selectedID(); id != "" {
			return HistoryAction{Kind: HistoryDelete, ID: id}
		}
	case "D":
		return HistoryAction{Kind: HistoryDeleteAll}
	case "n":
		return HistoryAction{Kind: HistoryNewChat}
	case "esc", "q", "ctrl+h":
		return HistoryAction{Kind: HistoryClose}
	}
	return HistoryAction{Kind: HistoryNone}
}

// View renders the dialog centered in its area.
func (h *HistoryDialog) View() string {
	boxWidth := minInt(h.width-4, 90)
	// Padding and border take 6 columns.
	inner := maxInt(20, boxWidth-6)

	var b strings.Builder
	b.WriteString(h.theme.DialogTitle.Render(HistoryTitle))
	b.WriteString("\n")

	if len(h.rows) == 0 {
		b.WriteString(h.theme.EmptyState.Render(HistoryEmptyText))
	} else {
		end := minInt(len(h.rows), h.offset+h.visibleRows())
		for i := h.offset; i < end; i++ {
			b.WriteString(h.renderRow(h.rows[i], i == h.cursor, inner))
			b.WriteString("\n")
		}
	}

	help := "enter open  d delete  D delete all  n new chat  esc close"
	b.WriteString(h.theme.DialogHelp.Render(util.TruncateWidth(help, inner)))

	box := h.theme.DialogBox.Width(boxWidth).Render(b.String())
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

func (h *HistoryDialog) renderRow(row model.HistorySummary, selected bool, width int) string {
	// Row style padding takes 2 columns.
	text := util.TruncateWidth(util.SingleLine(row.Preview()), width-2)
	meta := util.TruncateWidth(row.CreatedAt, width-2)

	style := h.theme.DialogItem
	if selected {
		style = h.theme.DialogItemSelected
	}
	return style.Width(width).Render(text) + "\n" + h.theme.DialogMeta.Render("  "+meta)
}
