// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/jeranaias/abel-tui/internal/model"
	"github.com/jeranaias/abel-tui/internal/ui/components"
	"github.com/jeranaias/abel-tui/internal/util"
)

// =============================================================================
// HISTORY TABLE
// =============================================================================

// FormatHistory renders rows as a numbered table that fits in width
// columns. Row numbers start at 1 and are what /open and /delete take.
func FormatHistory(rows []model.HistorySummary, width int) string {
	if len(rows) == 0 {
		return components.HistoryEmptyText + "\n"
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	numWidth := runewidth.StringWidth(fmt.Sprint(len(rows)))
	if numWidth < 1 {
		numWidth = 1
	}
	whenWidth := runewidth.StringWidth("WHEN")
	for _, row := range rows {
		if w := runewidth.StringWidth(row.CreatedAt); w > whenWidth {
			whenWidth = w
		}
	}
	previewWidth := width - numWidth - whenWidth - 4
	if previewWidth < 10 {
		previewWidth = 10
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(util.PadRight("#", numWidth) + "  " + util.PadRight("WHEN", whenWidth) + "  PREVIEW"))
	b.WriteString("\n")
	for i, row := range rows {
		num := util.PadRight(fmt.Sprint(i+1), numWidth)
		when := util.PadRight(row.CreatedAt, whenWidth)
		preview := util.TruncateWidth(util.SingleLine(row.Preview()), previewWidth)
		b.WriteString(CommandStyle.Render(num) + "  " + InfoStyle.Render(when) + "  " + preview + "\n")
	}
	return b.String()
}

// RowID resolves a 1-based row number typed by the user.
func RowID(rows []model.HistorySummary, arg string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return "", errors.Errorf("%q is not a conversation number", arg)
	}
	if n < 1 || n > len(rows) {
		return "", errors.Errorf("no conversation %d (have %d)", n, len(rows))
	}
	return rows[n-1].ID, nil
}
