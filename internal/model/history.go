// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jeranaias/abel-tui/internal/util"
)

// PreviewRunes is how much of the first user message the history dialog shows.
const PreviewRunes = 125

// HistorySummary is one row of the history dialog.
type HistorySummary struct {
	ID               string
	Title            string
	FirstUserMessage string
	// CreatedAt is a relative label such as "3 minutes ago".
	CreatedAt string
}

// Preview returns the first user message cut for display.
func (h HistorySummary) Preview() string {
	return util.CutRunes(h.FirstUserMessage, PreviewRunes)
}

// BuildHistory projects convs into history rows, in list order, skipping
// conversations with no user content.
func BuildHistory(convs []Conversation, now time.Time) []HistorySummary {
	rows := make([]HistorySummary, 0, len(convs))
	for _, c := range convs {
		if !c.HasFirstUserMessage() {
			continue
		}
		rows = append(rows, HistorySummary{
			ID:               c.ID,
			Title:            c.Title,
			FirstUserMessage: c.FirstUserMessage,
			CreatedAt:        RelativeTime(c.CreatedTime(), now),
		})
	}
	return rows
}

// RelativeTime formats t relative to now.
func RelativeTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
