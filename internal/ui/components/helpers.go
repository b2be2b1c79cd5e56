// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// wordWrap wraps text to width using Lip Gloss's ANSI-aware wrapping.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// trimTrailingNewlines removes the blank lines glamour appends.
func trimTrailingNewlines(s string) string {
	return strings.TrimRight(s, "\n")
}
