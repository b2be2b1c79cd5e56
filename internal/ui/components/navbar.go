// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/abel-tui/internal/ui/styles"
	"github.com/jeranaias/abel-tui/internal/util"
)

// =============================================================================
// NAV BAR COMPONENT
// =============================================================================

// Brand is the application name shown in the nav bar.
const Brand = "abel"

// NavBar is the top bar: brand, conversation title and shortcuts.
type NavBar struct {
	Title string
	Width int
	theme *styles.Theme
}

// NewNavBar creates a NavBar.
func NewNavBar(theme *styles.Theme) *NavBar {
	return &NavBar{Width: 80, theme: theme}
}

// View renders the bar on one line.
func (n *NavBar) View() string {
	keys := []struct{ key, label string }{
		{"ctrl+t", n.theme.ModeLabel()},
		{"ctrl+h", "history"},
		{"ctrl+n", "new"},
	}
	hints := make([]string, 0, len(keys))
	for _, k := range keys {
		hints = append(hints, n.theme.NavKey.Render(k.key)+" "+n.theme.NavKeyLabel.Render(k.label))
	}
	right := strings.Join(hints, "  ")
	left := n.theme.NavBrand.Render(Brand)

	// Frame padding takes 2 columns.
	room := n.Width - 2 - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if room > 0 && n.Title != "" {
		left += "  " + n.theme.NavTitle.Render(util.TruncateWidth(util.SingleLine(n.Title), room))
	}

	gap := maxInt(1, n.Width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return n.theme.NavBar.Width(n.Width).Render(left + strings.Repeat(" ", gap) + right)
}
