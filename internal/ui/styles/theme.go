// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Glamour style names for rendered Markdown.
const (
	GlamourDark  = "dark"
	GlamourLight = "light"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// NAV BAR STYLES
	// ==========================================================================

	NavBar      lipgloss.Style
	NavBrand    lipgloss.Style
	NavTitle    lipgloss.Style
	NavKey      lipgloss.Style
	NavKeyLabel lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	EmptyState      lipgloss.Style
	Typing          lipgloss.Style
	Spinner         lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	AttachmentChip lipgloss.Style
	InputHint      lipgloss.Style

	// ==========================================================================
	// DIALOG STYLES
	// ==========================================================================

	DialogBox          lipgloss.Style
	DialogTitle        lipgloss.Style
	DialogItem         lipgloss.Style
	DialogItemSelected lipgloss.Style
	DialogMeta         lipgloss.Style
	DialogDanger       lipgloss.Style
	DialogHelp         lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style
}

// NewTheme creates a theme following the terminal's detected background.
func NewTheme() *Theme {
	t := &Theme{
		ColorProfile: termenv.ColorProfile(),
		IsDark:       termenv.HasDarkBackground(),
	}
	lipgloss.SetHasDarkBackground(t.IsDark)
	t.initStyles()
	return t
}

// SetDark switches every adaptive color to its dark or light variant.
func (t *Theme) SetDark(dark bool) {
	t.IsDark = dark
	lipgloss.SetHasDarkBackground(dark)
}

// Toggle flips dark mode and returns the new value.
func (t *Theme) Toggle() bool {
	t.SetDark(!t.IsDark)
	return t.IsDark
}

// GlamourStyle returns the Markdown style name for the current mode.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return GlamourDark
	}
	return GlamourLight
}

// ModeLabel returns a short label for the nav bar.
func (t *Theme) ModeLabel() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Nav bar
	t.NavBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.NavBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.NavTitle = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.NavKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.NavKeyLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Typing = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.AttachmentChip = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Padding(0, 1)

	t.InputHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Dialogs
	t.DialogBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.DialogTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		MarginBottom(1)

	t.DialogItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.DialogItemSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.DialogMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.DialogDanger = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.DialogHelp = lipgloss.NewStyle().
		Foreground(TextMuted).
		MarginTop(1)

	// Status line
	t.StatusInfo = lipgloss.NewStyle().
		Foreground(Emerald)

	t.StatusError = lipgloss.NewStyle().
		Foreground(Rose)
}
