// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/abel-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	// Prompt style
	PromptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// Brand line printed on start
	WelcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	// Assistant label
	AssistantStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	// User label
	UserStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	CommandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Bold(true)
)
