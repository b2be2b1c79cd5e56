// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the abel TUI.

All colors use Lip Gloss AdaptiveColor, so a single palette serves light and
dark terminals. The dark-mode toggle flips Lip Gloss's background detection
instead of swapping palettes.

# Color System (colors.go)

  - Purple - assistant messages and selections
  - Cyan - brand and key hints
  - Rose - destructive actions and errors
  - Surface and Text tokens - layered backgrounds and text hierarchy

# Theme System (theme.go)

	theme := styles.NewTheme()
	theme.SetDark(true)
	fmt.Println(theme.UserBubble.Render("hello"))

GlamourStyle returns the Markdown style name matching the current mode.
*/
package styles
