// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI pieces of the abel chat screen.

Each component owns its own Bubble Tea widget state and renders with a
*styles.Theme. None of them touch conversation state; the chat model feeds
them snapshots and turns their results into manager calls.

# Components

  - MessageList (viewport.go) - scrollable messages with a typing indicator
  - InputArea (input.go) - multi-line message box with an attachment chip
  - NavBar (navbar.go) - brand, conversation title and shortcuts
  - HistoryDialog (history.go) - past conversations with delete actions
  - ConfirmDialog (confirm.go) - yes/no guard for destructive actions
  - FilePrompt (fileprompt.go) - path entry for attachments

# Rendering

RenderMessage (message.go) draws a single message. Assistant replies go
through MarkdownRenderer, which wraps glamour and caches output per text.
*/
package components
