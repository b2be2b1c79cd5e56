// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/abel-tui/internal/session"

// StateChangedMsg carries a manager snapshot into the event loop.
type StateChangedMsg struct {
	Snapshot session.Snapshot
}

// SendDoneMsg reports that a SendMessage call returned.
type SendDoneMsg struct {
	Err error
}

// CopyDoneMsg reports the result of a clipboard copy.
type CopyDoneMsg struct {
	Err error
}
