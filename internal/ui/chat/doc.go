// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen chat program for abel.

# Key Components

## Model (model.go)

The Model is the Bubble Tea model. It renders the last session.Snapshot it
has seen and turns key presses into session.Manager calls. It never edits
conversations itself.

## Update Loop (update.go)

Key handling per mode (chat, history, confirm, attach), snapshot
application and command results.

## View Rendering (view.go)

Nav bar, message list, status line and input box, or a centered dialog.

## Program (program.go)

Run wires the manager's observer to the program: every snapshot is sent
into the event loop with Program.Send from a separate goroutine, so a
mutation made inside Update never blocks on the program's message channel.

# Keys

	enter       send
	alt+enter   newline
	ctrl+o      attach a file
	ctrl+x      remove attachment
	ctrl+t      toggle dark mode
	ctrl+h      history
	ctrl+n      new conversation
	ctrl+y      copy last reply
	pgup/pgdn   scroll
	ctrl+c      quit
*/
package chat
