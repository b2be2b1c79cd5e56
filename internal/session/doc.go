// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the in-memory conversation state.
//
// The Manager holds the conversation list, the active conversation pointer
// and the loading flag. It persists the whole list after every mutation and
// then notifies subscribers with a Snapshot. Presentation code never mutates
// conversations directly.
//
// # Key Types
//
//   - Manager: conversation state guarded by a mutex
//   - Snapshot: deep copy of the state handed to subscribers
//   - Store: persistence the Manager writes through to
//   - Completer: the remote completion call
//
// # Usage
//
//	mgr := session.NewManager(store, client, session.WithLogger(logger))
//	unsubscribe := mgr.Subscribe(func(s session.Snapshot) { render(s) })
//	defer unsubscribe()
//
//	err := mgr.SendMessage(ctx, mgr.Snapshot().ActiveID, "hello", nil)
//
// # Concurrency
//
// All methods are safe for concurrent use. SendMessage blocks for the
// completion call, which runs without holding the lock, so callers usually
// run it off the UI goroutine.
package session
