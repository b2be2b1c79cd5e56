// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for abel.
//
// Everything is kept under string keys in a small key-value store, the way a
// browser keeps local storage. Two keys are used: KeyConversations holds the
// JSON array of all conversations and KeyDarkMode holds "true" or "false".
//
// # Backends
//
//   - FileKV: one file per key, written atomically
//   - SQLiteKV: a single kv table in a SQLite database
//   - MemoryKV: an in-process map for tests and ephemeral sessions
//
// # Usage
//
//	kv, err := storage.Open(storage.BackendFile, dataDir)
//	store := storage.NewConversationStore(kv, storage.WithLogger(logger))
//	convs := store.Load()
//
// Load never fails: unreadable data is logged and treated as empty. Save
// returns ErrWrite so callers can log it and carry on.
package storage
