// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// The JSON shape of these types is the on-disk format of the stored
// conversation list, so field tags must not change.
//
// # Key Types
//
//   - Conversation: a chat session with its ordered messages and metadata
//   - Message: one turn of text, from the user or the assistant
//   - HistorySummary: derived row for the history dialog, never stored
//
// # Usage
//
//	conv := model.NewConversation(time.Now(), "")
//	conv.AppendUserInput("hello", "")
//	turns := conv.Turns(model.SystemPreamble, "hello")
package model
