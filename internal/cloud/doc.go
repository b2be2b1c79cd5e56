// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud provides the chat-completion client used for every user turn.
//
// One request is made per turn: no streaming and no retries. Any failure
// (transport, non-2xx status, undecodable body) is reported as a
// *RequestFailedError that matches ErrRequestFailed.
//
// # Key Types
//
//   - Client: HTTP client for an OpenAI-compatible completions endpoint
//   - ChatMessage: one role/content turn in the request
//   - RequestFailedError: the single failure class of a completion call
//
// # Usage
//
//	client := cloud.NewClient(apiKey, cloud.WithLogger(logger))
//	reply, err := client.Complete(ctx, []cloud.ChatMessage{
//	    cloud.NewSystemMessage("You are a helpful assistant."),
//	    cloud.NewUserMessage("Hello"),
//	})
//
// # Security
//
// The API key is never logged. Diagnostics show only a SHA-256 fingerprint.
package cloud
