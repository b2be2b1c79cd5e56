// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/jeranaias/abel-tui/internal/cloud"

// =============================================================================
// ROLE
// =============================================================================

// Role identifies who authored a turn sent to the completion endpoint.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the wire name of the role.
func (r Role) String() string {
	return string(r)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// UploadPrefix is prepended to an attachment name to form the upload marker.
const UploadPrefix = "Uploaded: "

// Message is a single chat message. Messages are never edited after they
// are appended to a conversation.
type Message struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

// NewUserMessage creates a message authored by the user.
func NewUserMessage(text string) Message {
	return Message{Text: text, IsUser: true}
}

// NewAssistantMessage creates a message authored by the assistant.
func NewAssistantMessage(text string) Message {
	return Message{Text: text}
}

// UploadMarker returns the user message text recorded for an attachment.
func UploadMarker(name string) string {
	return UploadPrefix + name
}

// Role returns the completion role for the message.
func (m Message) Role() Role {
	if m.IsUser {
		return RoleUser
	}
	return RoleAssistant
}

// ToChatMessage converts the message to the completion wire format.
func (m Message) ToChatMessage() cloud.ChatMessage {
	return cloud.ChatMessage{Role: m.Role().String(), Content: m.Text}
}
