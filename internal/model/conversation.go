// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/abel-tui/internal/cloud"
)

// SystemPreamble is the system turn sent ahead of every conversation.
const SystemPreamble = "You are a helpful assistant."

// TitlePrefix starts every conversation title.
const TitlePrefix = "Conversation: "

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a chat session. CreatedAt is Unix milliseconds.
type Conversation struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Messages         []Message `json:"messages"`
	FirstUserMessage string    `json:"firstUserMessage,omitempty"`
	CreatedAt        int64     `json:"createdAt"`
}

// NewConversation creates an empty conversation stamped with now.
// The id is the decimal Unix millisecond time, so two conversations
// created in the same millisecond share an id.
func NewConversation(now time.Time, title string) Conversation {
	ms := now.UnixMilli()
	return Conversation{
		ID:        strconv.FormatInt(ms, 10),
		Title:     title,
		Messages:  make([]Message, 0),
		CreatedAt: ms,
	}
}

// SeededTitle returns the title for a conversation started from seed text.
func SeededTitle(seed string) string {
	return TitlePrefix + seed
}

// NumberedTitle returns the title for the n-th conversation (1-based).
func NumberedTitle(n int) string {
	return fmt.Sprintf("%s%d", TitlePrefix, n)
}

// CreatedTime returns CreatedAt as a time.Time.
func (c Conversation) CreatedTime() time.Time {
	return time.UnixMilli(c.CreatedAt)
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends msg to the conversation.
func (c *Conversation) AddMessage(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// AppendUserInput appends the user's text and the upload marker for
// attachment, skipping whichever is empty. FirstUserMessage is set from the
// text (or the marker when there is no text) only if it is still unset.
func (c *Conversation) AppendUserInput(text, attachment string) {
	if text != "" {
		c.AddMessage(NewUserMessage(text))
	}
	if attachment != "" {
		c.AddMessage(NewUserMessage(UploadMarker(attachment)))
	}
	if c.FirstUserMessage != "" {
		return
	}
	if text != "" {
		c.FirstUserMessage = text
	} else if attachment != "" {
		c.FirstUserMessage = UploadMarker(attachment)
	}
}

// HasFirstUserMessage reports whether the conversation has non-blank user
// content recorded for the history dialog.
func (c Conversation) HasFirstUserMessage() bool {
	return strings.TrimSpace(c.FirstUserMessage) != ""
}

// IsEmpty returns true if there are no messages.
func (c Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clone returns a deep copy of the conversation.
func (c Conversation) Clone() Conversation {
	out := c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}

// CloneAll deep copies a conversation list.
func CloneAll(convs []Conversation) []Conversation {
	out := make([]Conversation, len(convs))
	for i, c := range convs {
		out[i] = c.Clone()
	}
	return out
}

// =============================================================================
// COMPLETION CONVERSION
// =============================================================================

// Turns builds the completion request for a send: the system preamble, the
// conversation's current messages, then latest as the newest user turn.
// Call it before appending the new input so latest is not sent twice.
func (c Conversation) Turns(preamble, latest string) []cloud.ChatMessage {
	turns := make([]cloud.ChatMessage, 0, len(c.Messages)+2)
	turns = append(turns, cloud.ChatMessage{Role: RoleSystem.String(), Content: preamble})
	for _, msg := range c.Messages {
		turns = append(turns, msg.ToChatMessage())
	}
	turns = append(turns, cloud.ChatMessage{Role: RoleUser.String(), Content: latest})
	return turns
}

// LastAssistantMessage returns the newest assistant message.
func (c Conversation) LastAssistantMessage() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if !c.Messages[i].IsUser {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}

// FindConversation returns the index of the conversation with id, or -1.
func FindConversation(convs []Conversation, id string) int {
	for i := range convs {
		if convs[i].ID == id {
			return i
		}
	}
	return -1
}
