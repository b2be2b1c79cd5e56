// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/abel-tui/internal/model"
)

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore reads and writes the full conversation list under
// KeyConversations.
type ConversationStore struct {
	kv     KV
	logger zerolog.Logger
}

// StoreOption configures a ConversationStore or Preferences.
type StoreOption func(*storeOptions)

type storeOptions struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used to report recovered failures.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

func applyOptions(opts []StoreOption) storeOptions {
	o := storeOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewConversationStore creates a store over kv.
func NewConversationStore(kv KV, opts ...StoreOption) *ConversationStore {
	o := applyOptions(opts)
	return &ConversationStore{
		kv:     kv,
		logger: o.logger.With().Str("component", "storage").Logger(),
	}
}

// Load returns the stored conversations. A missing value yields an empty
// list. Read or parse failures are logged and also yield an empty list.
func (s *ConversationStore) Load() []model.Conversation {
	convs, err := s.load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("discarding stored conversations")
		return []model.Conversation{}
	}
	return convs
}

func (s *ConversationStore) load() ([]model.Conversation, error) {
	raw, ok, err := s.kv.Get(KeyConversations)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Conversation{}, nil
	}

	var convs []model.Conversation
	if err := json.Unmarshal([]byte(raw), &convs); err != nil {
		return nil, errors.Wrapf(ErrParse, "%s: %v", KeyConversations, err)
	}
	// "null" decodes without error but is not a list.
	if convs == nil {
		return nil, errors.Wrapf(ErrParse, "%s: not an array", KeyConversations)
	}
	for i := range convs {
		// null and {} elements decode to a conversation with no id.
		if convs[i].ID == "" {
			return nil, errors.Wrapf(ErrParse, "%s: element %d has no id", KeyConversations, i)
		}
		if convs[i].Messages == nil {
			convs[i].Messages = []model.Message{}
		}
	}
	return convs, nil
}

// Save replaces the stored list with convs. Failures wrap ErrWrite.
func (s *ConversationStore) Save(convs []model.Conversation) error {
	if convs == nil {
		convs = []model.Conversation{}
	}
	data, err := json.Marshal(convs)
	if err != nil {
		return errors.Wrapf(ErrWrite, "encode conversations: %v", err)
	}
	if err := s.kv.Set(KeyConversations, string(data)); err != nil {
		return errors.Wrapf(ErrWrite, "%v", err)
	}
	s.logger.Debug().Int("conversations", len(convs)).Msg("saved conversations")
	return nil
}

// ClearAll removes the stored list.
func (s *ConversationStore) ClearAll() error {
	if err := s.kv.Remove(KeyConversations); err != nil {
		return errors.Wrapf(ErrWrite, "%v", err)
	}
	s.logger.Info().Msg("cleared all conversations")
	return nil
}
