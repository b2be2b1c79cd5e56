// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/abel-tui/internal/cloud"
	"github.com/jeranaias/abel-tui/internal/model"
)

// FallbackReply is appended in place of a reply when the completion fails.
const FallbackReply = "Sorry, something went wrong!"

var (
	// ErrEmptyMessage indicates a send with neither text nor attachment.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrConversationNotFound indicates an id with no matching conversation.
	ErrConversationNotFound = errors.New("conversation not found")
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Store persists the conversation list.
type Store interface {
	Load() []model.Conversation
	Save(convs []model.Conversation) error
	ClearAll() error
}

// Completer produces an assistant reply for a list of turns.
type Completer interface {
	Complete(ctx context.Context, turns []cloud.ChatMessage) (string, error)
}

// Attachment is a file picked by the user. Only its name is used.
type Attachment struct {
	Name string
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is a point-in-time copy of the manager state. Version increases
// with every mutation, so a consumer can discard snapshots older than the
// one it already has.
type Snapshot struct {
	Conversations []model.Conversation
	ActiveID      string
	Loading       bool
	Version       uint64
}

// Active returns the active conversation, if the pointer resolves.
func (s Snapshot) Active() (model.Conversation, bool) {
	if s.ActiveID == "" {
		return model.Conversation{}, false
	}
	if i := model.FindConversation(s.Conversations, s.ActiveID); i >= 0 {
		return s.Conversations[i], true
	}
	return model.Conversation{}, false
}

// ActiveMessages returns the active conversation's messages, or an empty
// slice when there is no active conversation.
func (s Snapshot) ActiveMessages() []model.Message {
	if conv, ok := s.Active(); ok {
		return conv.Messages
	}
	return []model.Message{}
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager tracks conversations and mediates between storage, the completion
// client and the UI.
type Manager struct {
	mu sync.Mutex

	// Collaborators
	store     Store
	completer Completer
	logger    zerolog.Logger
	now       func() time.Time

	// State
	conversations []model.Conversation
	activeID      string
	inflight      int
	version       uint64

	// Observers
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock sets the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager loads the stored conversations. When none load, a fresh empty
// conversation is created and persisted. The last conversation is active.
func NewManager(store Store, completer Completer, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		completer:   completer,
		logger:      zerolog.Nop(),
		now:         time.Now,
		subscribers: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With().Str("component", "session").Logger()

	m.mu.Lock()
	m.reloadLocked()
	m.mu.Unlock()
	return m
}

// reloadLocked replaces state with what the store holds.
func (m *Manager) reloadLocked() {
	m.conversations = m.store.Load()
	if len(m.conversations) == 0 {
		conv := model.NewConversation(m.now(), model.NumberedTitle(1))
		m.conversations = append(m.conversations, conv)
		m.logger.Info().Str("id", conv.ID).Msg("created empty conversation")
		m.persistLocked()
	}
	m.activeID = m.conversations[len(m.conversations)-1].ID
	m.version++
}

// persistLocked writes the whole list. A failure is logged and otherwise
// ignored so the UI keeps working.
func (m *Manager) persistLocked() {
	if err := m.store.Save(m.conversations); err != nil {
		m.logger.Error().Err(err).Msg("failed to persist conversations")
	}
}

// snapshotLocked copies the current state.
func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		Conversations: model.CloneAll(m.conversations),
		ActiveID:      m.activeID,
		Loading:       m.inflight > 0,
		Version:       m.version,
	}
}

// commitLocked bumps the version, persists, and returns what to notify.
func (m *Manager) commitLocked() (Snapshot, []func(Snapshot)) {
	m.version++
	m.persistLocked()
	return m.snapshotLocked(), m.subscribersLocked()
}

func (m *Manager) subscribersLocked() []func(Snapshot) {
	fns := make([]func(Snapshot), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	return fns
}

// notify calls subscribers outside the lock.
func notify(snap Snapshot, fns []func(Snapshot)) {
	for _, fn := range fns {
		fn(snap)
	}
}

// =============================================================================
// OBSERVERS
// =============================================================================

// Subscribe registers fn to receive a snapshot after every mutation. The
// returned function unregisters it.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subscribers, id)
		})
	}
}

// =============================================================================
// QUERIES
// =============================================================================

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Active returns the active conversation.
func (m *Manager) Active() (model.Conversation, bool) {
	return m.Snapshot().Active()
}

// ActiveMessages returns the active conversation's messages.
func (m *Manager) ActiveMessages() []model.Message {
	return m.Snapshot().ActiveMessages()
}

// Loading reports whether a completion is outstanding.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inflight > 0
}

// History returns the history dialog rows relative to now.
func (m *Manager) History(now time.Time) []model.HistorySummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.BuildHistory(m.conversations, now)
}

// =============================================================================
// MUTATIONS
// =============================================================================

// CreateConversation appends a new conversation and makes it active. With a
// seed the conversation starts with that user message and is titled after
// it; otherwise it is numbered after the current list length.
func (m *Manager) CreateConversation(seed string) model.Conversation {
	m.mu.Lock()
	conv := m.createLocked(seed, "")
	snap, fns := m.commitLocked()
	m.mu.Unlock()

	notify(snap, fns)
	return conv
}

func (m *Manager) createLocked(text, attachment string) model.Conversation {
	seed := text
	if seed == "" && attachment != "" {
		seed = model.UploadMarker(attachment)
	}

	title := model.NumberedTitle(len(m.conversations) + 1)
	if seed != "" {
		title = model.SeededTitle(seed)
	}

	conv := model.NewConversation(m.now(), title)
	conv.AppendUserInput(text, attachment)
	m.conversations = append(m.conversations, conv)
	m.activeID = conv.ID

	m.logger.Info().Str("id", conv.ID).Bool("seeded", seed != "").Msg("conversation created")
	return conv.Clone()
}

// SendMessage records the user's input in conversation id and asks the
// completer for a reply.
//
// An empty id means no conversation is active: a new conversation seeded
// with the input is created and no completion is requested. A completion
// failure is logged and answered with FallbackReply; it is not returned.
// The reply goes to whichever conversation has id when the call returns and
// is dropped if that conversation was deleted in the meantime.
func (m *Manager) SendMessage(ctx context.Context, id, text string, file *Attachment) error {
	if strings.TrimSpace(text) == "" {
		text = ""
	}
	var attachment string
	if file != nil {
		attachment = file.Name
	}
	if text == "" && attachment == "" {
		return ErrEmptyMessage
	}

	m.mu.Lock()
	if id == "" {
		m.createLocked(text, attachment)
		snap, fns := m.commitLocked()
		m.mu.Unlock()
		notify(snap, fns)
		return nil
	}

	idx := model.FindConversation(m.conversations, id)
	if idx < 0 {
		m.mu.Unlock()
		return errors.Wrapf(ErrConversationNotFound, "id %s", id)
	}

	latest := text
	if latest == "" {
		latest = attachment
	}
	conv := &m.conversations[idx]
	turns := conv.Turns(model.SystemPreamble, latest)
	conv.AppendUserInput(text, attachment)
	m.inflight++
	snap, fns := m.commitLocked()
	m.mu.Unlock()
	notify(snap, fns)

	start := m.now()
	reply, err := m.completer.Complete(ctx, turns)
	if err != nil {
		m.logger.Error().Err(err).Str("id", id).Msg("completion failed")
		reply = FallbackReply
	} else {
		m.logger.Debug().Str("id", id).Dur("duration", m.now().Sub(start)).Msg("completion received")
	}

	m.mu.Lock()
	if idx := model.FindConversation(m.conversations, id); idx >= 0 {
		m.conversations[idx].AddMessage(model.NewAssistantMessage(reply))
	} else {
		m.logger.Warn().Str("id", id).Msg("dropping reply for deleted conversation")
	}
	m.inflight--
	snap, fns = m.commitLocked()
	m.mu.Unlock()
	notify(snap, fns)
	return nil
}

// SelectConversation makes id active. The id is not validated; an unknown
// id simply shows no messages.
func (m *Manager) SelectConversation(id string) {
	m.mu.Lock()
	m.activeID = id
	m.version++
	snap, fns := m.snapshotLocked(), m.subscribersLocked()
	m.mu.Unlock()

	notify(snap, fns)
}

// DeleteConversation removes id and reports whether it existed. Deleting
// the active conversation clears the active pointer. Deleting the last
// conversation leaves one fresh empty conversation, not made active.
func (m *Manager) DeleteConversation(id string) bool {
	m.mu.Lock()
	idx := model.FindConversation(m.conversations, id)
	if idx < 0 {
		m.mu.Unlock()
		return false
	}

	m.conversations = append(m.conversations[:idx], m.conversations[idx+1:]...)
	if m.activeID == id {
		m.activeID = ""
	}
	if len(m.conversations) == 0 {
		conv := model.NewConversation(m.now(), model.NumberedTitle(1))
		m.conversations = append(m.conversations, conv)
		m.logger.Info().Str("id", conv.ID).Msg("created empty conversation")
	}
	m.logger.Info().Str("id", id).Msg("conversation deleted")
	snap, fns := m.commitLocked()
	m.mu.Unlock()

	notify(snap, fns)
	return true
}

// ClearAll wipes storage and reloads, leaving one fresh empty conversation.
func (m *Manager) ClearAll() error {
	m.mu.Lock()
	err := m.store.ClearAll()
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to clear storage")
	}
	m.reloadLocked()
	snap, fns := m.snapshotLocked(), m.subscribersLocked()
	m.mu.Unlock()

	notify(snap, fns)
	return err
}
