// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/abel-tui/internal/model"
)

// backends returns a fresh KV of every kind for table tests.
func backends(t *testing.T) map[string]KV {
	t.Helper()

	fileKV, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	sqliteKV, err := NewSQLiteKV(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{
		BackendFile:   fileKV,
		BackendSQLite: sqliteKV,
		BackendMemory: NewMemoryKV(),
	}
}

func sampleConversations() []model.Conversation {
	first := model.Conversation{
		ID:        "1700000000000",
		Title:     "Conversation: hi",
		Messages:  []model.Message{},
		CreatedAt: 1700000000000,
	}
	first.AppendUserInput("hi", "")
	first.AddMessage(model.NewAssistantMessage("Hello! **How** can I help?"))

	second := model.Conversation{
		ID:        "1700000000500",
		Title:     "Conversation: 2",
		Messages:  []model.Message{},
		CreatedAt: 1700000000500,
	}
	return []model.Conversation{first, second}
}

// =============================================================================
// KV TESTS
// =============================================================================

func TestKV_GetSetRemove(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("k", "v1"))
			require.NoError(t, kv.Set("k", "v2"))

			got, ok, err := kv.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", got)

			require.NoError(t, kv.Remove("k"))
			require.NoError(t, kv.Remove("k"), "removing twice is fine")

			_, ok, err = kv.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileKV_RejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", `a\b`} {
		err := kv.Set(key, "x")
		assert.True(t, errors.Is(err, ErrInvalidKey), "key %q", key)
	}
}

func TestFileKV_Layout(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set(KeyDarkMode, "true"))

	data, err := os.ReadFile(filepath.Join(dir, "darkMode.json"))
	require.NoError(t, err)
	assert.Equal(t, "true", string(data))
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abel.db")

	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(KeyConversations, "[]"))
	require.NoError(t, kv.Close())

	kv, err = NewSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	got, ok, err := kv.Get(KeyConversations)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(BackendFile, dir)
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	kv, err = Open(BackendSQLite, dir)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, kv)
	require.NoError(t, kv.Close())
	assert.FileExists(t, SQLitePath(dir))

	kv, err = Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	_, err = Open("redis", dir)
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

// =============================================================================
// CONVERSATION STORE TESTS
// =============================================================================

func TestConversationStore_RoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewConversationStore(kv)
			want := sampleConversations()

			require.NoError(t, store.Save(want))
			got := store.Load()

			assert.Equal(t, want, got)

			wantJSON, err := json.Marshal(want)
			require.NoError(t, err)
			gotJSON, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, string(wantJSON), string(gotJSON))
		})
	}
}

func TestConversationStore_LoadEmpty(t *testing.T) {
	store := NewConversationStore(NewMemoryKV())

	got := store.Load()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestConversationStore_LoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"object", `{"id":"1"}`},
		{"string", `"conversations"`},
		{"null", "null"},
		{"wrong element type", `[1,2,3]`},
		{"null element", `[null]`},
		{"empty element", `[{}]`},
		{"element without id", `[{"id":"1","title":"a"},{"title":"b"}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(KeyConversations, tc.raw))
			store := NewConversationStore(kv)

			_, err := store.load()
			assert.True(t, errors.Is(err, ErrParse))

			got := store.Load()
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestConversationStore_LoadFillsNilMessages(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyConversations, `[{"id":"1","title":"t","createdAt":1}]`))

	got := NewConversationStore(kv).Load()
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Messages)
}

func TestConversationStore_SaveNilWritesEmptyArray(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, NewConversationStore(kv).Save(nil))

	raw, ok, err := kv.Get(KeyConversations)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestConversationStore_SaveFailure(t *testing.T) {
	var logs bytes.Buffer
	store := NewConversationStore(failingKV{}, WithLogger(zerolog.New(&logs)))

	err := store.Save(sampleConversations())
	assert.True(t, errors.Is(err, ErrWrite))

	err = store.ClearAll()
	assert.True(t, errors.Is(err, ErrWrite))

	// Write failures are returned, and logging them is left to the caller.
	assert.NotContains(t, logs.String(), `"level":"error"`)
}

func TestConversationStore_ReadFailureYieldsEmpty(t *testing.T) {
	got := NewConversationStore(failingKV{}).Load()
	assert.Empty(t, got)
}

func TestConversationStore_ClearAll(t *testing.T) {
	kv := NewMemoryKV()
	store := NewConversationStore(kv)
	require.NoError(t, store.Save(sampleConversations()))
	require.NoError(t, kv.Set(KeyDarkMode, "true"))

	require.NoError(t, store.ClearAll())

	_, ok, err := kv.Get(KeyConversations)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.Load())

	_, ok, _ = kv.Get(KeyDarkMode)
	assert.True(t, ok, "ClearAll leaves preferences alone")
}

// =============================================================================
// PREFERENCES TESTS
// =============================================================================

func TestPreferences_DarkMode(t *testing.T) {
	kv := NewMemoryKV()
	prefs := NewPreferences(kv)

	_, set := prefs.DarkMode()
	assert.False(t, set)

	require.NoError(t, prefs.SetDarkMode(true))
	on, set := prefs.DarkMode()
	assert.True(t, set)
	assert.True(t, on)

	raw, _, _ := kv.Get(KeyDarkMode)
	assert.Equal(t, "true", raw)

	require.NoError(t, prefs.SetDarkMode(false))
	on, set = prefs.DarkMode()
	assert.True(t, set)
	assert.False(t, on)
}

func TestPreferences_InvalidValueIsUnset(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyDarkMode, "maybe"))

	_, set := NewPreferences(kv).DarkMode()
	assert.False(t, set)
}

// failingKV fails every operation.
type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingKV) Set(string, string) error { return errors.New("disk on fire") }
func (failingKV) Remove(string) error { return errors.New("disk on fire") }
func (failingKV) Close() error { return nil }
