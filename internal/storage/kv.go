// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"strings"

	"github.com/pkg/errors"
)

// Storage keys.
const (
	KeyConversations = "conversations"
	KeyDarkMode      = "darkMode"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrParse indicates stored data could not be decoded.
	ErrParse = errors.New("stored data is not valid")

	// ErrWrite indicates data could not be persisted.
	ErrWrite = errors.New("failed to write storage")

	// ErrInvalidKey indicates a key that cannot be stored.
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrUnknownBackend indicates an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// =============================================================================
// KV INTERFACE
// =============================================================================

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Close releases resources held by the store.
	Close() error
}

// Open creates the KV for backend rooted at dir. dir is ignored for the
// memory backend.
func Open(backend, dir string) (KV, error) {
	switch backend {
	case BackendFile:
		return NewFileKV(dir)
	case BackendSQLite:
		return NewSQLiteKV(SQLitePath(dir))
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", backend)
	}
}

// validateKey rejects keys that could escape a directory or are empty.
func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return errors.Wrapf(ErrInvalidKey, "%q", key)
	}
	return nil
}
