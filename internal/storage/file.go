// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/jeranaias/abel-tui/internal/util"
)

// FileKV stores each key as <dir>/<key>.json.
type FileKV struct {
	dir string
	mu  sync.RWMutex
}

// NewFileKV creates a FileKV, creating dir if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, errors.New("file storage requires a directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create storage directory %s", dir)
	}
	return &FileKV{dir: dir}, nil
}

// Dir returns the storage directory.
func (f *FileKV) Dir() string {
	return f.dir
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements KV.
func (f *FileKV) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "read %s", key)
	}
	return string(data), true, nil
}

// Set implements KV.
func (f *FileKV) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	return util.AtomicWriteFile(f.path(key), []byte(value), 0o600)
}

// Remove implements KV.
func (f *FileKV) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "remove %s", key)
	}
	return nil
}

// Close implements KV.
func (f *FileKV) Close() error {
	return nil
}
