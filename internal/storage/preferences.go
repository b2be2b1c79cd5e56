// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Preferences stores UI preferences next to the conversations.
type Preferences struct {
	kv     KV
	logger zerolog.Logger
}

// NewPreferences creates a Preferences over kv.
func NewPreferences(kv KV, opts ...StoreOption) *Preferences {
	o := applyOptions(opts)
	return &Preferences{
		kv:     kv,
		logger: o.logger.With().Str("component", "preferences").Logger(),
	}
}

// DarkMode returns the stored dark-mode flag and whether one was stored.
// Unreadable values count as unset.
func (p *Preferences) DarkMode() (value, set bool) {
	raw, ok, err := p.kv.Get(KeyDarkMode)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to read dark mode")
		return false, false
	}
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.logger.Warn().Str("value", raw).Msg("ignoring invalid dark mode value")
		return false, false
	}
	return v, true
}

// SetDarkMode stores the dark-mode flag as "true" or "false".
func (p *Preferences) SetDarkMode(on bool) error {
	if err := p.kv.Set(KeyDarkMode, strconv.FormatBool(on)); err != nil {
		return errors.Wrapf(ErrWrite, "%v", err)
	}
	return nil
}
