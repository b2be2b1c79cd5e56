// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/abel-tui/internal/cloud"
	"github.com/jeranaias/abel-tui/internal/config"
	"github.com/jeranaias/abel-tui/internal/logging"
	"github.com/jeranaias/abel-tui/internal/session"
	"github.com/jeranaias/abel-tui/internal/storage"
)

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// appOptions are the persistent flags shared by every command.
type appOptions struct {
	configPath string
	plain      bool
	ephemeral  bool
	logLevel   string
}

// app holds the wired collaborators for one run.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	kv     storage.KV
	store  *storage.ConversationStore
	prefs  *storage.Preferences
	client *cloud.Client

	closers []func() error
}

// openApp loads configuration and opens logging and storage. console, when
// non-nil, also receives warnings.
func openApp(opts appOptions, console io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}

	logger, closeLog, err := logging.Open(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: console,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open log")
	}
	a := &app{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		a.Close()
		return nil, errors.Wrapf(err, "open %s storage", cfg.Storage.Backend)
	}
	a.kv = kv
	a.closers = append(a.closers, kv.Close)

	a.store = storage.NewConversationStore(kv, storage.WithLogger(logger))
	a.prefs = storage.NewPreferences(kv, storage.WithLogger(logger))

	a.client = cloud.NewClient(cfg.APIKey,
		cloud.WithEndpoint(cfg.API.Endpoint),
		cloud.WithLogger(logger.With().Str("component", "cloud").Logger()),
	)

	logger.Info().
		Str("backend", cfg.Storage.Backend).
		Str("endpoint", a.client.Endpoint()).
		Str("key", a.client.KeyFingerprint()).
		Msg("abel starting")
	if !a.client.IsConfigured() {
		logger.Warn().Msgf("no API key set; export %s (or %s) to get replies", config.EnvAPIKey, config.EnvAPIKeyFallback)
	}
	return a, nil
}

// manager builds the conversation manager over the app's store and client.
func (a *app) manager() *session.Manager {
	return session.NewManager(a.store, a.client,
		session.WithLogger(a.logger),
	)
}

// Close releases storage and the log file in reverse order of opening.
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// stderrIfNotTUI returns the console sink for logging: the TUI owns the
// terminal, so it gets none.
func stderrIfNotTUI(tui bool) io.Writer {
	if tui {
		return nil
	}
	return os.Stderr
}
