// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zerolog loggers used across abel.
//
// The full-screen UI owns the terminal, so the primary sink is a log file.
// Line-mode commands may add a console writer on stderr for warnings.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Options controls where and how verbosely abel logs.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...).
	Level string
	// File is the log file path. Empty disables file logging.
	File string
	// Console additionally writes warnings and above to this writer.
	Console io.Writer
}

// Open returns a logger writing to the configured sinks and a close function
// for the log file.
func Open(opts Options) (zerolog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var writers []io.Writer
	closeFn := func() error { return nil }

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			return zerolog.Nop(), nil, errors.Wrap(err, "create log directory")
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), nil, errors.Wrapf(err, "open log file %s", opts.File)
		}
		writers = append(writers, f)
		closeFn = f.Close
	}

	if opts.Console != nil {
		console := zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.Kitchen}
		writers = append(writers, minLevelWriter{w: console, min: zerolog.WarnLevel})
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closeFn, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("app", "abel").
		Logger()
	return logger, closeFn, nil
}

// ParseLevel converts a level name, defaulting an empty name to info.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "parse log level %q", name)
	}
	return level, nil
}

// minLevelWriter drops events below min.
type minLevelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (m minLevelWriter) Write(p []byte) (int, error) {
	return m.w.Write(p)
}

func (m minLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < m.min {
		return len(p), nil
	}
	return m.w.Write(p)
}
