// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "abel.log")

	logger, closeFn, err := Open(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("component", "test").Msg("visible")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"visible"`)
	assert.Contains(t, string(data), `"app":"abel"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestOpen_ConsoleOnlyGetsWarnings(t *testing.T) {
	var buf bytes.Buffer

	logger, closeFn, err := Open(Options{Level: "debug", Console: &buf})
	require.NoError(t, err)
	defer closeFn()

	logger.Info().Msg("chatter")
	logger.Warn().Msg("careful")

	assert.NotContains(t, buf.String(), "chatter")
	assert.Contains(t, buf.String(), "careful")
}

func TestOpen_NoSinksIsNop(t *testing.T) {
	logger, closeFn, err := Open(Options{})
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
