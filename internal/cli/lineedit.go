// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

// HistoryFileName is the input history file kept next to the config.
const HistoryFileName = "chat_history"

// Prompter reads one line of input after showing prompt.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// =============================================================================
// LINE EDITOR
// =============================================================================

// LineEditor provides input history and line editing for the REPL.
type LineEditor struct {
	line        *liner.State
	historyFile string
}

// NewLineEditor creates a LineEditor. History is loaded from historyFile
// when it exists; an empty path disables history persistence.
func NewLineEditor(historyFile string) *LineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	e := &LineEditor{
		line:        line,
		historyFile: historyFile,
	}
	e.loadHistory()
	return e
}

func (e *LineEditor) loadHistory() {
	if e.historyFile == "" {
		return
	}
	if f, err := os.Open(e.historyFile); err == nil {
		_, _ = e.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line. Non-blank input is added to the history.
func (e *LineEditor) Prompt(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory writes the history file with owner-only permissions.
func (e *LineEditor) saveHistory() error {
	if e.historyFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0o700); err != nil {
		return errors.Wrap(err, "create history directory")
	}
	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return errors.Wrap(err, "open history file")
	}
	defer f.Close()

	_, err = e.line.WriteHistory(f)
	return errors.Wrap(err, "write history file")
}

// Close saves history and restores the terminal.
func (e *LineEditor) Close() error {
	saveErr := e.saveHistory()
	if err := e.line.Close(); err != nil {
		return err
	}
	return saveErr
}

// isEndOfInput reports whether err means the user ended the session
// (ctrl+d or ctrl+c at the prompt).
func isEndOfInput(err error) bool {
	return errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF)
}
