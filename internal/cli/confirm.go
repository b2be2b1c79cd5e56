// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// =============================================================================
// CONFIRMATION HANDLING
// =============================================================================

// ErrConfirmationRequired is returned when a destructive action needs
// confirmation but there is no terminal to ask on.
var ErrConfirmationRequired = errors.New("confirmation required but stdin is not a terminal; use --yes")

// Confirmation questions shared by the plain REPL and the subcommands.
const (
	ConfirmDeleteQuestion    = "Are you sure you want to delete this conversation?"
	ConfirmDeleteAllQuestion = "Are you sure you want to delete all conversations?"
)

// RequireConfirmation asks question on the terminal unless yes is set.
//
// Confirmation flow:
//  1. If yes is true (--yes), return true immediately
//  2. If stdin is not a TTY, return ErrConfirmationRequired
//  3. Otherwise prompt and wait for y/N
func RequireConfirmation(yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	if !IsTTY() {
		return false, ErrConfirmationRequired
	}
	return Confirm(os.Stdin, os.Stdout, question)
}

// Confirm writes question with a [y/N] suffix to w and reads one line from
// r. Only "y" and "yes" confirm.
func Confirm(r io.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N]: ", question)

	input, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, errors.Wrap(err, "read confirmation")
	}
	return IsYes(input), nil
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	response := strings.ToLower(strings.TrimSpace(answer))
	return response == "y" || response == "yes"
}
