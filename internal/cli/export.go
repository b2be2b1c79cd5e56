// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"time"

	"github.com/jeranaias/abel-tui/internal/export"
	"github.com/jeranaias/abel-tui/internal/model"
)

// ExportConversation writes conv to dir in format ("md" when empty) and
// returns the file path.
func ExportConversation(conv model.Conversation, format, dir string, now func() time.Time) (string, error) {
	opts := export.DefaultOptions()
	opts.OutputDir = dir
	if now != nil {
		opts.Now = now
	}

	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return "", err
	}
	return export.ExportToFile(conv, exporter, opts)
}
