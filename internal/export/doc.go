// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a conversation to a file.
//
// # Supported Formats
//
//   - Markdown: human-readable, with a YAML front matter header
//   - JSON: the conversation exactly as it is stored
//
// # Usage
//
//	exporter, err := export.ForFormat("md", nil)
//	path, err := export.ExportToFile(conv, exporter, nil)
package export
