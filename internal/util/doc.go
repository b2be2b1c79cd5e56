// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across abel.
//
// # Key Functions
//
// String Utilities:
//   - CutRunes: display cut at a fixed character count with a trailing ellipsis
//   - TruncateWidth, PadRight: terminal-width aware layout helpers
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - ExpandHome: resolve a leading ~ in configured paths
//
// # Usage
//
//	preview := util.CutRunes(firstMessage, 125)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
