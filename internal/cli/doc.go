// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-graphical surfaces: a line-oriented chat
// REPL for terminals where the full-screen interface is unavailable, the
// history table and terminal helpers shared by the subcommands.
package cli
