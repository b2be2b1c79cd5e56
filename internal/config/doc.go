// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads abel's configuration.
//
// Settings come from, in increasing order of precedence:
//   - built-in defaults
//   - ~/.abel/config.toml (or the file given with --config)
//   - a .env file in the working directory
//   - ABEL_* environment variables
//
// The completion API key is only ever read from the environment
// (OPENAI_API_KEY, falling back to VITE_OPENAI_API_KEY) and is never written
// to the config file.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	client := cloud.NewClient(cfg.APIKey, cloud.WithEndpoint(cfg.API.Endpoint))
package config
