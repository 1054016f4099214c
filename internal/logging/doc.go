// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

// Package logging provides the zerolog-based structured logger used across
// Topiclens.
//
// A single global logger is configured once at startup:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("dataset", id).Msg("Analysis started")
//
// Request-scoped code logs through Ctx, which attaches the correlation,
// request and session IDs carried by the context:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Version fetch failed")
//
// SlogHandler adapts the global logger to log/slog for libraries such as
// sutureslog.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// event is never written.
package logging
