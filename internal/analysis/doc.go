// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package analysis is the local aggregation engine.

Aggregate turns a normalized message list into per-topic and per-user
statistics. GenerateInsights renders those statistics as ordered,
human-readable insight strings; custom questions are dispatched through a
keyword Router whose rules are evaluated in order, first match wins.
ProcessTree chains normalization, aggregation and insight generation for a
single tree version.

Everything in this package is synchronous and deterministic: identical
input produces identical output, nothing performs I/O and nothing logs.

The sentiment and engagement rules are heuristics over topic and message
counts. They do not inspect message content.
*/
package analysis
