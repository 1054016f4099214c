// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

// Package topictree prepares raw topic trees for aggregation.
//
// Normalize flattens a tree into an ordered message list, applying an
// optional user filter. NameResolver maps topic ids to display names using
// a per-session cache filled from tree metadata, a fixed fallback table and
// finally a "Topic {id}" placeholder. Neither performs I/O.
package topictree
