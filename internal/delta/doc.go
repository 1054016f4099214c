// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

// Package delta compares analysis results across versions of a tree.
//
// Compare classifies every topic id of two versions as new, removed,
// changed or unchanged. Tabulate lays three or more versions side by side
// and summarizes the net change between the first and last version only.
package delta
