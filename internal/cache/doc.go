// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package cache provides a generic in-memory TTL cache.

Topiclens keeps one entry per analysis session: the session's topic name
resolver and its query generation counter. Entries slide, so a session
expires after it has been idle for the configured TTL.

Serve runs the periodic sweep and is registered with the supervisor tree.
Hits, misses, evictions and size are exported as cache_* metrics labelled
with the cache name.
*/
package cache
