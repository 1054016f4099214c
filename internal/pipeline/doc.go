// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package pipeline executes analysis queries.

One Execute call runs, for every requested version:

	fetch tree (query service) -> extract topic names -> normalize ->
	aggregate -> insights -> optional enhancement

Fetches run concurrently, one goroutine per version, each writing to its
own slot keyed by version. Topic names from every fetched tree are
merged into the session's resolver in ascending version order before any
version is aggregated, so results do not depend on fetch timing. A version
whose fetch fails records a models.VersionError in its slot and does not
affect the others.

Each run is stamped with the session's next generation. A run that
finishes after a newer one started is discarded with ErrStaleResult.
With two or more successful versions the report carries a delta between
the lowest and highest version, and with three or more an evolution
table.
*/
package pipeline
