// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package websocket streams incremental analysis results to clients.

While a query runs, each version is published as soon as it finishes
(version_result), followed by the joined report (analysis_completed):

	{"type":"version_result","sessionId":"...","data":{"generation":4,"version":"2","result":{...}}}
	{"type":"analysis_completed","sessionId":"...","data":{"generation":4,"report":{...}}}

Clients can scope themselves to a session, either with ?session=<id> on
connect or by sending:

	{"type":"subscribe","data":{"sessionId":"..."}}

Unsubscribed clients receive every session. Clients compare generation
against the latest one they saw and ignore older frames.

Hub.RunWithContext is supervised through services.WebSocketHubService.
Slow clients whose 256-message buffer fills are disconnected.
*/
package websocket
