// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

// Package services adapts blocking components to suture.Service.
//
// HTTPServerService wraps *http.Server, translating ListenAndServe and
// Shutdown into a context-driven Serve. HubService wraps the WebSocket hub
// event loop. Both return ctx.Err() on a requested shutdown, which suture
// treats as a clean stop.
package services
