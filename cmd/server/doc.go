// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package main is the entry point for the Topiclens server.

Topiclens fetches conversation topic trees from an external query service,
aggregates them into per-version insights (top topics, top contributors,
message statistics) and compares versions against each other. Results are
returned over a JSON REST API and streamed, per analysis session, to
WebSocket subscribers.

# Application Architecture

	RootSupervisor ("topiclens")
	├── StateSupervisor ("state-layer")
	│   └── Session cache sweeper
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket Hub
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: koanf v2 with defaults, an optional YAML file and environment variables
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Query service client with circuit breaker and rate limiting
 4. Optional enhancement adapter (HTTP or Gemini)
 5. Pipeline executor, session store and WebSocket hub
 6. HTTP router and server
 7. Supervisor tree

# Configuration

Common environment variables:

	QUERY_SERVICE_URL      Base URL of the topic tree query service (required)
	QUERY_SERVICE_API_KEY  Bearer token for the query service
	HTTP_PORT              HTTP port
	ENHANCE_ENABLED        Enable the summary enhancement (default false)
	ENHANCE_PROVIDER       http or gemini
	LOG_LEVEL              trace, debug, info, warn, error
	LOG_FORMAT             json or console
	CONFIG_PATH            Optional YAML config file

# Graceful Shutdown

SIGINT and SIGTERM cancel the root context. Each service gets
ShutdownTimeout to stop, and services that miss it are logged by name.
*/
package main
