// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package supervisor runs the long-lived services under suture v4.

The tree has three layers, each its own supervisor so a restart storm in
one does not take down the others:

	root ("topiclens")
	├── state-layer
	│   └── session cache sweeper (cache.Cache[*pipeline.Session])
	├── messaging-layer
	│   └── WebSocket hub (services.HubService)
	└── api-layer
	    └── HTTP server (services.HTTPServerService)

Supervisor events are logged through sutureslog, whose slog handler is the
zerolog adapter from internal/logging.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddStateService(sessions)
	tree.AddMessagingService(services.NewHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

Services return ctx.Err() on normal shutdown. Anything else counts as a
failure and is restarted after FailureBackoff once FailureThreshold
failures have accumulated (decaying over FailureDecay seconds).
*/
package supervisor
