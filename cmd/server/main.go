// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/topiclens/internal/api"
	"github.com/tomtom215/topiclens/internal/config"
	"github.com/tomtom215/topiclens/internal/datasets"
	"github.com/tomtom215/topiclens/internal/enhance"
	"github.com/tomtom215/topiclens/internal/logging"
	"github.com/tomtom215/topiclens/internal/metrics"
	"github.com/tomtom215/topiclens/internal/pipeline"
	"github.com/tomtom215/topiclens/internal/query"
	"github.com/tomtom215/topiclens/internal/supervisor"
	"github.com/tomtom215/topiclens/internal/supervisor/services"
	ws "github.com/tomtom215/topiclens/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", api.Version).
		Str("query_url", cfg.Query.URL).
		Str("environment", cfg.Server.Environment).
		Bool("enhance_enabled", cfg.Enhance.Enabled).
		Msg("Starting Topiclens")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := query.NewCircuitBreakerClient(&cfg.Query)
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := source.Ping(pingCtx); err != nil {
		logging.Warn().Err(err).Msg("Query service not reachable yet, requests will retry")
	} else {
		logging.Info().Msg("Connected to query service")
	}
	cancelPing()

	hub := ws.NewHub()
	sessions := pipeline.NewSessionStore(cfg.Analysis.SessionTTL)

	opts := []pipeline.Option{pipeline.WithMaxVersions(cfg.Analysis.MaxVersions)}
	if cfg.Analysis.Broadcast {
		opts = append(opts, pipeline.WithPublisher(hub))
	}

	adapter, err := enhance.New(ctx, &cfg.Enhance)
	switch {
	case errors.Is(err, enhance.ErrDisabled):
		logging.Info().Msg("Summary enhancement disabled")
	case err != nil:
		logging.Warn().Err(err).Str("provider", cfg.Enhance.Provider).Msg("Summary enhancement unavailable")
	default:
		// Passing a nil *Adapter would produce a non-nil Enhancer.
		opts = append(opts, pipeline.WithEnhancer(adapter))
		logging.Info().Str("provider", cfg.Enhance.Provider).Msg("Summary enhancement enabled")
	}

	executor := pipeline.NewExecutor(source, sessions, opts...)
	registry := datasets.NewRegistry(cfg.Datasets)

	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)

	handler := api.NewHandler(cfg, executor, source, registry, hub)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		// WriteTimeout is left to the per-request analysis deadline so
		// WebSocket connections are not cut off.
		IdleTimeout: 60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddStateService(sessions)
	tree.AddMessagingService(services.NewHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("Services added to supervisor tree")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Topiclens stopped")
}
