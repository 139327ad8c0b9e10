// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

// Pitchmatch server: ingests video pitches, runs them through an external
// analysis provider (transcription, keywords, summary, embedding, quality)
// and serves semantic matching on the results: similar projects,
// personalized recommendations, collaborator discovery and pairwise
// compatibility checks.
//
// # Quick Start
//
//	PITCHMATCH_STORAGE_BACKEND=memory \
//	PITCHMATCH_ANALYSIS_PROVIDER_URL=http://localhost:9090 \
//	pitchmatch-server
//
// Configuration precedence is env > config file > defaults; see
// internal/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/pitchmatch/internal/analysis"
	"github.com/tomtom215/pitchmatch/internal/api"
	"github.com/tomtom215/pitchmatch/internal/config"
	"github.com/tomtom215/pitchmatch/internal/logging"
	"github.com/tomtom215/pitchmatch/internal/match"
	"github.com/tomtom215/pitchmatch/internal/store"
	"github.com/tomtom215/pitchmatch/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("storage", cfg.Storage.Backend).
		Str("provider_url", cfg.Analysis.ProviderURL).
		Msg("starting pitchmatch")

	st, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing store")
		}
	}()

	// Matching engine over the store.
	matchCfg := match.DefaultConfig()
	matchCfg.ScoreMinimum = cfg.Match.ScoreMinimum
	matchCfg.MaxResults = cfg.Match.MaxResults
	matchCfg.MaxLimit = cfg.Match.MaxLimit
	matchCfg.ProfileWindow = cfg.Match.ProfileWindow
	engine, err := match.NewEngine(matchCfg, st, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create matching engine")
	}

	// Analysis pipeline: provider client, stage chain, worker dispatcher.
	provider, err := analysis.NewHTTPProvider(analysis.ProviderConfig{
		BaseURL:   cfg.Analysis.ProviderURL,
		APIKey:    cfg.Analysis.APIKey,
		Timeout:   cfg.Analysis.Timeout,
		RateLimit: cfg.Analysis.RateLimit,
		RateBurst: cfg.Analysis.RateBurst,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create analysis provider")
	}

	pipeline, err := analysis.NewPipeline(provider, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create analysis pipeline")
	}

	analysisCfg := analysis.DefaultConfig()
	analysisCfg.Workers = cfg.Analysis.Workers
	analysisCfg.QueueBuffer = cfg.Analysis.QueueBuffer
	dispatcher, err := analysis.NewDispatcher(analysisCfg, pipeline, st, logging.Logger(), watermill.NewStdLogger(false, false))
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create analysis dispatcher")
	}
	defer func() {
		if err := dispatcher.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing dispatcher")
		}
	}()

	// HTTP surface.
	handler := api.NewHandler(st, engine, dispatcher, logging.Logger())
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Supervision tree: analysis workers and HTTP server in separate
	// layers. sutureslog bridges supervisor events into zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddWorkerService(analysis.NewService(dispatcher, logging.Logger()))
	tree.AddAPIService(api.NewService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
		}
	}

	logging.Info().Msg("pitchmatch stopped")
}

// openStore selects the item store from configuration.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return store.NewMemory(), nil
	case "badger":
		return store.OpenBadger(cfg.Storage.Path, logging.Logger())
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
