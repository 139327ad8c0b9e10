// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package analysis

import (
	"context"

	"github.com/rs/zerolog"
)

// Service wraps the dispatcher for Suture supervision. If the worker pool
// exits unexpectedly the supervisor restarts it; queued jobs whose items
// are still pending get picked up again on re-submission.
type Service struct {
	dispatcher *Dispatcher
	logger     zerolog.Logger
	name       string
}

// NewService creates a supervised analysis service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(dispatcher *Dispatcher, logger zerolog.Logger) *Service {
	return &Service{
		dispatcher: dispatcher,
		logger:     logger.With().Str("service", "analysis").Logger(),
		name:       "analysis-service",
	}
}

// Serve implements the suture.Service interface.
func (s *Service) Serve(ctx context.Context) error {
	s.logger.Info().Msg("analysis service starting")
	err := s.dispatcher.Run(ctx)
	s.logger.Info().Msg("analysis service shutting down")
	return err
}

// String returns the service name for logging.
func (s *Service) String() string {
	return s.name
}
