// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pitchmatch/internal/media"
	"github.com/tomtom215/pitchmatch/internal/metrics"
)

// ItemStore is the slice of the storage layer the dispatcher needs.
// Defined here to avoid a circular import with the store package.
type ItemStore interface {
	GetItem(ctx context.Context, id string) (*media.Item, error)
	TransitionStatus(ctx context.Context, id string, from, to media.Status) (bool, error)
	SetAnalysis(ctx context.Context, id string, analysis media.Analysis) error
	MarkFailed(ctx context.Context, id, msg string) error
}

// Dispatcher queues analysis jobs and runs them on a worker pool.
//
// Jobs flow through an in-process Watermill pub/sub so the HTTP handler
// returns immediately after Submit. Each worker claims its item with a
// pending-to-running status transition; a job whose claim fails is skipped,
// so re-submitting an item already being analyzed is harmless.
type Dispatcher struct {
	pubsub   *gochannel.GoChannel
	pipeline *Pipeline
	store    ItemStore
	config   Config
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher with an in-process queue.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDispatcher(cfg Config, pipeline *Pipeline, store ItemStore, logger zerolog.Logger, wmLogger watermill.LoggerAdapter) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}
	if pipeline == nil {
		return nil, fmt.Errorf("pipeline must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}
	if wmLogger == nil {
		wmLogger = watermill.NewStdLogger(false, false)
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(cfg.QueueBuffer),
	}, wmLogger)

	return &Dispatcher{
		pubsub:   pubsub,
		pipeline: pipeline,
		store:    store,
		config:   cfg,
		logger:   logger.With().Str("component", "dispatcher").Logger(),
	}, nil
}

// Submit enqueues an item for analysis. The item must already exist in the
// store with status pending.
func (d *Dispatcher) Submit(_ context.Context, itemID string) error {
	msg := message.NewMessage(watermill.NewUUID(), []byte(itemID))
	if err := d.pubsub.Publish(d.config.Topic, msg); err != nil {
		return fmt.Errorf("publish analysis job for %s: %w", itemID, err)
	}
	metrics.AnalysisQueueDepth.Inc()
	d.logger.Debug().Str("item_id", itemID).Msg("analysis job queued")
	return nil
}

// Run consumes jobs until the context is canceled. It blocks; callers run
// it under supervision (see Service).
func (d *Dispatcher) Run(ctx context.Context) error {
	messages, err := d.pubsub.Subscribe(ctx, d.config.Topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", d.config.Topic, err)
	}

	d.logger.Info().Int("workers", d.config.Workers).Msg("analysis workers starting")

	var wg sync.WaitGroup
	for i := 0; i < d.config.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			d.work(ctx, worker, messages)
		}(i)
	}

	wg.Wait()
	d.logger.Info().Msg("analysis workers stopped")
	return ctx.Err()
}

// Close shuts down the underlying pub/sub. Pending messages are dropped;
// their items stay pending and can be re-submitted.
func (d *Dispatcher) Close() error {
	return d.pubsub.Close()
}

// work drains the shared message channel until it closes.
func (d *Dispatcher) work(ctx context.Context, worker int, messages <-chan *message.Message) {
	log := d.logger.With().Int("worker", worker).Logger()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			// Ack on receipt. Jobs are not retried through the queue
			// (failures are recorded on the item itself), and the pub/sub
			// holds the next message for the pool until the previous one
			// is acked.
			msg.Ack()
			metrics.AnalysisQueueDepth.Dec()
			itemID := string(msg.Payload)
			if err := d.process(ctx, itemID, log); err != nil {
				log.Error().Err(err).Str("item_id", itemID).Msg("analysis job failed")
			}
		}
	}
}

// process runs one analysis job end to end.
func (d *Dispatcher) process(ctx context.Context, itemID string, log zerolog.Logger) error {
	start := time.Now()

	claimed, err := d.store.TransitionStatus(ctx, itemID, media.StatusPending, media.StatusRunning)
	if err != nil {
		return fmt.Errorf("claim item %s: %w", itemID, err)
	}
	if !claimed {
		metrics.RecordAnalysisJob("skipped", 0)
		log.Debug().Str("item_id", itemID).Msg("item not pending, skipping")
		return nil
	}

	item, err := d.store.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load item %s: %w", itemID, err)
	}

	result, err := d.pipeline.Analyze(ctx, item)
	if err != nil {
		metrics.RecordAnalysisJob("failed", time.Since(start))
		if markErr := d.store.MarkFailed(ctx, itemID, err.Error()); markErr != nil {
			return fmt.Errorf("mark %s failed after %v: %w", itemID, err, markErr)
		}
		return fmt.Errorf("analyze %s: %w", itemID, err)
	}

	if err := d.store.SetAnalysis(ctx, itemID, *result); err != nil {
		metrics.RecordAnalysisJob("failed", time.Since(start))
		if markErr := d.store.MarkFailed(ctx, itemID, err.Error()); markErr != nil {
			return fmt.Errorf("mark %s failed after %v: %w", itemID, err, markErr)
		}
		return fmt.Errorf("persist analysis for %s: %w", itemID, err)
	}

	metrics.RecordAnalysisJob("completed", time.Since(start))
	log.Info().Str("item_id", itemID).Dur("duration", time.Since(start)).Msg("analysis job complete")
	return nil
}
