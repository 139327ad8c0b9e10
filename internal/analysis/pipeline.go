// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

// Package analysis turns uploaded pitch videos into searchable artifacts.
//
// The pipeline runs five stages against an external analysis provider:
// transcription, keyword extraction, summarization, embedding generation
// and quality scoring. A job either completes all stages or fails as a
// whole; partially analyzed items are never persisted, so a complete item
// always carries an embedding.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pitchmatch/internal/media"
	"github.com/tomtom215/pitchmatch/internal/metrics"
)

// Sentinel errors for pipeline failures.
var (
	// ErrEmptyTranscript indicates the provider produced no usable speech.
	ErrEmptyTranscript = errors.New("analysis: empty transcript")

	// ErrEmptyEmbedding indicates the provider returned a zero-length vector.
	ErrEmptyEmbedding = errors.New("analysis: empty embedding")

	// ErrNoMediaRef indicates the item has no media reference to analyze.
	ErrNoMediaRef = errors.New("analysis: item has no media reference")
)

// Provider is the upstream analysis service. Implementations must be safe
// for concurrent use; the pipeline calls them from multiple workers.
type Provider interface {
	// Transcribe converts the referenced media into text.
	Transcribe(ctx context.Context, mediaRef string) (string, error)

	// ExtractKeywords returns weighted keywords for a transcript.
	ExtractKeywords(ctx context.Context, transcript string) ([]media.Keyword, error)

	// Summarize produces a short summary of a transcript.
	Summarize(ctx context.Context, transcript string) (string, error)

	// Embed returns a semantic vector for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// ScoreQuality rates pitch quality in [0, 1].
	ScoreQuality(ctx context.Context, transcript string) (float64, error)
}

// Pipeline chains the analysis stages for one item.
type Pipeline struct {
	provider Provider
	logger   zerolog.Logger
}

// NewPipeline creates an analysis pipeline backed by the given provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPipeline(provider Provider, logger zerolog.Logger) (*Pipeline, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider must not be nil")
	}
	return &Pipeline{
		provider: provider,
		logger:   logger.With().Str("component", "analysis").Logger(),
	}, nil
}

// Analyze runs all stages for the item and returns the complete result.
// Any stage failure aborts the job; no partial result is returned.
func (p *Pipeline) Analyze(ctx context.Context, item *media.Item) (*media.Analysis, error) {
	if item.MediaRef == "" {
		return nil, ErrNoMediaRef
	}

	log := p.logger.With().Str("item_id", item.ID).Logger()

	transcript, err := stage(ctx, "transcribe", func(ctx context.Context) (string, error) {
		return p.provider.Transcribe(ctx, item.MediaRef)
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}
	log.Debug().Int("transcript_len", len(transcript)).Msg("transcription complete")

	keywords, err := stage(ctx, "keywords", func(ctx context.Context) ([]media.Keyword, error) {
		return p.provider.ExtractKeywords(ctx, transcript)
	})
	if err != nil {
		return nil, fmt.Errorf("extract keywords: %w", err)
	}

	summary, err := stage(ctx, "summary", func(ctx context.Context) (string, error) {
		return p.provider.Summarize(ctx, transcript)
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	// Embed the summary rather than the raw transcript so rambling pitches
	// and concise ones land in comparable vector space.
	embedText := summary
	if strings.TrimSpace(embedText) == "" {
		embedText = transcript
	}
	embedding, err := stage(ctx, "embedding", func(ctx context.Context) ([]float64, error) {
		return p.provider.Embed(ctx, embedText)
	})
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}

	quality, err := stage(ctx, "quality", func(ctx context.Context) (float64, error) {
		return p.provider.ScoreQuality(ctx, transcript)
	})
	if err != nil {
		return nil, fmt.Errorf("score quality: %w", err)
	}
	if quality < 0 || quality > 1 {
		return nil, fmt.Errorf("provider returned quality %f outside [0, 1]", quality)
	}

	log.Info().
		Int("keywords", len(keywords)).
		Int("embedding_dim", len(embedding)).
		Float64("quality", quality).
		Msg("analysis complete")

	return &media.Analysis{
		Transcript: transcript,
		Keywords:   keywords,
		Summary:    summary,
		Embedding:  embedding,
		Quality:    quality,
	}, nil
}

// stage runs one pipeline stage with timing instrumentation.
func stage[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	out, err := fn(ctx)
	metrics.RecordAnalysisStage(name, time.Since(start))
	return out, err
}
