// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pitchmatch/internal/media"
)

// stubProvider returns canned results per stage; any field left nil gets a
// reasonable default.
type stubProvider struct {
	mu            sync.Mutex
	transcript    string
	transcriptErr error
	keywords      []media.Keyword
	keywordsErr   error
	summary       string
	summaryErr    error
	embedding     []float64
	embeddingErr  error
	quality       float64
	qualityErr    error

	embeddedText string
}

func (s *stubProvider) Transcribe(context.Context, string) (string, error) {
	return s.transcript, s.transcriptErr
}

func (s *stubProvider) ExtractKeywords(context.Context, string) ([]media.Keyword, error) {
	return s.keywords, s.keywordsErr
}

func (s *stubProvider) Summarize(context.Context, string) (string, error) {
	return s.summary, s.summaryErr
}

func (s *stubProvider) Embed(_ context.Context, text string) ([]float64, error) {
	s.mu.Lock()
	s.embeddedText = text
	s.mu.Unlock()
	return s.embedding, s.embeddingErr
}

func (s *stubProvider) ScoreQuality(context.Context, string) (float64, error) {
	return s.quality, s.qualityErr
}

func goodProvider() *stubProvider {
	return &stubProvider{
		transcript: "we are building a learning platform",
		keywords:   []media.Keyword{{Term: "learning", Weight: 0.9}},
		summary:    "a learning platform",
		embedding:  []float64{0.1, 0.2},
		quality:    0.75,
	}
}

func newTestPipeline(t *testing.T, provider Provider) *Pipeline {
	t.Helper()
	p, err := NewPipeline(provider, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	return p
}

func testItem() *media.Item {
	return &media.Item{
		ID:       "item-1",
		OwnerID:  "alice",
		MediaRef: "uploads/item-1.mp4",
		Status:   media.StatusRunning,
	}
}

func TestPipeline_AllStages(t *testing.T) {
	provider := goodProvider()
	p := newTestPipeline(t, provider)

	result, err := p.Analyze(context.Background(), testItem())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Transcript != provider.transcript {
		t.Errorf("Unexpected transcript %q", result.Transcript)
	}
	if len(result.Keywords) != 1 || result.Keywords[0].Term != "learning" {
		t.Errorf("Unexpected keywords %v", result.Keywords)
	}
	if result.Summary != provider.summary {
		t.Errorf("Unexpected summary %q", result.Summary)
	}
	if len(result.Embedding) != 2 {
		t.Errorf("Unexpected embedding %v", result.Embedding)
	}
	if result.Quality != 0.75 {
		t.Errorf("Unexpected quality %f", result.Quality)
	}
	// The summary, not the transcript, feeds the embedding.
	if provider.embeddedText != provider.summary {
		t.Errorf("Expected summary to be embedded, got %q", provider.embeddedText)
	}
}

func TestPipeline_EmbedsTranscriptWhenSummaryEmpty(t *testing.T) {
	provider := goodProvider()
	provider.summary = "  "
	p := newTestPipeline(t, provider)

	if _, err := p.Analyze(context.Background(), testItem()); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if provider.embeddedText != provider.transcript {
		t.Errorf("Expected transcript fallback for embedding, got %q", provider.embeddedText)
	}
}

func TestPipeline_NoMediaRef(t *testing.T) {
	p := newTestPipeline(t, goodProvider())

	item := testItem()
	item.MediaRef = ""
	_, err := p.Analyze(context.Background(), item)
	if !errors.Is(err, ErrNoMediaRef) {
		t.Errorf("Expected ErrNoMediaRef, got %v", err)
	}
}

func TestPipeline_EmptyTranscript(t *testing.T) {
	provider := goodProvider()
	provider.transcript = "   \n "
	p := newTestPipeline(t, provider)

	_, err := p.Analyze(context.Background(), testItem())
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("Expected ErrEmptyTranscript, got %v", err)
	}
}

func TestPipeline_EmptyEmbedding(t *testing.T) {
	provider := goodProvider()
	provider.embedding = nil
	p := newTestPipeline(t, provider)

	_, err := p.Analyze(context.Background(), testItem())
	if !errors.Is(err, ErrEmptyEmbedding) {
		t.Errorf("Expected ErrEmptyEmbedding, got %v", err)
	}
}

func TestPipeline_QualityOutOfRange(t *testing.T) {
	provider := goodProvider()
	provider.quality = 1.2
	p := newTestPipeline(t, provider)

	if _, err := p.Analyze(context.Background(), testItem()); err == nil {
		t.Error("Expected error for quality outside [0, 1]")
	}
}

func TestPipeline_StageFailureAborts(t *testing.T) {
	providerErr := errors.New("provider down")

	tests := []struct {
		name  string
		wreck func(*stubProvider)
	}{
		{"transcription", func(s *stubProvider) { s.transcriptErr = providerErr }},
		{"keywords", func(s *stubProvider) { s.keywordsErr = providerErr }},
		{"summary", func(s *stubProvider) { s.summaryErr = providerErr }},
		{"embedding", func(s *stubProvider) { s.embeddingErr = providerErr }},
		{"quality", func(s *stubProvider) { s.qualityErr = providerErr }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := goodProvider()
			tt.wreck(provider)
			p := newTestPipeline(t, provider)

			result, err := p.Analyze(context.Background(), testItem())
			if !errors.Is(err, providerErr) {
				t.Errorf("Expected provider error, got %v", err)
			}
			if result != nil {
				t.Error("Expected no partial result on stage failure")
			}
		})
	}
}

func TestNewPipeline_NilProvider(t *testing.T) {
	if _, err := NewPipeline(nil, zerolog.Nop()); err == nil {
		t.Error("Expected error for nil provider")
	}
}
