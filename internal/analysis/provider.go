// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/pitchmatch/internal/media"
	"github.com/tomtom215/pitchmatch/internal/metrics"
)

// HTTPProvider talks to the external analysis service over JSON/HTTP.
// All calls go through a rate limiter and a circuit breaker, so a slow or
// failing provider degrades analysis throughput without taking down the
// rest of the server.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. Tests should mock the Provider
// interface rather than this client.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	logger  zerolog.Logger
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a provider client.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 30 second timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPProvider(cfg ProviderConfig, logger zerolog.Logger) (*HTTPProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("provider base URL must not be empty")
	}

	log := logger.With().Str("component", "analysis_provider").Logger()
	cbName := "analysis-provider"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			log.Info().Str("from", fromStr).Str("to", toStr).Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &HTTPProvider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		cb:      cb,
		logger:  log,
	}, nil
}

// Transcribe converts the referenced media into text.
func (p *HTTPProvider) Transcribe(ctx context.Context, mediaRef string) (string, error) {
	var resp struct {
		Transcript string `json:"transcript"`
	}
	err := p.post(ctx, "/v1/transcribe", map[string]string{"media_ref": mediaRef}, &resp)
	return resp.Transcript, err
}

// ExtractKeywords returns weighted keywords for a transcript.
func (p *HTTPProvider) ExtractKeywords(ctx context.Context, transcript string) ([]media.Keyword, error) {
	var resp struct {
		Keywords []media.Keyword `json:"keywords"`
	}
	err := p.post(ctx, "/v1/keywords", map[string]string{"text": transcript}, &resp)
	return resp.Keywords, err
}

// Summarize produces a short summary of a transcript.
func (p *HTTPProvider) Summarize(ctx context.Context, transcript string) (string, error) {
	var resp struct {
		Summary string `json:"summary"`
	}
	err := p.post(ctx, "/v1/summary", map[string]string{"text": transcript}, &resp)
	return resp.Summary, err
}

// Embed returns a semantic vector for the given text.
func (p *HTTPProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	var resp struct {
		Embedding []float64 `json:"embedding"`
	}
	err := p.post(ctx, "/v1/embeddings", map[string]string{"text": text}, &resp)
	return resp.Embedding, err
}

// ScoreQuality rates pitch quality in [0, 1].
func (p *HTTPProvider) ScoreQuality(ctx context.Context, transcript string) (float64, error) {
	var resp struct {
		Quality float64 `json:"quality"`
	}
	err := p.post(ctx, "/v1/quality", map[string]string{"text": transcript}, &resp)
	return resp.Quality, err
}

// post issues one rate-limited, breaker-protected JSON request.
func (p *HTTPProvider) post(ctx context.Context, path string, reqBody, respBody any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	body, err := p.cb.Execute(func() ([]byte, error) {
		return p.doRequest(ctx, path, payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(p.cb.Name(), "rejected").Inc()
			p.logger.Warn().Err(err).Str("path", path).Msg("request rejected by circuit breaker")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(p.cb.Name(), "failure").Inc()
		}
		return err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(p.cb.Name(), "success").Inc()

	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", path, err)
	}
	return nil
}

// doRequest performs the HTTP exchange and reads the full response body.
func (p *HTTPProvider) doRequest(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}
	return body, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
