// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pitchmatch/internal/logging"
	"github.com/tomtom215/pitchmatch/internal/match"
	"github.com/tomtom215/pitchmatch/internal/media"
	"github.com/tomtom215/pitchmatch/internal/metrics"
	"github.com/tomtom215/pitchmatch/internal/store"
)

// Submitter queues an item for analysis.
type Submitter interface {
	Submit(ctx context.Context, itemID string) error
}

// Handler serves the Pitchmatch HTTP API.
type Handler struct {
	store     store.Store
	engine    *match.Engine
	submitter Submitter
	logger    zerolog.Logger
}

// NewHandler creates the API handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(st store.Store, engine *match.Engine, submitter Submitter, logger zerolog.Logger) *Handler {
	return &Handler{
		store:     st,
		engine:    engine,
		submitter: submitter,
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// CreateItem registers a pitch and queues it for analysis.
// The item is returned immediately with status pending; analysis results
// land asynchronously.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "malformed JSON body")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &APIResponse{
			Status:   "error",
			Metadata: Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	theme := media.Theme(req.Theme)
	if !theme.Valid() {
		respondError(w, http.StatusBadRequest, CodeValidationError, "unknown theme: "+req.Theme)
		return
	}

	item := &media.Item{
		ID:       uuid.New().String(),
		OwnerID:  req.OwnerID,
		Title:    req.Title,
		Theme:    theme,
		MediaRef: req.MediaRef,
		Status:   media.StatusPending,
	}

	if err := h.store.Put(r.Context(), item); err != nil {
		h.internalError(w, r, "store item", err)
		return
	}
	if err := h.submitter.Submit(r.Context(), item.ID); err != nil {
		h.internalError(w, r, "queue analysis", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("item_id", item.ID).
		Str("owner_id", item.OwnerID).
		Msg("item created and queued for analysis")

	respondData(w, http.StatusAccepted, item, 1)
}

// GetItem returns one item with its analysis state.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.matchError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, item, 1)
}

// DeleteItem removes an item. Deleting an unknown item succeeds.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.internalError(w, r, "delete item", err)
		return
	}
	respondData(w, http.StatusOK, nil, 0)
}

// ListOwnerItems returns all items owned by a user, most recent first.
func (h *Handler) ListOwnerItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListByOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.internalError(w, r, "list items", err)
		return
	}
	respondData(w, http.StatusOK, items, len(items))
}

// Similar returns projects semantically similar to the given item.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	opts := match.SearchOptions{
		Limit:           getIntParam(r, "limit", 0),
		ScoreMinimum:    getFloatParam(r, "min_score", 0),
		Theme:           media.Theme(r.URL.Query().Get("theme")),
		IncludeOwnItems: getBoolParam(r, "include_own", false),
	}
	if opts.Theme != "" && !opts.Theme.Valid() {
		respondError(w, http.StatusBadRequest, CodeValidationError, "unknown theme: "+string(opts.Theme))
		return
	}

	start := time.Now()
	results, err := h.engine.FindSimilar(r.Context(), chi.URLParam(r, "id"), opts)
	metrics.RecordMatchOperation("similar", time.Since(start), err)
	if err != nil {
		h.matchError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, results, len(results))
}

// Recommendations returns personalized project recommendations for a user.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	opts := match.RecommendOptions{
		Limit:        getIntParam(r, "limit", 0),
		ScoreMinimum: getFloatParam(r, "min_score", 0),
		Theme:        media.Theme(r.URL.Query().Get("theme")),
	}
	if opts.Theme != "" && !opts.Theme.Valid() {
		respondError(w, http.StatusBadRequest, CodeValidationError, "unknown theme: "+string(opts.Theme))
		return
	}

	start := time.Now()
	recs, err := h.engine.Recommend(r.Context(), chi.URLParam(r, "id"), opts)
	metrics.RecordMatchOperation("recommend", time.Since(start), err)
	if err != nil {
		h.matchError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, recs, len(recs.Items))
}

// Collaborators returns complementary projects by other owners.
func (h *Handler) Collaborators(w http.ResponseWriter, r *http.Request) {
	opts := match.CollaboratorOptions{
		Limit:        getIntParam(r, "limit", 0),
		ScoreMinimum: getFloatParam(r, "min_score", 0),
	}

	start := time.Now()
	results, err := h.engine.FindCollaborators(r.Context(), chi.URLParam(r, "id"), opts)
	metrics.RecordMatchOperation("collaborators", time.Since(start), err)
	if err != nil {
		h.matchError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, results, len(results))
}

// Compatibility compares two projects and returns a banded verdict.
func (h *Handler) Compatibility(w http.ResponseWriter, r *http.Request) {
	req := CompatibilityRequest{
		ItemA: r.URL.Query().Get("item_a"),
		ItemB: r.URL.Query().Get("item_b"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, "item_a and item_b query parameters are required")
		return
	}

	start := time.Now()
	result, err := h.engine.Compatibility(r.Context(), req.ItemA, req.ItemB)
	metrics.RecordMatchOperation("compatibility", time.Since(start), err)
	if err != nil {
		h.matchError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, result, 1)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "healthy"}, 0)
}

// matchError maps matching and storage errors to HTTP status codes.
func (h *Handler) matchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, match.ErrItemNotFound):
		respondError(w, http.StatusNotFound, CodeNotFound, "item not found")
	case errors.Is(err, match.ErrNotAnalyzed):
		respondError(w, http.StatusConflict, CodeNotAnalyzed, "item has not completed analysis")
	default:
		h.internalError(w, r, "match operation", err)
	}
}

// internalError logs the failure and hides details from the client.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg("request failed")
	respondError(w, http.StatusInternalServerError, CodeInternalError, "internal server error")
}
