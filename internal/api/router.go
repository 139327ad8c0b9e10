// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all routes and the global middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogging())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.Health)
	})

	r.Route("/api/v1/items", func(r chi.Router) {
		r.Use(Metrics())

		r.Post("/", h.CreateItem)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetItem)
			r.Delete("/", h.DeleteItem)
			r.Get("/similar", h.Similar)
			r.Get("/collaborators", h.Collaborators)
		})
	})

	r.Route("/api/v1/users/{id}", func(r chi.Router) {
		r.Use(Metrics())

		r.Get("/items", h.ListOwnerItems)
		r.Get("/recommendations", h.Recommendations)
	})

	r.Route("/api/v1/match", func(r chi.Router) {
		r.Use(Metrics())

		r.Get("/compatibility", h.Compatibility)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
