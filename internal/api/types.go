// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

// Package api provides the HTTP surface using the Chi router.
package api

import "time"

// APIResponse is the uniform response envelope.
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata carries response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count,omitempty"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error codes returned by the API.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeNotAnalyzed     = "NOT_ANALYZED"
	CodeInternalError   = "INTERNAL_ERROR"
)

// CreateItemRequest is the payload for POST /api/v1/items.
type CreateItemRequest struct {
	OwnerID  string `json:"owner_id" validate:"required,max=128"`
	Title    string `json:"title" validate:"required,max=256"`
	Theme    string `json:"theme" validate:"required"`
	MediaRef string `json:"media_ref" validate:"required,max=1024"`
}

// CompatibilityRequest is the query contract for GET /api/v1/match/compatibility.
type CompatibilityRequest struct {
	ItemA string `validate:"required"`
	ItemB string `validate:"required"`
}
