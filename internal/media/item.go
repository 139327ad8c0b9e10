// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

// Package media defines the shared domain model for analyzed media items.
//
// A media item is created when a user registers an upload and moves through
// the analysis lifecycle pending -> running -> complete|failed. Derived
// fields (transcript, keywords, summary, embedding, quality) are populated
// only on completion; a failed analysis leaves them empty.
package media

import "time"

// Status is the analysis lifecycle state of a media item.
type Status string

const (
	// StatusPending means the item is registered but analysis has not started.
	StatusPending Status = "pending"
	// StatusRunning means analysis is in flight. At most one analysis may be
	// in flight per item; the pending->running transition is a compare-and-set.
	StatusRunning Status = "running"
	// StatusComplete means analysis finished and all derived fields are set.
	StatusComplete Status = "complete"
	// StatusFailed means the analysis pipeline could not produce results.
	StatusFailed Status = "failed"
)

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusComplete, StatusFailed:
		return true
	default:
		return false
	}
}

// Theme is the thematic category of a media item, one of a fixed enumeration.
type Theme string

const (
	ThemeTechnology    Theme = "technology"
	ThemeEducation     Theme = "education"
	ThemeHealth        Theme = "health"
	ThemeEntertainment Theme = "entertainment"
	ThemeProfessional  Theme = "professional"
	ThemeLifestyle     Theme = "lifestyle"
	ThemeOther         Theme = "other"
)

// Themes returns all recognized themes.
func Themes() []Theme {
	return []Theme{
		ThemeTechnology,
		ThemeEducation,
		ThemeHealth,
		ThemeEntertainment,
		ThemeProfessional,
		ThemeLifestyle,
		ThemeOther,
	}
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	for _, known := range Themes() {
		if t == known {
			return true
		}
	}
	return false
}

// Keyword is a weighted term extracted from a transcript.
// Keywords are normalized to this tagged structure at ingestion; scoring
// logic never branches on runtime shape.
type Keyword struct {
	// Term is the keyword text, stored lowercase.
	Term string `json:"term"`

	// Weight is the extraction confidence in [0, 1].
	Weight float64 `json:"weight"`
}

// Item is a registered media upload together with its analysis results.
type Item struct {
	// ID is the unique item identifier (UUID).
	ID string `json:"id"`

	// OwnerID identifies the user who uploaded the item.
	OwnerID string `json:"owner_id"`

	// Title is the display title.
	Title string `json:"title"`

	// Theme is the thematic category.
	Theme Theme `json:"theme"`

	// MediaRef locates the uploaded media for the analysis pipeline
	// (storage key or URL; upload mechanics live outside this core).
	MediaRef string `json:"media_ref"`

	// Status is the analysis lifecycle state.
	Status Status `json:"status"`

	// Transcript is the full transcript text. Empty until complete.
	Transcript string `json:"transcript,omitempty"`

	// Keywords are weighted terms extracted from the transcript.
	Keywords []Keyword `json:"keywords,omitempty"`

	// Summary is the generated summary. Empty until complete.
	Summary string `json:"summary,omitempty"`

	// Embedding is the transcript embedding. Invariant: non-empty if and
	// only if Status is StatusComplete.
	Embedding []float64 `json:"embedding,omitempty"`

	// Quality is the externally computed content quality score in [0, 1].
	// Nil when analysis has not completed or the pipeline omitted it.
	Quality *float64 `json:"quality,omitempty"`

	// Error holds the last analysis failure message when Status is failed.
	Error string `json:"error,omitempty"`

	// CreatedAt is when the item was registered.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the item last changed.
	UpdatedAt time.Time `json:"updated_at"`

	// AnalyzedAt is when analysis completed, if it has.
	AnalyzedAt *time.Time `json:"analyzed_at,omitempty"`
}

// Analyzed reports whether the item has a usable embedding.
func (i *Item) Analyzed() bool {
	return i.Status == StatusComplete && len(i.Embedding) > 0
}

// Analysis is the complete output of the analysis pipeline for one item,
// applied to an item through a single store mutation.
type Analysis struct {
	Transcript string    `json:"transcript"`
	Keywords   []Keyword `json:"keywords"`
	Summary    string    `json:"summary"`
	Embedding  []float64 `json:"embedding"`
	Quality    float64   `json:"quality"`
}

// Clone returns a deep copy of the item. Stores hand out clones so callers
// can never mutate shared state.
func (i *Item) Clone() *Item {
	c := *i
	if i.Keywords != nil {
		c.Keywords = make([]Keyword, len(i.Keywords))
		copy(c.Keywords, i.Keywords)
	}
	if i.Embedding != nil {
		c.Embedding = make([]float64, len(i.Embedding))
		copy(c.Embedding, i.Embedding)
	}
	if i.Quality != nil {
		q := *i.Quality
		c.Quality = &q
	}
	if i.AnalyzedAt != nil {
		t := *i.AnalyzedAt
		c.AnalyzedAt = &t
	}
	return &c
}
