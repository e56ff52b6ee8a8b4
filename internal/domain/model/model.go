// Package model contains domain models passed between layers.
package model

import "time"

// Place is one real-world workplace tracked by the store.
type Place struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// EntryState is the three-valued answer state for one category.
// A category starts Unanswered; a submission is only acceptable once every
// category is either Rated or Omitted. Omitted is an explicit, recorded
// choice and is distinct from never answering.
type EntryState int

const (
	Unanswered EntryState = iota
	Rated
	Omitted
)

// RatingEntry is one vote's value for one category. Value is meaningful only
// when State is Rated.
type RatingEntry struct {
	State EntryState
	Value int
}

// Rate returns an entry carrying a concrete star value.
func Rate(value int) RatingEntry {
	return RatingEntry{State: Rated, Value: value}
}

// Omit returns an explicitly omitted entry. Any previously held value is
// discarded; re-rating after un-omitting requires a fresh value.
func Omit() RatingEntry {
	return RatingEntry{State: Omitted}
}

// Submission is one vote: place identity plus exactly one entry per catalog
// category, keyed by category ID. AcceptedAt is assigned by the store at
// acceptance time and is zero until then.
type Submission struct {
	Place      Place
	Entries    map[string]RatingEntry
	AcceptedAt time.Time
}

// CategoryAverage is the derived mean of all non-omitted entries recorded for
// one category of one place. Defined is false when no entry ever contributed.
type CategoryAverage struct {
	Category string
	Average  float64
	Defined  bool
}

// PlaceRankingEntry is the derived per-place row used for sorted display.
type PlaceRankingEntry struct {
	Place     Place
	Overall   float64
	VoteCount int
}

// RecomputeEvent asks the ranking pipeline to rebuild one place's entry.
type RecomputeEvent struct {
	PlaceID string
}
