// Package repository defines the vote store and ranking snapshot state.
package repository

import (
	"context"
	"time"

	"github.com/anonrev/placerank/internal/domain/model"
)

// VoteStore owns places and their append-only submission history. The store
// is the only component that mutates shared state; the aggregation engine
// reads snapshots of it.
type VoteStore interface {
	// CreatePlace registers a workplace and assigns its opaque ID.
	CreatePlace(ctx context.Context, name, city, address string) (model.Place, error)

	// AppendVote accepts a validated submission for placeID, stamping it
	// with the acceptance time. The cooldown check and the append are
	// atomic per place: inside the window it fails with a ThrottledError
	// and nothing is written. Returns ErrNotFound for unknown places.
	AppendVote(ctx context.Context, placeID string, entries map[string]model.RatingEntry) (model.Submission, error)

	// Place returns the stored place. Returns ErrNotFound when unknown.
	Place(ctx context.Context, placeID string) (model.Place, error)

	// History returns the full ordered accepted history for a place.
	// Returns ErrNotFound when the place is unknown.
	History(ctx context.Context, placeID string) ([]model.Submission, error)

	// Places lists all places in creation order. Creation order is the
	// deterministic tie-break order for ranking.
	Places(ctx context.Context) []model.Place

	// LastAccepted returns the acceptance time of the most recent vote,
	// or the zero time when the place has none.
	LastAccepted(ctx context.Context, placeID string) (time.Time, error)

	// Counts reports the number of places and accepted votes.
	Counts(ctx context.Context) (places, votes int)
}
