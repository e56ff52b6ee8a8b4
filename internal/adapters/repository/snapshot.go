package repository

import (
	"context"
	"sync"

	"github.com/anonrev/placerank/internal/domain/model"
)

// RankingSnapshot holds the per-place ranking entries maintained by the
// recompute workers. Reads serve whatever the workers have published so far;
// rankings may trail accepted writes by an in-flight rebuild.
type RankingSnapshot struct {
	mu      sync.RWMutex
	entries map[string]model.PlaceRankingEntry
}

// NewRankingSnapshot creates an empty snapshot holder.
func NewRankingSnapshot() *RankingSnapshot {
	return &RankingSnapshot{entries: make(map[string]model.PlaceRankingEntry)}
}

// Publish replaces the entry for a place.
func (s *RankingSnapshot) Publish(ctx context.Context, e model.PlaceRankingEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Place.ID] = e
}

// Drop removes a place from the snapshot. Used when a rebuild finds no
// qualifying votes (every entry omitted), which excludes the place from both
// ranking lists.
func (s *RankingSnapshot) Drop(ctx context.Context, placeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, placeID)
}

// Get returns the published entry for a place, if any.
func (s *RankingSnapshot) Get(ctx context.Context, placeID string) (model.PlaceRankingEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[placeID]
	return e, ok
}

// Len returns the number of ranked places.
func (s *RankingSnapshot) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
