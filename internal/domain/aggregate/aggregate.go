// Package aggregate derives per-place statistics from accepted submissions.
//
// Everything here is a deterministic pure function of a place's history.
// Aggregates are recomputed on demand and never stored as authoritative
// state, so they are always consistent with the accepted submissions they
// were derived from.
package aggregate

import (
	"github.com/anonrev/placerank/internal/domain/catalog"
	"github.com/anonrev/placerank/internal/domain/model"
	"github.com/anonrev/placerank/internal/domain/score"
)

// PlaceStats is the derived view of one place's full history.
type PlaceStats struct {
	ByCategory []model.CategoryAverage
	Overall    float64
	// OverallDefined is false when no submission ever rated any category.
	OverallDefined bool
	VoteCount      int
}

// Compute derives category means and the overall weighted average from the
// full ordered history of accepted submissions for one place. An empty
// history yields all-undefined averages and a zero count, not an error.
func Compute(history []model.Submission) PlaceStats {
	ids := catalog.IDs()
	sums := make(map[string]float64, len(ids))
	counts := make(map[string]int, len(ids))

	for _, sub := range history {
		for id, e := range sub.Entries {
			if e.State != model.Rated {
				continue
			}
			sums[id] += float64(e.Value)
			counts[id]++
		}
	}

	byCategory := make([]model.CategoryAverage, 0, len(ids))
	for _, id := range ids {
		ca := model.CategoryAverage{Category: id}
		if n := counts[id]; n > 0 {
			ca.Average = sums[id] / float64(n)
			ca.Defined = true
		}
		byCategory = append(byCategory, ca)
	}

	overall, defined := score.OverallOfAverages(byCategory)
	return PlaceStats{
		ByCategory:     byCategory,
		Overall:        overall,
		OverallDefined: defined,
		VoteCount:      len(history),
	}
}
