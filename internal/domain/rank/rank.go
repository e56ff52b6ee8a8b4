// Package rank orders places by overall average for best/worst display.
package rank

import (
	"sort"

	"github.com/anonrev/placerank/internal/domain/model"
)

// Ranking holds the two views over one sorted sequence. Top is ordered best
// first, Bottom worst first; both are cut from the same ascending sort so
// they can never disagree about an ordering.
type Ranking struct {
	Top    []model.PlaceRankingEntry
	Bottom []model.PlaceRankingEntry
}

// Build sorts entries ascending by overall average and returns both ends.
// The sort is stable: entries with equal averages keep their input order, so
// repeated calls over the same input produce identical lists. Callers are
// expected to pass entries in a deterministic order (the store iterates
// places in creation order) and to have already excluded places with an
// undefined overall average.
//
// limit caps the length of each list; limit <= 0 means unbounded.
func Build(entries []model.PlaceRankingEntry, limit int) Ranking {
	ascending := make([]model.PlaceRankingEntry, len(entries))
	copy(ascending, entries)
	sort.SliceStable(ascending, func(i, j int) bool {
		return ascending[i].Overall < ascending[j].Overall
	})

	n := len(ascending)
	if limit <= 0 || limit > n {
		limit = n
	}

	top := make([]model.PlaceRankingEntry, limit)
	for i := range top {
		top[i] = ascending[n-1-i]
	}
	bottom := make([]model.PlaceRankingEntry, limit)
	copy(bottom, ascending[:limit])

	return Ranking{Top: top, Bottom: bottom}
}
