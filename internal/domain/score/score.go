// Package score computes weighted overall averages from category ratings.
//
// The same formula runs interactively (previewing a submission before it is
// sent) and on the read path (collapsing a place's category means into one
// number), so the two can never diverge.
package score

import (
	"math"

	"github.com/anonrev/placerank/internal/domain/catalog"
	"github.com/anonrev/placerank/internal/domain/model"
)

// Overall computes the weighted average of all non-omitted entries:
//
//	Σ(rating × weight) / Σ(weight)  over contributing categories
//
// Omitted and unanswered entries contribute to neither sum; they are excluded
// entirely, not treated as zero. When nothing contributes the average is
// undefined and ok is false. Accumulation is commutative, so entry order
// never affects the result.
func Overall(entries map[string]model.RatingEntry) (avg float64, ok bool) {
	var weighted, weights float64
	for id, e := range entries {
		if e.State != model.Rated {
			continue
		}
		w := float64(catalog.Weight(id))
		weighted += float64(e.Value) * w
		weights += w
	}
	if weights == 0 {
		return 0, false
	}
	return weighted / weights, true
}

// OverallOfAverages collapses per-category means into a place's overall
// weighted average. Undefined category averages are skipped the same way
// omitted entries are.
func OverallOfAverages(averages []model.CategoryAverage) (avg float64, ok bool) {
	var weighted, weights float64
	for _, ca := range averages {
		if !ca.Defined {
			continue
		}
		w := float64(catalog.Weight(ca.Category))
		weighted += ca.Average * w
		weights += w
	}
	if weights == 0 {
		return 0, false
	}
	return weighted / weights, true
}

// Round2 rounds to two decimal places for display.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
