package voteseed

import (
	"fmt"
	"log"

	"github.com/anonrev/placerank/internal/domain/catalog"
	"github.com/anonrev/placerank/internal/domain/score"
	"github.com/anonrev/placerank/internal/domain/types"
)

// verifyResults recomputes each seeded place's weighted average locally and
// checks the returned ranking against it.
func verifyResults(config *Config, votes []SeededVote, ranking *RankingResponse) error {
	log.Println("Verifying results...")

	if ranking == nil || (len(ranking.TopPlaces) == 0 && len(ranking.BottomPlaces) == 0) {
		return fmt.Errorf("no ranking entries to verify")
	}

	expected := expectedAverages(votes)

	mismatches := 0
	for _, entry := range append(append([]RankingEntry{}, ranking.TopPlaces...), ranking.BottomPlaces...) {
		want, ok := expected[entry.ID]
		if !ok {
			// Place from a previous run; nothing local to compare against.
			continue
		}
		if entry.AverageRating != want {
			mismatches++
			log.Printf("mismatch for %s: ranking says %s, local recomputation says %s",
				entry.ID, entry.AverageRating, want)
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d ranking entries disagree with local recomputation", mismatches)
	}

	if err := verifyOrdering(ranking); err != nil {
		return err
	}

	displayRanking(ranking, config.Verbose)
	log.Println("Result verification completed")
	return nil
}

// expectedAverages recomputes per-place overall averages from the votes that
// were accepted (the first vote for each place; later ones hit the cooldown).
func expectedAverages(votes []SeededVote) map[string]string {
	firstVote := make(map[string]SeededVote)
	for _, v := range votes {
		if _, seen := firstVote[v.PlaceID]; !seen {
			firstVote[v.PlaceID] = v
		}
	}

	ids := catalog.IDs()
	expected := make(map[string]string, len(firstVote))
	for placeID, v := range firstVote {
		var sum, weight float64
		for i, r := range v.Ratings {
			if r == nil || i >= len(ids) {
				continue
			}
			w := float64(catalog.Weight(ids[i]))
			sum += float64(*r) * w
			weight += w
		}
		if weight == 0 {
			continue // undefined average; excluded from ranking
		}
		expected[placeID] = types.FormatRating(score.Round2(sum / weight))
	}
	return expected
}

// verifyOrdering checks that top is descending and bottom is ascending.
func verifyOrdering(ranking *RankingResponse) error {
	for i := 1; i < len(ranking.TopPlaces); i++ {
		if ranking.TopPlaces[i].AverageRating > ranking.TopPlaces[i-1].AverageRating {
			return fmt.Errorf("top list not sorted descending at entry %d", i)
		}
	}
	for i := 1; i < len(ranking.BottomPlaces); i++ {
		if ranking.BottomPlaces[i].AverageRating < ranking.BottomPlaces[i-1].AverageRating {
			return fmt.Errorf("bottom list not sorted ascending at entry %d", i)
		}
	}
	return nil
}

// displayRanking shows the returned lists.
func displayRanking(ranking *RankingResponse, verbose bool) {
	log.Printf("Top %d places:", len(ranking.TopPlaces))
	for i, entry := range ranking.TopPlaces {
		log.Printf("   %d. %s (%s) - %s from %d votes",
			i+1, entry.Name, entry.City, entry.AverageRating, entry.TotalVotes)
	}

	if verbose {
		log.Printf("Bottom %d places:", len(ranking.BottomPlaces))
		for i, entry := range ranking.BottomPlaces {
			log.Printf("   %d. %s (%s) - %s from %d votes",
				i+1, entry.Name, entry.City, entry.AverageRating, entry.TotalVotes)
		}
	}
}
