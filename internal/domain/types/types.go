// Package types contains read shapes shared between the service and the API.
package types

import (
	"strconv"

	"github.com/anonrev/placerank/internal/domain/model"
	"github.com/anonrev/placerank/internal/domain/score"
)

// RankingEntry is one row of the best/worst lists as served to clients.
// AverageRating is a two-decimal string, matching the display contract.
type RankingEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	City          string `json:"city"`
	AverageRating string `json:"averageRating"`
	TotalVotes    int    `json:"totalVotes"`
}

// CategoryAverage is one per-category row of a place's details. Average is
// null for a category no submission ever rated.
type CategoryAverage struct {
	Category string  `json:"category"`
	Average  *string `json:"average"`
}

// Ranking is the full best/worst response payload.
type Ranking struct {
	TopPlaces    []RankingEntry `json:"topPlaces"`
	BottomPlaces []RankingEntry `json:"bottomPlaces"`
}

// PlaceDetails is the response payload for one place.
type PlaceDetails struct {
	Place      model.Place       `json:"place"`
	ByCategory []CategoryAverage `json:"averagesByCategory"`
	TotalVotes int               `json:"totalVotes"`
}

// FormatRating renders an average for display with two decimals.
func FormatRating(avg float64) string {
	return strconv.FormatFloat(score.Round2(avg), 'f', 2, 64)
}

// RankingEntryFrom converts a derived ranking row to its wire shape.
func RankingEntryFrom(e model.PlaceRankingEntry) RankingEntry {
	return RankingEntry{
		ID:            e.Place.ID,
		Name:          e.Place.Name,
		City:          e.Place.City,
		AverageRating: FormatRating(e.Overall),
		TotalVotes:    e.VoteCount,
	}
}

// CategoryAverageFrom converts a derived category mean to its wire shape.
func CategoryAverageFrom(ca model.CategoryAverage) CategoryAverage {
	out := CategoryAverage{Category: ca.Category}
	if ca.Defined {
		s := FormatRating(ca.Average)
		out.Average = &s
	}
	return out
}
