package voteseed

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/anonrev/placerank/internal/domain/catalog"
	"github.com/anonrev/placerank/internal/domain/vote"
	"github.com/anonrev/placerank/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	ratingProfiles     = 6
)

// Omission probability per category, in percent. Roughly one in five
// entries is left blank so the seeded data exercises partial submissions.
const omissionPercent = 20

// Constants for rating profile cases.
const (
	caseAverageWorkplace = 0
	caseGoodWorkplace    = 1
	caseBadWorkplace     = 2
	caseGreatWorkplace   = 3
	caseAwfulWorkplace   = 4
	caseMixedWorkplace   = 5
)

var seedCities = []string{
	"Cancun", "Playa del Carmen", "Tulum", "Puerto Vallarta",
	"Los Cabos", "Riviera Maya", "Cozumel", "Acapulco",
}

// getRandomInt returns a uniform random int in [0, n) using crypto/rand.
func getRandomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// generatePlaces creates the requested number of places with unique names.
func generatePlaces(ctx context.Context, config *Config) []SeededPlace {
	logger.Get().Info(ctx, "generating places", logger.Int("numPlaces", config.NumPlaces))

	places := make([]SeededPlace, config.NumPlaces)
	for i := range places {
		suffix := uuid.New().String()[:8]
		places[i] = SeededPlace{
			Name:    "Resort " + suffix,
			City:    seedCities[getRandomInt(int64(len(seedCities)))],
			Address: "Blvd Kukulcan Km " + strconv.Itoa(i+1),
		}
	}
	return places
}

// generateVotes creates VotesPerPlace submissions for each created place.
// Each vote follows a rating profile so the seeded ranking has spread, with
// random omissions mixed in.
func generateVotes(ctx context.Context, config *Config, places []SeededPlace, stats *Stats) []SeededVote {
	votes := make([]SeededVote, 0, len(places)*config.VotesPerPlace)
	for _, p := range places {
		profile := getRandomInt(ratingProfiles)
		for v := 0; v < config.VotesPerPlace; v++ {
			votes = append(votes, SeededVote{
				PlaceID: p.ID,
				Ratings: generateRatings(profile),
			})
		}
	}

	stats.VotesGenerated = len(votes)
	logger.Get().Info(ctx, "generated votes", logger.Int("count", len(votes)))
	return votes
}

// generateRatings produces one ordered ratings array for the catalog, with
// values drawn from the place's profile and random omissions.
func generateRatings(profile int64) []*int {
	ratings := make([]*int, catalog.Size())
	allOmitted := true
	for i := range ratings {
		if getRandomInt(PercentageMultiplier) < omissionPercent {
			continue // omitted
		}
		v := ratingForProfile(profile)
		ratings[i] = &v
		allOmitted = false
	}
	// An all-omitted vote is valid but contributes nothing; keep at least
	// one rated entry so every seeded place lands in the ranking.
	if allOmitted {
		v := ratingForProfile(profile)
		ratings[0] = &v
	}
	return ratings
}

// ratingForProfile draws a star value weighted toward the profile's band.
func ratingForProfile(profile int64) int {
	switch profile {
	case caseAverageWorkplace:
		return 2 + int(getRandomInt(3)) // 2..4
	case caseGoodWorkplace:
		return 3 + int(getRandomInt(3)) // 3..5
	case caseBadWorkplace:
		return 1 + int(getRandomInt(3)) // 1..3
	case caseGreatWorkplace:
		return 4 + int(getRandomInt(2)) // 4..5
	case caseAwfulWorkplace:
		return 1 + int(getRandomInt(2)) // 1..2
	case caseMixedWorkplace:
		return vote.MinRating + int(getRandomInt(int64(vote.MaxRating-vote.MinRating+1)))
	default:
		return vote.MinRating + int(getRandomInt(int64(vote.MaxRating-vote.MinRating+1)))
	}
}
