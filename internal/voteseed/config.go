package voteseed

import "time"

// Config holds configuration for the vote seeding run
type Config struct {
	BaseURL       string        // Base URL of the service
	NumPlaces     int           // Number of places to create
	VotesPerPlace int           // Number of votes to attempt per place
	Limit         int           // Ranking list length to fetch
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	OutputFile    string        // Output file for generated votes
	LogFile       string        // Log file for run output
	Verbose       bool          // Enable verbose logging
}

// SeededPlace pairs a created place with the votes generated for it
type SeededPlace struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// SeededVote is one generated submission; nil entries are omissions
type SeededVote struct {
	PlaceID string `json:"place_id"`
	Ratings []*int `json:"ratings"`
}

// RankingEntry mirrors the ranking payload for verification
type RankingEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	City          string `json:"city"`
	AverageRating string `json:"averageRating"`
	TotalVotes    int    `json:"totalVotes"`
}

// RankingResponse mirrors GET /api/places/ranking
type RankingResponse struct {
	TopPlaces    []RankingEntry `json:"topPlaces"`
	BottomPlaces []RankingEntry `json:"bottomPlaces"`
}

// Stats holds run statistics
type Stats struct {
	PlacesCreated  int
	VotesGenerated int
	VotesSubmitted int
	VotesAccepted  int
	VotesThrottled int
	VotesFailed    int
	RankingEntries int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
