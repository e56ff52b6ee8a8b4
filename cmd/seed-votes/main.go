package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/anonrev/placerank/internal/voteseed"
)

// Default configuration constants.
const (
	defaultNumPlaces     = 100
	defaultVotesPerPlace = 3
	defaultLimit         = 20
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numPlaces     = flag.Int("places", defaultNumPlaces, "Number of places to create")
		votesPerPlace = flag.Int("votes", defaultVotesPerPlace, "Number of votes to attempt per place")
		limit         = flag.Int("limit", defaultLimit, "Ranking list length to fetch")
		workers       = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile    = flag.String("output", "", "Output file for generated votes (default: seeded_votes_TIMESTAMP.json)")
		logFile       = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		help          = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		voteseed.ShowHelp()
		return
	}

	// Setup logging
	if err := voteseed.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &voteseed.Config{
		BaseURL:       *baseURL,
		NumPlaces:     *numPlaces,
		VotesPerPlace: *votesPerPlace,
		Limit:         *limit,
		Workers:       *workers,
		Timeout:       *timeout,
		OutputFile:    *outputFile,
		LogFile:       *logFile,
		Verbose:       *verbose,
	}

	// Run the seeding
	if err := voteseed.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
