package voteseed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anonrev/placerank/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete seeding run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting vote seeding run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("places", config.NumPlaces),
		logger.Int("votesPerPlace", config.VotesPerPlace),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("limit", config.Limit),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate and create places
	places := generatePlaces(ctx, config)
	if err := createPlaces(ctx, config, places, stats); err != nil {
		return fmt.Errorf("place creation failed: %w", err)
	}

	// Step 3: Generate votes
	votes := generateVotes(ctx, config, places, stats)

	// Step 4: Submit votes concurrently
	if err := submitVotes(ctx, config, votes, stats); err != nil {
		return fmt.Errorf("vote submission failed: %w", err)
	}

	// Step 5: Wait for ranking rebuilds to drain
	logger.Get().Info(ctx, "waiting for ranking rebuilds")
	time.Sleep(ProcessingDelay)

	// Step 6: Fetch the ranking
	ranking, err := fetchRanking(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("ranking retrieval failed: %w", err)
	}

	// Step 7: Verify results against local recomputation
	if err := verifyResults(config, votes, ranking); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save votes to file
	if err := saveVotesToFile(ctx, config, votes); err != nil {
		logger.Get().Warn(ctx, "failed to save votes to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveVotesToFile saves the generated votes to a JSON file.
func saveVotesToFile(ctx context.Context, config *Config, votes []SeededVote) error {
	if len(votes) == 0 {
		return fmt.Errorf("no votes to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "seeded_votes_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, v := range votes {
		jsonData, err := marshalJSON(v)
		if err != nil {
			return fmt.Errorf("failed to marshal vote %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write vote %d: %w", i, err)
		}

		if i < len(votes)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "votes saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var acceptRate, votesPerSecond float64

	if stats.VotesSubmitted > 0 {
		acceptRate = float64(stats.VotesAccepted) / float64(stats.VotesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		votesPerSecond = float64(stats.VotesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("placesCreated", stats.PlacesCreated),
		logger.Int("votesGenerated", stats.VotesGenerated),
		logger.Int("votesSubmitted", stats.VotesSubmitted),
		logger.Int("votesAccepted", stats.VotesAccepted),
		logger.Int("votesThrottled", stats.VotesThrottled),
		logger.Int("votesFailed", stats.VotesFailed),
		logger.Int("rankingEntries", stats.RankingEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("votesPerSecond", votesPerSecond))
}
