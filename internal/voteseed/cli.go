package voteseed

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/anonrev/placerank/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the vote seeding tool.
func ShowHelp() {
	os.Stdout.WriteString(`PlaceRank Vote Seeding Tool
===========================

A concurrent tool for seeding places and votes into a running service and
verifying the resulting ranking against a local recomputation.

Usage:
  go run cmd/seed-votes/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -places int
        Number of places to create (default 100)
  -votes int
        Number of votes to attempt per place (default 3; extras beyond the
        first hit the three-month cooldown and are counted as throttled)
  -limit int
        Ranking list length to fetch (default 20)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated votes (default: seeded_votes_TIMESTAMP.json)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-votes/main.go

  # Seed with custom parameters
  go run cmd/seed-votes/main.go -places 500 -workers 16 -url http://localhost:8080

  # Seed with verbose output
  go run cmd/seed-votes/main.go -verbose -places 50
`)
}
