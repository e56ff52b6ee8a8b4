// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and env vars.
// - External errors are wrapped via this package's sentinel kinds.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory ranking recompute queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ranking recompute workers.
	WorkerCount int `koanf:"worker_count"`

	// RankingLimit is the default length of each ranking list.
	RankingLimit int `koanf:"ranking_limit"`

	// MaxRankingLimit caps GET /api/places/ranking?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		QueueSize:       10_000,
		WorkerCount:     runtime.NumCPU() * 2,
		RankingLimit:    20,
		MaxRankingLimit: 100,
	}
}
