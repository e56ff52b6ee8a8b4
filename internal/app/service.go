// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	eventqueue "github.com/anonrev/placerank/internal/adapters/mq/queue"
	workerpool "github.com/anonrev/placerank/internal/adapters/mq/worker"
	"github.com/anonrev/placerank/internal/adapters/repository"
	"github.com/anonrev/placerank/internal/domain/aggregate"
	"github.com/anonrev/placerank/internal/domain/model"
	"github.com/anonrev/placerank/internal/domain/pending"
	"github.com/anonrev/placerank/internal/domain/rank"
	"github.com/anonrev/placerank/internal/domain/score"
	"github.com/anonrev/placerank/internal/domain/types"
	"github.com/anonrev/placerank/internal/domain/vote"
	"github.com/anonrev/placerank/pkg/logger"
	"github.com/anonrev/placerank/pkg/metrics"
)

// Service implements the API dependencies for the rating system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.VoteStore
	snapshot *repository.RankingSnapshot
	pending  pending.Tracker
	queue    eventqueue.Queue
	pool     *workerpool.Pool

	// Configuration
	workerCount     int
	queueSize       int
	rankingLimit    int
	maxRankingLimit int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of recompute worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the recompute queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithRankingLimit sets the default length of each ranking list.
func WithRankingLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.rankingLimit = limit
		}
	}
}

// WithMaxRankingLimit caps the caller-supplied ranking limit.
func WithMaxRankingLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxRankingLimit = limit
		}
	}
}

// WithStore injects a custom vote store. Tests use this to control the
// store clock and step through the cooldown window.
func WithStore(store repository.VoteStore) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       10_000,
		rankingLimit:    20,
		maxRankingLimit: 100,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting rating service...")

	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	s.snapshot = repository.NewRankingSnapshot()
	s.pending = pending.NewInMemoryTracker()
	s.queue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.store, s.snapshot, s.pending)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "rating service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping rating service...")

	// Closing the queue first lets workers drain what is left.
	if q, ok := s.queue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "rating service stopped")
}

// CreatePlace registers a new workplace after checking its required fields.
func (s *Service) CreatePlace(ctx context.Context, name, city, address string) (model.Place, error) {
	candidate := model.Place{Name: name, City: city, Address: address}
	if err := vote.ValidatePlace(candidate); err != nil {
		metrics.RecordVoteRejected("missing_place_field")
		return model.Place{}, err
	}

	p, err := s.store.CreatePlace(ctx, name, city, address)
	if err != nil {
		return model.Place{}, fmt.Errorf("create place: %w", err)
	}

	s.logger.Debug(ctx, "place created",
		logger.String("placeID", p.ID),
		logger.String("city", p.City),
	)
	return p, nil
}

// SubmitVote validates and accepts one submission for a place, then
// schedules a ranking rebuild. Validation failures and cooldown rejections
// come back as typed errors; nothing is written on either.
func (s *Service) SubmitVote(ctx context.Context, placeID string, entries map[string]model.RatingEntry) (model.Submission, error) {
	place, err := s.store.Place(ctx, placeID)
	if err != nil {
		return model.Submission{}, err
	}

	if _, err := vote.Validate(model.Submission{Place: place, Entries: entries}); err != nil {
		metrics.RecordVoteRejected(rejectionReason(err))
		return model.Submission{}, err
	}

	sub, err := s.store.AppendVote(ctx, placeID, entries)
	if err != nil {
		return model.Submission{}, err
	}

	s.scheduleRebuild(ctx, placeID)
	return sub, nil
}

// PreviewOverall computes the weighted average a submission would score,
// rounded for display. ok is false when every entry is omitted.
func (s *Service) PreviewOverall(ctx context.Context, entries map[string]model.RatingEntry) (avg float64, ok bool) {
	avg, ok = score.Overall(entries)
	if !ok {
		return 0, false
	}
	return score.Round2(avg), true
}

// Ranking returns the best and worst places by overall average, each list
// capped at limit (or the configured default when limit <= 0). The lists are
// served from the worker-maintained snapshot and may trail an in-flight
// rebuild.
func (s *Service) Ranking(ctx context.Context, limit int) types.Ranking {
	switch {
	case limit <= 0:
		limit = s.rankingLimit
	case limit > s.maxRankingLimit:
		limit = s.maxRankingLimit
	}

	// Collect in creation order so equal averages keep a stable order
	// across calls.
	var entries []model.PlaceRankingEntry
	for _, p := range s.store.Places(ctx) {
		if e, ok := s.snapshot.Get(ctx, p.ID); ok {
			entries = append(entries, e)
		}
	}

	ranking := rank.Build(entries, limit)

	out := types.Ranking{
		TopPlaces:    make([]types.RankingEntry, 0, len(ranking.Top)),
		BottomPlaces: make([]types.RankingEntry, 0, len(ranking.Bottom)),
	}
	for _, e := range ranking.Top {
		out.TopPlaces = append(out.TopPlaces, types.RankingEntryFrom(e))
	}
	for _, e := range ranking.Bottom {
		out.BottomPlaces = append(out.BottomPlaces, types.RankingEntryFrom(e))
	}
	return out
}

// PlaceDetails returns one place with its per-category averages, recomputed
// on demand from the full accepted history.
func (s *Service) PlaceDetails(ctx context.Context, placeID string) (types.PlaceDetails, error) {
	place, err := s.store.Place(ctx, placeID)
	if err != nil {
		return types.PlaceDetails{}, err
	}
	history, err := s.store.History(ctx, placeID)
	if err != nil {
		return types.PlaceDetails{}, err
	}

	stats := aggregate.Compute(history)

	details := types.PlaceDetails{
		Place:      place,
		ByCategory: make([]types.CategoryAverage, 0, len(stats.ByCategory)),
		TotalVotes: stats.VoteCount,
	}
	for _, ca := range stats.ByCategory {
		details.ByCategory = append(details.ByCategory, types.CategoryAverageFrom(ca))
	}
	return details, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		places, votes := s.store.Counts(ctx)
		stats["queueLength"] = s.queue.Len(ctx)
		stats["totalPlaces"] = places
		stats["totalVotes"] = votes
		stats["rankedPlaces"] = s.snapshot.Len(ctx)
		stats["pendingRebuilds"] = s.pending.Size()

		metrics.UpdateQueueSize(s.queue.Len(ctx))
		metrics.UpdateTotalPlaces(places)
		metrics.UpdateTotalVotes(votes)
	}

	return stats
}

// scheduleRebuild queues a ranking rebuild for a place, coalescing with any
// rebuild already queued. On backpressure it falls back to rebuilding
// inline so no accepted vote is ever missing from the ranking.
func (s *Service) scheduleRebuild(ctx context.Context, placeID string) {
	if s.pending.MarkPending(ctx, placeID) {
		// A rebuild is already queued; it will pick up this vote.
		return
	}

	if s.queue.Enqueue(ctx, model.RecomputeEvent{PlaceID: placeID}) {
		return
	}

	s.pending.Clear(ctx, placeID)
	s.logger.Warn(ctx, "recompute queue full, rebuilding inline",
		logger.String("placeID", placeID),
	)
	s.rebuildInline(ctx, placeID)
}

// rebuildInline mirrors the worker rebuild for the backpressure path.
func (s *Service) rebuildInline(ctx context.Context, placeID string) {
	start := time.Now()

	history, err := s.store.History(ctx, placeID)
	if err != nil {
		metrics.RecordErrorByComponent("service", "history_read_error")
		s.logger.Error(ctx, "inline rebuild failed", logger.Error(err))
		return
	}

	stats := aggregate.Compute(history)
	if !stats.OverallDefined {
		s.snapshot.Drop(ctx, placeID)
	} else {
		s.snapshot.Publish(ctx, model.PlaceRankingEntry{
			Place:     history[len(history)-1].Place,
			Overall:   stats.Overall,
			VoteCount: stats.VoteCount,
		})
	}

	metrics.RecordRankingRebuild()
	metrics.RecordRankingRebuildLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateRankedPlaces(s.snapshot.Len(ctx))
}

// rejectionReason maps a validation error to its metrics label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, vote.ErrMissingPlaceField):
		return "missing_place_field"
	case errors.Is(err, vote.ErrIncompleteSubmission):
		return "incomplete_submission"
	case errors.Is(err, vote.ErrInvalidRatingValue):
		return "invalid_rating_value"
	default:
		return "unknown"
	}
}
