// Package worker rebuilds per-place ranking entries from accepted history.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/anonrev/placerank/internal/domain/aggregate"
	"github.com/anonrev/placerank/internal/domain/model"
	"github.com/anonrev/placerank/pkg/logger"
	"github.com/anonrev/placerank/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Event is what workers read off the queue.
type Event = model.RecomputeEvent

// HistoryReader reads a place's accepted submissions.
type HistoryReader interface {
	History(ctx context.Context, placeID string) ([]model.Submission, error)
}

// Publisher receives rebuilt ranking entries.
type Publisher interface {
	Publish(ctx context.Context, e model.PlaceRankingEntry)
	// Drop removes a place whose rebuild found no qualifying votes.
	Drop(ctx context.Context, placeID string)
	Len(ctx context.Context) int
}

// Pending clears the queued mark once a rebuild starts, so votes accepted
// mid-rebuild schedule a fresh one.
type Pending interface {
	Clear(ctx context.Context, id string)
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes recompute events until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// RebuildWorker implements Worker for ranking rebuilds.
type RebuildWorker struct {
	queue     Queue
	histories HistoryReader
	publisher Publisher
	pending   Pending
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewRebuildWorker creates a new worker with configuration options.
func NewRebuildWorker(q Queue, histories HistoryReader, publisher Publisher, pending Pending, opts ...Option) *RebuildWorker {
	w := &RebuildWorker{
		queue:     q,
		histories: histories,
		publisher: publisher,
		pending:   pending,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *RebuildWorker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := w.processEvent(ctx, event); err != nil {
				w.logger.Error(ctx, "error rebuilding ranking entry", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *RebuildWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processEvent rebuilds one place's ranking entry from its full history.
func (w *RebuildWorker) processEvent(ctx context.Context, event Event) error {
	start := time.Now()
	defer func() {
		latency := float64(time.Since(start).Milliseconds())
		metrics.RecordWorkerProcessingLatency(latency)
		metrics.RecordRankingRebuildLatency(latency)
	}()

	// Clear the pending mark before reading history: a vote landing after
	// this point queues its own rebuild instead of being coalesced away.
	w.pending.Clear(ctx, event.PlaceID)

	history, err := w.histories.History(ctx, event.PlaceID)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "history_read_error")
		w.logger.Error(ctx, "history read failed",
			logger.String("placeID", event.PlaceID),
			logger.Error(err),
		)
		return fmt.Errorf("read history for place %s: %w", event.PlaceID, err)
	}

	stats := aggregate.Compute(history)
	if !stats.OverallDefined {
		// Every submission omitted every category; the place has no
		// qualifying votes and must not appear in either list.
		w.publisher.Drop(ctx, event.PlaceID)
	} else {
		var place model.Place
		if len(history) > 0 {
			place = history[len(history)-1].Place
		}
		w.publisher.Publish(ctx, model.PlaceRankingEntry{
			Place:     place,
			Overall:   stats.Overall,
			VoteCount: stats.VoteCount,
		})
	}

	metrics.RecordRankingRebuild()
	metrics.UpdateRankedPlaces(w.publisher.Len(ctx))

	w.logger.Debug(ctx, "ranking entry rebuilt",
		logger.String("placeID", event.PlaceID),
		logger.Int("votes", stats.VoteCount),
		logger.Float64("overall", stats.Overall),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*RebuildWorker
	queue   Queue

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, histories HistoryReader, publisher Publisher, pending Pending) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*RebuildWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewRebuildWorker(
			q,
			histories,
			publisher,
			pending,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()

	for _, w := range p.workers {
		_ = w.Shutdown(ctx)
	}
}

// Shutdown closes the queue and drains all workers.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
