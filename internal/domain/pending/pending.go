// Package pending tracks places with a ranking recompute already in flight.
//
// Accepted votes enqueue a recompute event per place; the tracker coalesces
// them so a burst of votes for one place queues at most one rebuild. Workers
// clear the mark before recomputing, which guarantees a vote accepted during
// a rebuild schedules a fresh one.
package pending

import (
	"context"
	"sync"
	"sync/atomic"
)

// Tracker records place IDs with a queued recompute.
type Tracker interface {
	// MarkPending atomically checks whether id already has a recompute
	// queued and marks it if not. Returns true if it was already pending.
	MarkPending(ctx context.Context, id string) bool

	// Clear removes the pending mark, allowing the next vote to queue a
	// new recompute. Also used to roll back a mark when enqueueing fails.
	Clear(ctx context.Context, id string)

	Size() int64
}

type inMemoryTracker struct {
	mu      sync.Mutex
	pending map[string]struct{}
	size    atomic.Int64
}

// NewInMemoryTracker creates an in-memory pending tracker. The key space is
// bounded by the number of places, so no eviction is needed.
func NewInMemoryTracker() Tracker {
	return &inMemoryTracker{pending: make(map[string]struct{})}
}

func (t *inMemoryTracker) MarkPending(_ context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.pending[id]; ok {
		return true
	}
	t.pending[id] = struct{}{}
	t.size.Add(1)
	return false
}

func (t *inMemoryTracker) Clear(_ context.Context, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.pending[id]; ok {
		delete(t.pending, id)
		t.size.Add(-1)
	}
}

func (t *inMemoryTracker) Size() int64 {
	return t.size.Load()
}
