package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anonrev/placerank/internal/domain/model"
	"github.com/anonrev/placerank/internal/domain/throttle"
	"github.com/anonrev/placerank/pkg/metrics"
)

// placeRecord holds one place and its append-only history.
type placeRecord struct {
	place        model.Place
	history      []model.Submission
	lastAccepted time.Time
}

// MemStore is the in-memory VoteStore. A single mutex guards both the
// cooldown check and the append, which is what makes throttling atomic with
// respect to concurrent submissions for the same place.
type MemStore struct {
	mu    sync.RWMutex
	byID  map[string]*placeRecord
	order []string // place IDs in creation order
	votes int

	now   func() time.Time
	newID func() string
}

// NewMemStore creates an empty in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byID:  make(map[string]*placeRecord),
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreatePlace registers a workplace and assigns its ID.
func (s *MemStore) CreatePlace(ctx context.Context, name, city, address string) (model.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.Place{
		ID:      s.newID(),
		Name:    name,
		City:    city,
		Address: address,
	}
	s.byID[p.ID] = &placeRecord{place: p}
	s.order = append(s.order, p.ID)

	metrics.RecordPlaceCreated()
	metrics.UpdateTotalPlaces(len(s.order))
	return p, nil
}

// AppendVote stamps and appends an already-validated submission, enforcing
// the cooldown under the same lock.
func (s *MemStore) AppendVote(ctx context.Context, placeID string, entries map[string]model.RatingEntry) (model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[placeID]
	if !ok {
		return model.Submission{}, ErrNotFound
	}

	now := s.now()
	if err := throttle.Check(placeID, rec.lastAccepted, now); err != nil {
		metrics.RecordVoteThrottled()
		return model.Submission{}, err
	}

	sub := model.Submission{
		Place:      rec.place,
		Entries:    copyEntries(entries),
		AcceptedAt: now,
	}
	rec.history = append(rec.history, sub)
	rec.lastAccepted = now
	s.votes++

	metrics.RecordVoteAccepted()
	metrics.UpdateTotalVotes(s.votes)
	return sub, nil
}

// Place returns the stored place by ID.
func (s *MemStore) Place(ctx context.Context, placeID string) (model.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[placeID]
	if !ok {
		return model.Place{}, ErrNotFound
	}
	return rec.place, nil
}

// History returns a copy of the place's accepted submissions in acceptance
// order. Readers aggregate over the copy, so a concurrent append can make
// the result stale by at most one in-flight write.
func (s *MemStore) History(ctx context.Context, placeID string) ([]model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[placeID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.Submission, len(rec.history))
	copy(out, rec.history)
	return out, nil
}

// Places lists all places in creation order.
func (s *MemStore) Places(ctx context.Context) []model.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Place, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].place)
	}
	return out
}

// LastAccepted returns the acceptance time of the most recent vote.
func (s *MemStore) LastAccepted(ctx context.Context, placeID string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[placeID]
	if !ok {
		return time.Time{}, ErrNotFound
	}
	return rec.lastAccepted, nil
}

// Counts reports the number of places and accepted votes.
func (s *MemStore) Counts(ctx context.Context) (places, votes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), s.votes
}

func copyEntries(entries map[string]model.RatingEntry) map[string]model.RatingEntry {
	out := make(map[string]model.RatingEntry, len(entries))
	for k, v := range entries {
		out[k] = v
	}
	return out
}
