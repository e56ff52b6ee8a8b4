package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock overrides the acceptance-time source. Used by tests to step
// through the cooldown window.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides place ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *MemStore) {
		if newID != nil {
			s.newID = newID
		}
	}
}
