// Package throttle enforces the per-place cooldown between accepted votes.
//
// The cooldown is a fixed policy constant, not user-configurable, and relies
// on the store-held acceptance time of the previous vote. The store runs the
// check under the same lock as the append so two submissions inside the
// window cannot both be accepted.
package throttle

import (
	"errors"
	"fmt"
	"time"
)

// CooldownMonths is the minimum gap between two accepted votes for one place.
const CooldownMonths = 3

// ErrThrottled is the sentinel kind for cooldown rejections.
var ErrThrottled = errors.New("vote throttled")

// ThrottledError reports a rejection inside the cooldown window with the
// remaining wait, so callers can decide to wait rather than retry.
type ThrottledError struct {
	PlaceID   string
	Remaining time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("%s: place %s can be voted again in %s", ErrThrottled, e.PlaceID, e.Remaining.Round(time.Second))
}

func (e *ThrottledError) Unwrap() error { return ErrThrottled }

// Check decides whether a new vote for placeID is allowed at now, given the
// acceptance time of the place's most recent vote. A zero lastAccepted means
// no prior vote and is always allowed.
func Check(placeID string, lastAccepted, now time.Time) error {
	if lastAccepted.IsZero() {
		return nil
	}
	nextAllowed := lastAccepted.AddDate(0, CooldownMonths, 0)
	if now.Before(nextAllowed) {
		return &ThrottledError{PlaceID: placeID, Remaining: nextAllowed.Sub(now)}
	}
	return nil
}
