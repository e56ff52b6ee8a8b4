package vote

import (
	"errors"
	"fmt"
)

// Sentinel kinds for submission validation errors. The typed errors below
// unwrap to these so callers can branch with errors.Is while still reading
// the offending field or category from the concrete type.
var (
	ErrMissingPlaceField    = errors.New("missing place field")
	ErrIncompleteSubmission = errors.New("incomplete submission")
	ErrInvalidRatingValue   = errors.New("invalid rating value")
)

// MissingPlaceFieldError reports a blank required place field.
type MissingPlaceFieldError struct {
	Field string
}

func (e *MissingPlaceFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingPlaceField, e.Field)
}

func (e *MissingPlaceFieldError) Unwrap() error { return ErrMissingPlaceField }

// IncompleteSubmissionError reports categories left unanswered (or unknown
// categories smuggled in). Missing lists catalog categories without an
// answered or omitted entry, in catalog order.
type IncompleteSubmissionError struct {
	Missing []string
	Unknown []string
}

func (e *IncompleteSubmissionError) Error() string {
	switch {
	case len(e.Unknown) > 0:
		return fmt.Sprintf("%s: unknown categories %v", ErrIncompleteSubmission, e.Unknown)
	case len(e.Missing) > 0:
		return fmt.Sprintf("%s: unanswered categories %v", ErrIncompleteSubmission, e.Missing)
	default:
		return ErrIncompleteSubmission.Error()
	}
}

func (e *IncompleteSubmissionError) Unwrap() error { return ErrIncompleteSubmission }

// InvalidRatingValueError reports a rated entry outside the 1..5 star range.
type InvalidRatingValueError struct {
	Category string
	Value    int
}

func (e *InvalidRatingValueError) Error() string {
	return fmt.Sprintf("%s: %d for category %q", ErrInvalidRatingValue, e.Value, e.Category)
}

func (e *InvalidRatingValueError) Unwrap() error { return ErrInvalidRatingValue }
