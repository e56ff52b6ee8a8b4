// Package vote validates candidate submissions before they reach the store.
//
// Validation is a pure predicate: it inspects a submission and either returns
// it unchanged or reports exactly what the submitter must fix. The same rules
// gate both interactive previews and the store boundary, so a rejected
// submission can never leak into a place's accepted history.
package vote

import (
	"strings"

	"github.com/anonrev/placerank/internal/domain/catalog"
	"github.com/anonrev/placerank/internal/domain/model"
)

// Star rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Validate checks a candidate submission for completeness and well-formed
// ratings. On success the submission is returned unchanged.
//
// Rules, in order of detection:
//   - name, city and address must be non-blank (MissingPlaceFieldError)
//   - every entry must belong to the catalog (IncompleteSubmissionError)
//   - every catalog category must be Rated or explicitly Omitted; an absent
//     key or an Unanswered entry fails (IncompleteSubmissionError)
//   - every Rated value must lie in [MinRating, MaxRating]
//     (InvalidRatingValueError)
func Validate(s model.Submission) (model.Submission, error) {
	if err := ValidatePlace(s.Place); err != nil {
		return s, err
	}

	var unknown []string
	for id := range s.Entries {
		if !catalog.Contains(id) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return s, &IncompleteSubmissionError{Unknown: unknown}
	}

	var missing []string
	for _, id := range catalog.IDs() {
		entry, ok := s.Entries[id]
		if !ok || entry.State == model.Unanswered {
			missing = append(missing, id)
			continue
		}
		if entry.State == model.Rated && (entry.Value < MinRating || entry.Value > MaxRating) {
			return s, &InvalidRatingValueError{Category: id, Value: entry.Value}
		}
	}
	if len(missing) > 0 {
		return s, &IncompleteSubmissionError{Missing: missing}
	}

	return s, nil
}

// ValidatePlace checks the required free-text place fields. Shared by place
// creation and submission validation so both reject the same blanks.
func ValidatePlace(p model.Place) error {
	for _, f := range []struct {
		name, value string
	}{
		{"name", p.Name},
		{"city", p.City},
		{"address", p.Address},
	} {
		if strings.TrimSpace(f.value) == "" {
			return &MissingPlaceFieldError{Field: f.name}
		}
	}
	return nil
}

// EntriesFromOrdered maps an ordered wire array (nil = omitted) onto catalog
// categories. The array order is the catalog order; a length mismatch is left
// for Validate to report as an incomplete submission.
func EntriesFromOrdered(ordered []*int) map[string]model.RatingEntry {
	ids := catalog.IDs()
	entries := make(map[string]model.RatingEntry, len(ordered))
	for i, v := range ordered {
		if i >= len(ids) {
			break
		}
		if v == nil {
			entries[ids[i]] = model.Omit()
		} else {
			entries[ids[i]] = model.Rate(*v)
		}
	}
	return entries
}
