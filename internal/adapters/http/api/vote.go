// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/anonrev/placerank/internal/domain/catalog"
	"github.com/anonrev/placerank/internal/domain/vote"
)

// rateRequest mirrors the POST /api/places/rate payload. Ratings is ordered
// to match the category catalog; a null entry is an explicit omission.
type rateRequest struct {
	ID      string `json:"id"`
	Ratings []*int `json:"ratings"`
}

type rateResponse struct {
	Status     string `json:"status"`
	AcceptedAt string `json:"accepted_at"`
}

// VoteHandler handles vote submission requests.
type VoteHandler struct {
	deps Dependencies
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(deps Dependencies) *VoteHandler {
	return &VoteHandler{deps: deps}
}

// HandleRatePlace handles POST /api/places/rate requests.
func (h *VoteHandler) HandleRatePlace(w http.ResponseWriter, r *http.Request) {
	const op = "api.rate_place"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	// The ordered array must cover the catalog exactly; anything else is an
	// incomplete submission, not a silently truncated one.
	if len(req.Ratings) != catalog.Size() {
		writeDomainError(w, &vote.IncompleteSubmissionError{})
		return
	}

	sub, err := h.deps.SubmitVote(r.Context(), req.ID, vote.EntriesFromOrdered(req.Ratings))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, rateResponse{
		Status:     "accepted",
		AcceptedAt: sub.AcceptedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}
