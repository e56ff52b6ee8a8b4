// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/anonrev/placerank/internal/adapters/repository"
	"github.com/anonrev/placerank/internal/domain/model"
	"github.com/anonrev/placerank/internal/domain/throttle"
	"github.com/anonrev/placerank/internal/domain/types"
	"github.com/anonrev/placerank/internal/domain/vote"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// CreatePlace registers a workplace.
	CreatePlace(ctx context.Context, name, city, address string) (model.Place, error)

	// SubmitVote validates and accepts one submission for a place.
	SubmitVote(ctx context.Context, placeID string, entries map[string]model.RatingEntry) (model.Submission, error)

	// Read operations expose derived rating data.
	Ranking(ctx context.Context, limit int) types.Ranking
	PlaceDetails(ctx context.Context, placeID string) (types.PlaceDetails, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	placesHandler  *PlacesHandler
	voteHandler    *VoteHandler
	rankingHandler *RankingHandler
	detailsHandler *DetailsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		placesHandler:  NewPlacesHandler(deps),
		voteHandler:    NewVoteHandler(deps),
		rankingHandler: NewRankingHandler(deps),
		detailsHandler: NewDetailsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/places/add", MetricsMiddleware(s.placesHandler.HandleAddPlace, "places_add"))
	mux.HandleFunc("/api/places/rate", MetricsMiddleware(s.voteHandler.HandleRatePlace, "places_rate"))
	mux.HandleFunc("/api/places/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "places_ranking"))
	mux.HandleFunc("/api/places/", MetricsMiddleware(s.detailsHandler.HandleGetDetails, "places_details"))
}

type errorResponse struct {
	Code              string `json:"code"`
	Message           string `json:"message"`
	RetryAfterSeconds int64  `json:"retry_after_seconds,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates core errors into their HTTP representation.
// Every rejection carries enough for the caller to decide whether to fix
// input, wait out the cooldown, or abort.
func writeDomainError(w http.ResponseWriter, err error) {
	var throttled *throttle.ThrottledError
	switch {
	case errors.Is(err, vote.ErrMissingPlaceField):
		writeError(w, http.StatusBadRequest, "missing_place_field", err)
	case errors.Is(err, vote.ErrIncompleteSubmission):
		writeError(w, http.StatusBadRequest, "incomplete_submission", err)
	case errors.Is(err, vote.ErrInvalidRatingValue):
		writeError(w, http.StatusBadRequest, "invalid_rating_value", err)
	case errors.As(err, &throttled):
		retry := int64(throttled.Remaining / time.Second)
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Code:              "throttled",
			Message:           err.Error(),
			RetryAfterSeconds: retry,
		})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
