// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// DetailsHandler handles place detail requests.
type DetailsHandler struct {
	deps Dependencies
}

// NewDetailsHandler creates a new details handler.
func NewDetailsHandler(deps Dependencies) *DetailsHandler {
	return &DetailsHandler{deps: deps}
}

// HandleGetDetails handles GET /api/places/{id} requests.
func (h *DetailsHandler) HandleGetDetails(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_details"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	placeID := strings.TrimPrefix(r.URL.Path, "/api/places/")
	if placeID == "" || strings.Contains(placeID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	details, err := h.deps.PlaceDetails(r.Context(), placeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}
