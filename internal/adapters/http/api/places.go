// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/anonrev/placerank/internal/domain/model"
)

// addPlaceRequest mirrors the POST /api/places/add payload. Pasted accepts
// the "Name | City | Address" clipboard format as a convenience and is used
// only when the individual fields are empty.
type addPlaceRequest struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Pasted  string `json:"pasted,omitempty"`
}

type addPlaceResponse struct {
	Place model.Place `json:"place"`
}

// PlacesHandler handles place creation requests.
type PlacesHandler struct {
	deps Dependencies
}

// NewPlacesHandler creates a new places handler.
func NewPlacesHandler(deps Dependencies) *PlacesHandler {
	return &PlacesHandler{deps: deps}
}

// HandleAddPlace handles POST /api/places/add requests.
func (h *PlacesHandler) HandleAddPlace(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_place"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req addPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	name, city, address := req.Name, req.City, req.Address
	if name == "" && city == "" && address == "" && req.Pasted != "" {
		name, city, address = ParsePlaceFields(req.Pasted)
	}

	place, err := h.deps.CreatePlace(r.Context(), name, city, address)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addPlaceResponse{Place: place})
}

// ParsePlaceFields splits the "Name | City | Address" clipboard format used
// to copy an existing place's details into a new submission.
func ParsePlaceFields(pasted string) (name, city, address string) {
	parts := strings.SplitN(pasted, " | ", 3)
	if len(parts) != 3 {
		return "", "", ""
	}
	return parts[0], parts[1], parts[2]
}
