package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vbonduro/shorescore/internal/domain"
)

type locationRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

const maxLocationNameLen = 200

func (req *locationRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "location name required"
	}
	if len(req.Name) > maxLocationNameLen {
		return "location name too long"
	}
	return ""
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		locations []*domain.Location
		err       error
	)
	if query != "" {
		locations, err = s.locations.SearchLocations(r.Context(), query)
	} else {
		locations, err = s.locations.ListLocations(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]locationView, 0, len(locations))
	for _, l := range locations {
		views = append(views, newLocationSummary(l))
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		s.badRequest(w, "invalid lat")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		s.badRequest(w, "invalid lng")
		return
	}
	limit := s.nearbyLimit
	if raw := q.Get("max"); raw != "" {
		if limit, err = strconv.ParseFloat(raw, 64); err != nil {
			s.badRequest(w, "invalid max")
			return
		}
	}

	nearby, err := s.locations.Nearby(r.Context(), lat, lng, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]locationView, 0, len(nearby))
	for _, n := range nearby {
		views = append(views, newNearbyView(n))
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.badRequest(w, msg)
		return
	}

	var creatorID *string
	if id := r.Header.Get(accountHeader); id != "" {
		if _, err := s.votes.GetAccount(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		creatorID = &id
	}

	loc, err := s.locations.CreateLocation(r.Context(), req.Name, req.Description, req.Latitude, req.Longitude, creatorID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newLocationDetail(loc))
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid location id")
		return
	}

	loc, err := s.locations.GetLocation(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newLocationDetail(loc))
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid location id")
		return
	}

	var req locationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.badRequest(w, msg)
		return
	}

	loc, err := s.locations.UpdateLocation(r.Context(), id, req.Name, req.Description, req.Latitude, req.Longitude)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newLocationDetail(loc))
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid location id")
		return
	}

	if err := s.locations.DeleteLocation(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
