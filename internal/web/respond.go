package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vbonduro/shorescore/internal/domain"
	"github.com/vbonduro/shorescore/internal/photostore"
)

// accountHeader carries the caller's account ID. Authentication happens in
// front of this service.
const accountHeader = "X-Account-ID"

const maxJSONBody = 1 << 20

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response failed", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes. Unexpected errors are
// logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	s.writeJSON(w, status, errorBody{Error: msg})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidScore), errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, photostore.ErrUnsupportedType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// parseID extracts the {id} path variable and returns it as int64.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// requireAccount returns the caller's account ID, writing a 401 if the
// request does not carry one.
func (s *Server) requireAccount(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(accountHeader)
	if id == "" {
		s.writeJSON(w, http.StatusUnauthorized, errorBody{Error: "account required"})
		return "", false
	}
	return id, true
}
