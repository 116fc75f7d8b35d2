package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vbonduro/shorescore/internal/photostore"
	"github.com/vbonduro/shorescore/internal/service"
)

type Server struct {
	locations     *service.LocationService
	votes         *service.VoteService
	photoStore    photostore.PhotoStore
	mux           *http.ServeMux
	nearbyLimit   float64
	maxPhotoBytes int64
	logger        *slog.Logger
}

// NewServer builds the JSON API. nearbyLimit is the search radius, in
// degrees, used when a nearby query does not supply one.
func NewServer(locations *service.LocationService, votes *service.VoteService, ps photostore.PhotoStore, nearbyLimit float64, logger *slog.Logger) *Server {
	s := &Server{
		locations:     locations,
		votes:         votes,
		photoStore:    ps,
		mux:           http.NewServeMux(),
		nearbyLimit:   nearbyLimit,
		maxPhotoBytes: maxPhotoSize,
		logger:        logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /locations", s.handleListLocations)
	s.mux.HandleFunc("GET /locations/nearby", s.handleNearby)
	s.mux.HandleFunc("POST /locations", s.handleCreateLocation)
	s.mux.HandleFunc("GET /locations/{id}", s.handleGetLocation)
	s.mux.HandleFunc("PUT /locations/{id}", s.handleUpdateLocation)
	s.mux.HandleFunc("DELETE /locations/{id}", s.handleDeleteLocation)
	s.mux.HandleFunc("POST /locations/{id}/photos", s.handleUploadPhoto)
	s.mux.HandleFunc("GET /locations/{id}/photo", s.handleGetPhoto)
	s.mux.HandleFunc("DELETE /photos/{id}", s.handleDeletePhoto)
	s.mux.HandleFunc("POST /accounts", s.handleCreateAccount)
	s.mux.HandleFunc("GET /accounts/{id}/votes", s.handleAccountVotes)
	s.mux.HandleFunc("GET /tags/{id}", s.handleGetTag)
	s.mux.HandleFunc("POST /tags/{id}/votes", s.handleVoteTag)
	s.mux.HandleFunc("GET /features/{id}", s.handleGetFeature)
	s.mux.HandleFunc("POST /features/{id}/scores", s.handleScoreFeature)
}

// securityHeaders sets the standard hardening headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}
