// Package server exposes the HTTP surface: health checks, event reads
// and search, and the authenticated admin import action.
package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"mailevents/internal/importer"
	"mailevents/internal/logging"
	"mailevents/internal/store"
)

// Server handles HTTP requests against the event store and importer.
type Server struct {
	st         store.Store
	imp        *importer.Importer
	adminToken string
	mux        *http.ServeMux
}

// New constructs a Server and registers its routes.
func New(st store.Store, imp *importer.Importer, adminToken string) *Server {
	s := &Server{
		st:         st,
		imp:        imp,
		adminToken: adminToken,
		mux:        http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the request-logging handler for this server.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHealth)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /health/db", s.handleHealthDB)
	s.mux.HandleFunc("GET /events", s.handleListEvents)
	s.mux.HandleFunc("GET /events/search", s.handleSearchEvents)
	s.mux.HandleFunc("GET /events/by-source/{sourceMessageID}", s.handleEventBySource)
	s.mux.HandleFunc("GET /events/{id}", s.handleGetEvent)
	s.mux.HandleFunc("POST /events/import", s.handleImport)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logging.Log.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("request handled")
	})
}

// checkAdminToken validates the Authorization header against the
// configured admin token. Returns 0 when authorized, otherwise the HTTP
// status to respond with.
func (s *Server) checkAdminToken(r *http.Request) int {
	header := r.Header.Get("Authorization")
	if header == "" {
		return http.StatusUnauthorized
	}

	const prefix = "Bearer "
	if len(header) < len(prefix) || header[:len(prefix)] != prefix {
		return http.StatusUnauthorized
	}

	token := header[len(prefix):]
	if s.adminToken == "" || !secureCompare(token, s.adminToken) {
		return http.StatusForbidden
	}

	return 0
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Log.WithError(err).Error("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

func writeValidationError(w http.ResponseWriter, ve *ValidationError) {
	type errResp struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	writeJSON(w, http.StatusBadRequest, errResp{Error: ve.Msg, Field: ve.Field})
}
