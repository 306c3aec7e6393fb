package server

import (
	"errors"
	"net/http"

	"mailevents/internal/logging"
	"mailevents/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealthDB(w http.ResponseWriter, r *http.Request) {
	latency, err := s.st.Ping(r.Context())
	if err != nil {
		logging.Log.WithError(err).Error("database health check failed")
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"latency_ms": float64(latency.Microseconds()) / 1000.0,
	})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, verr := parsePagination(r.URL.Query())
	if verr != nil {
		writeValidationError(w, verr)
		return
	}

	events, err := s.st.SearchEvents(r.Context(), store.EventFilter{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logging.Log.WithError(err).Error("listing events failed")
		writeError(w, http.StatusServiceUnavailable, "event store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleSearchEvents(w http.ResponseWriter, r *http.Request) {
	filter, verr := parseSearchFilter(r.URL.Query())
	if verr != nil {
		writeValidationError(w, verr)
		return
	}

	events, err := s.st.SearchEvents(r.Context(), filter)
	if err != nil {
		logging.Log.WithError(err).Error("searching events failed")
		writeError(w, http.StatusServiceUnavailable, "event store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ev, err := s.st.GetEventByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		logging.Log.WithError(err).WithField("event_id", id).Error("getting event failed")
		writeError(w, http.StatusServiceUnavailable, "event store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleEventBySource(w http.ResponseWriter, r *http.Request) {
	sourceMessageID := r.PathValue("sourceMessageID")

	ev, err := s.st.GetEventBySourceMessageID(r.Context(), sourceMessageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		logging.Log.WithError(err).
			WithField("source_message_id", sourceMessageID).
			Error("getting event by source failed")
		writeError(w, http.StatusServiceUnavailable, "event store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if status := s.checkAdminToken(r); status != 0 {
		// No partial information about which check failed.
		writeError(w, status, http.StatusText(status))
		return
	}

	summary, err := s.imp.Run(r.Context())
	if err != nil {
		logging.Log.WithError(err).Error("import run failed")
		writeError(w, http.StatusServiceUnavailable, "import failed: message source or store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
