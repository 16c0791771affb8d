package http

import (
	"context"
	"net/http"
	"time"
)

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthDTO{Status: "ok"})
}

// Ready só responde ok quando o store (e o cache, se houver) responde ao ping.
func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.catalogService.Ping(ctx); err != nil {
		s.logger.Error("Readiness check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, HealthDTO{Status: "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, HealthDTO{Status: "ready"})
}
