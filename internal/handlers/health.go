package handlers

import (
	"net/http"

	"sms-ingest/internal/common/logging"
)

// Liveness reports that the process is up. It never touches dependencies.
func (h *Handlers) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness reports whether the service can take traffic. A store that
// fails its health check returns 503 so load balancers stop routing here.
func (h *Handlers) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Health(); err != nil {
		logging.Warn("readiness check failed", logging.Field{Key: "error", Value: err.Error()})
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
