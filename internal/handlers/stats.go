package handlers

import (
	"net/http"
)

// GetStats returns aggregate statistics over all stored messages.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.storage.GetStats()
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
