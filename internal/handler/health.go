package handler

import (
	"net/http"
)

// Health is a liveness probe endpoint.
// Returns 200 OK if the server is running.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// GetSweepStats reports the outcome of the last lifecycle sweep.
func (h *Handler) GetSweepStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.lifecycle.LastSweepStats())
}
