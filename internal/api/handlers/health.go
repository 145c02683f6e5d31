package handlers

import (
	"net/http"
)

// HealthHandler reports liveness and the factor set the process loaded.
type HealthHandler struct {
	FactorSet string
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":     "ok",
		"factor_set": h.FactorSet,
	})
}
