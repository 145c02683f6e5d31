package handlers

import (
	"hempcrete-carbon-service/internal/domain"
	"net/http"
)

// FactorHandler exposes the emission factor table loaded at startup.
type FactorHandler struct {
	Factors domain.EmissionFactors
}

func (h *FactorHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, h.Factors)
}
