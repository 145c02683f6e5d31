package handlers

import (
	"errors"
	"hempcrete-carbon-service/internal/api/dto"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/obs"
	"hempcrete-carbon-service/internal/ports"
	"hempcrete-carbon-service/internal/services"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// CalculationHandler carries everything one calculation needs. All fields
// are fixed at startup.
type CalculationHandler struct {
	Geocoder ports.Geocoder
	Provider ports.DistanceProvider
	Factors  domain.EmissionFactors
	Origin   domain.Coordinates
	Metrics  *obs.Metrics
}

// Create runs one lifecycle calculation and returns the full result set.
func (h *CalculationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CalculationRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	calc, err := h.calculate(r, domain.ProjectInput{
		WallAreaSqFt:     req.WallAreaSqFt,
		PostalCode:       req.PostalCode,
		Compare:          req.Compare,
		EPDPerCubicMeter: req.EPDPerCubicMeter,
	})
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("calculation failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toResponse(calc))
}

func (h *CalculationHandler) calculate(r *http.Request, in domain.ProjectInput) (domain.Calculation, error) {
	calc, err := services.Calculate(r.Context(), services.CalculateRequest{
		Input:   in,
		Factors: h.Factors,
		Origin:  h.Origin,
	}, h.Geocoder, h.Provider)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.Metrics.ObserveInvalidInput()
		}
		return domain.Calculation{}, err
	}

	h.Metrics.ObserveCalculation(calc)
	log.Info().
		Str("req_id", obs.RequestID(r.Context())).
		Float64("du", calc.DeclaredUnits).
		Float64("km", calc.Distance.Kilometers).
		Str("geocode", string(calc.Location.Source)).
		Str("route", string(calc.Distance.Source)).
		Float64("total_kg_co2e", calc.Total).
		Msg("calculation complete")

	return calc, nil
}

func toResponse(c domain.Calculation) dto.CalculationResponse {
	res := dto.CalculationResponse{
		WallAreaSqFt:  c.Input.WallAreaSqFt,
		PostalCode:    c.Input.PostalCode,
		FactorSet:     c.FactorSet,
		DeclaredUnits: c.DeclaredUnits,
		Origin:        dto.PointResponse{Lat: c.Origin.Lat, Lon: c.Origin.Lon},
		Location: dto.LocationResponse{
			PointResponse: dto.PointResponse{Lat: c.Location.Point.Lat, Lon: c.Location.Point.Lon},
			Source:        string(c.Location.Source),
		},
		Distance: dto.DistanceResponse{
			Kilometers: c.Distance.Kilometers,
			Source:     string(c.Distance.Source),
		},
		Modules: dto.ModulesResponse{
			A1: c.Modules.A1,
			A2: c.Modules.A2,
			A4: c.Modules.A4,
			A5: c.Modules.A5,
			B1: c.Modules.B1,
			C:  c.Modules.C,
		},
		Total:        c.Total,
		CalculatedAt: c.CalculatedAt,
	}

	if c.Comparison != nil {
		res.Comparison = &dto.ComparisonResponse{
			EPDPerCubicMeter: c.Comparison.EPDPerCubicMeter,
			PerDU:            c.Comparison.PerDU,
			Total:            c.Comparison.Total,
			Delta:            c.Comparison.Delta,
		}
	}

	return res
}
