package api

import (
	"hempcrete-carbon-service/internal/api/handlers"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/obs"
	"hempcrete-carbon-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Geocoder ports.Geocoder
	Provider ports.DistanceProvider
	Factors  domain.EmissionFactors
	Origin   domain.Coordinates
	Metrics  *obs.Metrics
	// Exposition handler for /metrics; defaults to the global registry.
	MetricsHandler http.Handler
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	calcHandler := &handlers.CalculationHandler{
		Geocoder: d.Geocoder,
		Provider: d.Provider,
		Factors:  d.Factors,
		Origin:   d.Origin,
		Metrics:  d.Metrics,
	}
	factorHandler := &handlers.FactorHandler{Factors: d.Factors}
	healthHandler := &handlers.HealthHandler{FactorSet: d.Factors.Name}
	dashboard := &handlers.DashboardHandler{Calc: calcHandler}

	metricsHandler := d.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	mux.HandleFunc("/", dashboard.Serve)
	mux.HandleFunc("/health", healthHandler.Get)
	mux.HandleFunc("/factors", factorHandler.Get)
	mux.HandleFunc("/calculations", calcHandler.Create)
	mux.Handle("/metrics", metricsHandler)

	return requestIDMiddleware(loggingMiddleware(d.Metrics, mux))
}
