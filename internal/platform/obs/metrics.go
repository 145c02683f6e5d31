package obs

import (
	"hempcrete-carbon-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the calculator.
type Metrics struct {
	Calculations  prometheus.Counter
	InvalidInputs prometheus.Counter
	Lookups       *prometheus.CounterVec   // labels: service={geocode,route}, source={live,fallback}
	NetCarbon     prometheus.Histogram     // kg CO2e per calculation
	HTTPRequests  *prometheus.CounterVec   // labels: path, status
	HTTPDuration  *prometheus.HistogramVec // labels: path
	FactorSet     *prometheus.GaugeVec     // labels: name
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()

	prometheus.MustRegister(
		m.Calculations,
		m.InvalidInputs,
		m.Lookups,
		m.NetCarbon,
		m.HTTPRequests,
		m.HTTPDuration,
		m.FactorSet,
	)

	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build
// as many as they need.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Calculations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hempcrete",
			Name:      "calculations_total",
			Help:      "Completed lifecycle carbon calculations.",
		}),
		InvalidInputs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hempcrete",
			Name:      "invalid_inputs_total",
			Help:      "Calculation requests rejected by input validation.",
		}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hempcrete",
			Name:      "lookups_total",
			Help:      "External lookups by service and whether live data or a fallback was used.",
		}, []string{"service", "source"}),
		NetCarbon: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hempcrete",
			Name:      "net_carbon_kg",
			Help:      "Net lifecycle carbon per calculation in kg CO2e.",
			Buckets:   []float64{-100000, -10000, -5000, -1000, -500, -100, 0, 100, 1000, 10000},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hempcrete",
			Name:      "http_requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hempcrete",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"path"}),
		FactorSet: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hempcrete",
			Name:      "factor_set_info",
			Help:      "1 for the emission factor set loaded at startup.",
		}, []string{"name"}),
	}
}

// ObserveCalculation records provenance and outcome of a finished calculation.
func (m *Metrics) ObserveCalculation(c domain.Calculation) {
	if m == nil {
		return
	}
	m.Calculations.Inc()
	m.Lookups.WithLabelValues("geocode", string(c.Location.Source)).Inc()
	m.Lookups.WithLabelValues("route", string(c.Distance.Source)).Inc()
	m.NetCarbon.Observe(c.Total)
}

// ObserveInvalidInput counts a rejected request.
func (m *Metrics) ObserveInvalidInput() {
	if m == nil {
		return
	}
	m.InvalidInputs.Inc()
}
