package obs

import (
	"bytes"
	"context"
	"errors"
	"hempcrete-carbon-service/internal/domain"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestObserveCalculationCountsProvenance(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObserveCalculation(domain.Calculation{
		Location: domain.Location{Source: domain.SourceLive},
		Distance: domain.Distance{Source: domain.SourceFallback},
		Total:    -1170.9,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calculations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("geocode", "live")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("route", "fallback")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Lookups.WithLabelValues("route", "live")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCalculation(domain.Calculation{})
		m.ObserveInvalidInput()
	})
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	l := newLogger(&buf, "warn", "json")
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	assert.Equal(t, zerolog.InfoLevel, newLogger(&buf, "bogus", "json").GetLevel())
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))

	assert.NotPanics(t, func() {
		err := errors.New("boom")
		Time(ctx, "test.op")(&err)
		Time(ctx, "test.op")(nil)
	})
}
