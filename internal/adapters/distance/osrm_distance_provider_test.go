package distance

import (
	"context"
	"errors"
	"hempcrete-carbon-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPort = domain.Coordinates{Lat: 40.6840, Lon: -74.1419}
	testSite = domain.Coordinates{Lat: 40.7128, Lon: -74.0060}
)

func testProvider(t *testing.T, baseURL string, timeout time.Duration) *OSRMDistanceProvider {
	t.Helper()
	p, err := NewOSRMDistanceProvider(baseURL, "driving", "hempcrete-test", timeout)
	require.NoError(t, err)
	return p
}

func TestOSRMGetDistanceSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/-74.141900,40.684000;-74.006000,40.712800", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("overview"))
		assert.Equal(t, "hempcrete-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":18250.4,"duration":1320.5},{"distance":99999}]}`))
	}))
	defer srv.Close()

	res, err := testProvider(t, srv.URL, 5*time.Second).GetDistance(context.Background(), testPort, testSite)
	require.NoError(t, err)
	assert.Equal(t, 18250.4, res.DistanceMeters)
	assert.Equal(t, 1320.5, res.DurationSeconds)
}

func TestOSRMGetDistanceFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `boom`},
		{"not found", http.StatusBadRequest, `{"code":"InvalidQuery"}`},
		{"malformed json", http.StatusOK, `{"routes":[`},
		{"no routes", http.StatusOK, `{"code":"Ok","routes":[]}`},
		{"no route code", http.StatusOK, `{"code":"NoRoute","routes":[]}`},
		{"missing distance", http.StatusOK, `{"code":"Ok","routes":[{"duration":5}]}`},
		{"negative distance", http.StatusOK, `{"code":"Ok","routes":[{"distance":-3}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := testProvider(t, srv.URL, 5*time.Second).GetDistance(context.Background(), testPort, testSite)
			require.Error(t, err)
		})
	}
}

func TestOSRMStatusErrorIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	_, err := testProvider(t, srv.URL, 5*time.Second).GetDistance(context.Background(), testPort, testSite)
	require.Error(t, err)

	var he *HTTPStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
	assert.Equal(t, "slow down", he.Body)
}

func TestOSRMGetDistanceTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := testProvider(t, srv.URL, 50*time.Millisecond).GetDistance(context.Background(), testPort, testSite)
	require.Error(t, err)
}

func TestNewOSRMDistanceProviderValidation(t *testing.T) {
	_, err := NewOSRMDistanceProvider("  ", "driving", "", time.Second)
	require.Error(t, err)

	_, err = NewOSRMDistanceProvider("http://osrm", "driving", "", 0)
	require.Error(t, err)

	p, err := NewOSRMDistanceProvider("http://osrm/", "", "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "http://osrm", p.baseURL)
	assert.Equal(t, "driving", p.profile)
}

func TestMockDistanceProvider(t *testing.T) {
	p := NewMockDistanceProvider([]MockPair{{From: testPort, To: testSite, Meters: 1000, Seconds: 60}})

	r, err := p.GetDistance(context.Background(), testPort, testSite)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, r.DistanceMeters)

	_, err = p.GetDistance(context.Background(), testSite, testPort)
	require.Error(t, err)
	assert.Equal(t, 2, p.Calls)
}
