package distance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeocoder(t *testing.T, baseURL string, timeout time.Duration) *NominatimGeocoder {
	t.Helper()
	g, err := NewNominatimGeocoder(baseURL, "USA", "hempcrete-test", timeout)
	require.NoError(t, err)
	return g
}

func TestNominatimGeocodeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "10007", r.URL.Query().Get("postalcode"))
		assert.Equal(t, "USA", r.URL.Query().Get("country"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "hempcrete-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"40.7138","lon":"-74.0072","display_name":"Manhattan"},{"lat":"1","lon":"1"}]`))
	}))
	defer srv.Close()

	c, err := testGeocoder(t, srv.URL, 5*time.Second).GeocodePostalCode(context.Background(), " 10007 ")
	require.NoError(t, err)
	assert.Equal(t, 40.7138, c.Lat)
	assert.Equal(t, -74.0072, c.Lon)
}

func TestNominatimGeocodeFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"empty list", http.StatusOK, `[]`},
		{"malformed json", http.StatusOK, `{"oops"`},
		{"object instead of list", http.StatusOK, `{"error":"bad"}`},
		{"unparsable latitude", http.StatusOK, `[{"lat":"north","lon":"-74.0"}]`},
		{"latitude out of range", http.StatusOK, `[{"lat":"123.4","lon":"-74.0"}]`},
		{"forbidden", http.StatusForbidden, `blocked`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := testGeocoder(t, srv.URL, 5*time.Second).GeocodePostalCode(context.Background(), "10007")
			require.Error(t, err)
		})
	}
}

func TestNominatimGeocodeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testGeocoder(t, srv.URL, 50*time.Millisecond).GeocodePostalCode(context.Background(), "10007")
	require.Error(t, err)
}

func TestNewNominatimGeocoderValidation(t *testing.T) {
	_, err := NewNominatimGeocoder("", "USA", "ua", time.Second)
	require.Error(t, err)

	_, err = NewNominatimGeocoder("http://nominatim", "USA", " ", time.Second)
	require.Error(t, err)

	_, err = NewNominatimGeocoder("http://nominatim", "USA", "ua", -time.Second)
	require.Error(t, err)
}
