package distance

import (
	"context"
	"errors"
	"fmt"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/obs"
	"hempcrete-carbon-service/internal/ports"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance *float64 `json:"distance"`
		Duration *float64 `json:"duration"`
	} `json:"routes"`
}

// OSRMDistanceProvider implements DistanceProvider against an OSRM
// /route/v1 endpoint. One attempt per call, no retry.
//
// The provider is safe for concurrent use.
type OSRMDistanceProvider struct {
	session   *http.Client
	baseURL   string
	profile   string
	userAgent string
}

func NewOSRMDistanceProvider(baseURL, profile, userAgent string, timeout time.Duration) (*OSRMDistanceProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base url is empty")
	}
	if profile == "" {
		profile = "driving"
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("OSRM timeout must be positive, got %s", timeout)
	}

	return &OSRMDistanceProvider{
		session:   &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		profile:   profile,
		userAgent: userAgent,
	}, nil
}

// GetDistance returns the first route's distance and duration.
func (o *OSRMDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "osrm.GetDistance")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s;%s?overview=false",
		o.baseURL, o.profile, formatLonLat(origin), formatLonLat(destination),
	)

	req, err := newRequest(ctx, endpoint, o.userAgent)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get OSRM route: %w", err)
	}

	resp, err := do(o.session, req)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get OSRM route: %w", err)
	}
	defer resp.Body.Close()

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.DistanceResult{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "" && decoded.Code != "Ok" {
		return ports.DistanceResult{}, fmt.Errorf("OSRM route code %q", decoded.Code)
	}
	if len(decoded.Routes) == 0 {
		return ports.DistanceResult{}, errors.New("OSRM returned no routes")
	}

	route := decoded.Routes[0]
	if route.Distance == nil {
		return ports.DistanceResult{}, errors.New("OSRM route has no distance")
	}
	meters := *route.Distance
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return ports.DistanceResult{}, fmt.Errorf("OSRM returned invalid distance %v", meters)
	}

	result := ports.DistanceResult{DistanceMeters: meters}
	if route.Duration != nil {
		result.DurationSeconds = *route.Duration
	}

	return result, nil
}

// OSRM expects "lon,lat".
func formatLonLat(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lat, 'f', 6, 64)
}
