package distance

import (
	"context"
	"errors"
	"fmt"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/obs"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NominatimGeocoder implements Geocoder with a Nominatim /search endpoint,
// restricted to a single country.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	country   string
	userAgent string
}

func NewNominatimGeocoder(baseURL, country, userAgent string, timeout time.Duration) (*NominatimGeocoder, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("nominatim base url is empty")
	}
	if strings.TrimSpace(userAgent) == "" {
		// Nominatim's usage policy rejects anonymous clients.
		return nil, errors.New("nominatim user agent is empty")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("nominatim timeout must be positive, got %s", timeout)
	}

	return &NominatimGeocoder{
		session:   &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		country:   country,
		userAgent: userAgent,
	}, nil
}

// GeocodePostalCode resolves postalCode with a single request and returns
// the first match.
func (n *NominatimGeocoder) GeocodePostalCode(
	ctx context.Context,
	postalCode string,
) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.GeocodePostalCode")(&err)

	q := url.Values{}
	q.Set("postalcode", strings.TrimSpace(postalCode))
	if n.country != "" {
		q.Set("country", n.country)
	}
	q.Set("format", "json")

	req, err := newRequest(ctx, n.baseURL+"/search?"+q.Encode(), n.userAgent)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("get geocode request: %w", err)
	}

	resp, err := do(n.session, req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", postalCode)
	}

	lat, err := parseDegrees(decoded[0].Lat, 90)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid latitude for %q: %w", postalCode, err)
	}
	lon, err := parseDegrees(decoded[0].Lon, 180)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid longitude for %q: %w", postalCode, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

func parseDegrees(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.Abs(v) > limit {
		return 0, fmt.Errorf("%v out of range", v)
	}
	return v, nil
}
