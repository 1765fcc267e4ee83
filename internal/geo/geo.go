// Package geo resolves the device position. The dashboard treats the
// resolver as an external collaborator: any failure is recoverable and only
// ever surfaces as "location unavailable".
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kelvins/geocoder"

	"weather-dashboard/internal/weather"
)

// DefaultLabel is used when no better name for the resolved position exists.
const DefaultLabel = "Current location"

// Position is a resolved device position with a display label.
type Position struct {
	Lat   float64
	Lon   float64
	Label string
}

// Locator resolves the device position. Implementations must respect the
// context deadline; the orchestrator bounds every resolution attempt.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// IPLocator resolves an approximate position from the caller's public IP via
// ip-api.com. When a Google API key is configured the position label is
// reverse-geocoded to a city name; otherwise the ip-api city (if any) or the
// default label is used.
type IPLocator struct {
	endpoint    string
	http        *http.Client
	geocoderKey string
}

// NewIPLocator creates an IP-based locator. googleAPIKey may be empty.
func NewIPLocator(httpClient *http.Client, googleAPIKey string) *IPLocator {
	return &IPLocator{
		endpoint:    "http://ip-api.com/json",
		http:        httpClient,
		geocoderKey: googleAPIKey,
	}
}

func (l *IPLocator) Locate(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", weather.ErrGeolocationUnavailable, err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", weather.ErrGeolocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("%w: status %d", weather.ErrGeolocationUnavailable, resp.StatusCode)
	}

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
		City   string  `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Position{}, fmt.Errorf("%w: %v", weather.ErrGeolocationUnavailable, err)
	}
	if payload.Status != "success" {
		return Position{}, fmt.Errorf("%w: provider status %q", weather.ErrGeolocationUnavailable, payload.Status)
	}

	pos := Position{Lat: payload.Lat, Lon: payload.Lon, Label: DefaultLabel}
	if payload.City != "" {
		pos.Label = payload.City
	}
	if name := l.reverseGeocode(payload.Lat, payload.Lon); name != "" {
		pos.Label = name
	}
	return pos, nil
}

// reverseGeocode asks Google for a city name at the coordinate. Best effort:
// any failure keeps the label already chosen.
func (l *IPLocator) reverseGeocode(lat, lon float64) string {
	if l.geocoderKey == "" {
		return ""
	}

	geocoder.ApiKey = l.geocoderKey
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{Latitude: lat, Longitude: lon})
	if err != nil || len(addresses) == 0 {
		return ""
	}
	return addresses[0].City
}
