package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// Client fetches weather data for a coordinate from Open-Meteo. The provider
// needs no API key; timezone=auto makes all returned timestamps local to the
// queried coordinate.
type Client struct {
	baseURL string
	http    *http.Client
	cache   SnapshotCache
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates an Open-Meteo client writing through to the given cache.
func NewClient(httpClient *http.Client, cache SnapshotCache) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL: "https://api.open-meteo.com/v1/forecast",
		http:    httpClient,
		cache:   cache,
		circuit: cb,
	}
}

// Fetch requests current conditions, hourly relative humidity and a multi-day
// daily forecast in one call, then stamps the payload with the queried
// coordinates and fetch time for later cache re-keying.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current_weather", "true")
		values.Set("hourly", "relativehumidity_2m")
		values.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode,sunrise,sunset")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequest(ctx, c.http, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	snap.Meta = Meta{
		Lat:       lat,
		Lon:       lon,
		FetchedAt: time.Now().UTC(),
	}

	return &snap, nil
}

// FetchAndCache fetches a snapshot and overwrites the cache entry for the
// coordinate before returning it.
func (c *Client) FetchAndCache(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	snap, err := c.Fetch(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if err := c.cache.PutSnapshot(lat, lon, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
