package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/app"
	"weather-dashboard/internal/geo"
	"weather-dashboard/internal/state"
	"weather-dashboard/internal/weather"
)

type stubFetcher struct {
	cache *stubCache
}

func (s *stubFetcher) FetchAndCache(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	snap := &weather.Snapshot{Meta: weather.Meta{Lat: lat, Lon: lon, FetchedAt: time.Now().UTC()}}
	s.cache.entries[weather.CoordKey(lat, lon)] = snap
	return snap, nil
}

type stubCache struct {
	entries map[string]*weather.Snapshot
}

func (s *stubCache) GetSnapshot(lat, lon float64) *weather.Snapshot {
	return s.entries[weather.CoordKey(lat, lon)]
}

func (s *stubCache) PutSnapshot(lat, lon float64, snap *weather.Snapshot) error {
	s.entries[weather.CoordKey(lat, lon)] = snap
	return nil
}

type stubLocator struct{}

func (stubLocator) Locate(ctx context.Context) (geo.Position, error) {
	return geo.Position{}, weather.ErrGeolocationUnavailable
}

type nopPersistence struct{}

func (nopPersistence) LoadState() ([]byte, error) { return nil, nil }
func (nopPersistence) SaveState([]byte) error     { return nil }

func newTestApp() *fiber.App {
	cache := &stubCache{entries: make(map[string]*weather.Snapshot)}
	orch := app.New(state.Load(nopPersistence{}), &stubFetcher{cache: cache}, cache, stubLocator{}, time.Second)

	router := fiber.New()
	RegisterRoutes(router, orch)
	return router
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestAddCityValidation verifies the inline error contract for the add-city
// input: empty names are rejected, unknown names are 404, duplicates are 409.
func TestAddCityValidation(t *testing.T) {
	router := newTestApp()

	resp, err := router.Test(jsonRequest(http.MethodPost, "/api/v1/cities", `{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp, err = router.Test(jsonRequest(http.MethodPost, "/api/v1/cities", `{"name":"Atlantis"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	resp, err = router.Test(jsonRequest(http.MethodPost, "/api/v1/cities", `{"name":"Kazan"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	resp, err = router.Test(jsonRequest(http.MethodPost, "/api/v1/cities", `{"name":"kazan"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d for duplicate, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestSearchSelectsCity(t *testing.T) {
	router := newTestApp()

	resp, err := router.Test(jsonRequest(http.MethodPost, "/api/v1/search", `{"name":"Moscow"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var v app.View
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("could not decode view: %v", err)
	}
	if v.State != app.StateDisplayed || v.Model == nil || v.Model.HeaderLabel != "Moscow" {
		t.Errorf("expected displayed Moscow view, got %+v", v)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	router := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cities/suggest?q=s", nil)
	resp, err := router.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("could not decode body: %v", err)
	}
	want := []string{"Saint Petersburg", "Samara"}
	if len(body.Suggestions) != len(want) {
		t.Fatalf("expected %v, got %v", want, body.Suggestions)
	}
	for i := range want {
		if body.Suggestions[i] != want[i] {
			t.Errorf("expected %v, got %v", want, body.Suggestions)
		}
	}
}

func TestRemoveCityIndexValidation(t *testing.T) {
	router := newTestApp()

	resp, err := router.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/cities/abc", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}

	// out-of-range removal is a no-op, not an error
	resp, err = router.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/cities/7", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestViewStartsInitializing(t *testing.T) {
	router := newTestApp()

	resp, err := router.Test(httptest.NewRequest(http.MethodGet, "/api/v1/view", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var v app.View
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("could not decode view: %v", err)
	}
	if v.State != app.StateInitializing {
		t.Errorf("expected initializing state before Init, got %s", v.State)
	}
}
