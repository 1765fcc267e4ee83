package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"weather-dashboard/internal/cities"
	"weather-dashboard/internal/geo"
	"weather-dashboard/internal/state"
	"weather-dashboard/internal/view"
	"weather-dashboard/internal/weather"
)

// ViewState names the orchestrator's active-view states.
type ViewState string

const (
	StateInitializing        ViewState = "initializing"
	StateResolvingLocation   ViewState = "resolving_location"
	StateLoading             ViewState = "loading"
	StateDisplayed           ViewState = "displayed"
	StateError               ViewState = "error"
	StateLocationUnavailable ViewState = "location_unavailable"
)

// View is what the UI collaborator renders: the state machine position plus,
// depending on it, a display model or an error message.
type View struct {
	State ViewState          `json:"state"`
	Model *view.DisplayModel `json:"model,omitempty"`
	Error string             `json:"error,omitempty"`
}

// Fetcher is the slice of the weather client the orchestrator needs.
type Fetcher interface {
	FetchAndCache(ctx context.Context, lat, lon float64) (*weather.Snapshot, error)
}

// Orchestrator ties location resolution, the state store, the weather client
// and the cache together, and publishes the active view.
type Orchestrator struct {
	state      *state.Store
	client     Fetcher
	cache      weather.SnapshotCache
	locator    geo.Locator
	geoTimeout time.Duration

	mu      sync.Mutex
	current View
	loadGen uuid.UUID
}

// New creates an Orchestrator in the Initializing state.
func New(st *state.Store, client Fetcher, cache weather.SnapshotCache, locator geo.Locator, geoTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		state:      st,
		client:     client,
		cache:      cache,
		locator:    locator,
		geoTimeout: geoTimeout,
		current:    View{State: StateInitializing},
	}
}

// View returns the currently published view.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Init restores the persisted selection if one exists, otherwise attempts
// geolocation. Called once at startup.
func (o *Orchestrator) Init(ctx context.Context) {
	if cur := o.state.Current(); cur != nil {
		o.LoadAndShow(ctx, *cur)
		return
	}
	o.ResolveLocation(ctx)
}

// ResolveLocation attempts a bounded geolocation lookup. On success the
// resolved position becomes the persisted current location and its weather is
// loaded; on failure the view moves to LocationUnavailable, from which the
// user can retry or pick a city manually.
func (o *Orchestrator) ResolveLocation(ctx context.Context) {
	o.publish(View{State: StateResolvingLocation})

	gctx, cancel := context.WithTimeout(ctx, o.geoTimeout)
	defer cancel()

	pos, err := o.locator.Locate(gctx)
	if err != nil {
		log.Printf("geolocation failed: %v", err)
		o.publish(View{State: StateLocationUnavailable, Error: err.Error()})
		return
	}

	loc := weather.Location{Kind: weather.KindGeo, Label: pos.Label, Lat: pos.Lat, Lon: pos.Lon}
	o.state.SelectCurrent(loc)
	o.LoadAndShow(ctx, loc)
}

// Select makes loc the persisted current location and loads its weather.
func (o *Orchestrator) Select(ctx context.Context, loc weather.Location) {
	o.state.SelectCurrent(loc)
	o.LoadAndShow(ctx, loc)
}

// SearchCity resolves a name against the known-city list and, on an exact
// match, selects it.
func (o *Orchestrator) SearchCity(ctx context.Context, name string) error {
	loc, err := cities.Find(name)
	if err != nil {
		return err
	}
	o.Select(ctx, loc)
	return nil
}

// AddCity resolves a name against the known-city list and appends it to the
// saved cities. The added city's weather is fetched eagerly in the background
// so its cache entry is warm; the main view stays on the current location.
func (o *Orchestrator) AddCity(name string) error {
	loc, err := cities.Find(name)
	if err != nil {
		return err
	}
	if err := o.state.AddCity(loc); err != nil {
		return err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := o.client.FetchAndCache(ctx, loc.Lat, loc.Lon); err != nil {
			log.Printf("eager fetch failed for %s: %v", loc.Label, err)
		}
	}()
	return nil
}

// RemoveCity removes the saved city at index; out of range is a no-op.
func (o *Orchestrator) RemoveCity(index int) {
	o.state.RemoveCityAt(index)
}

// SelectCityAt selects the saved city at index.
func (o *Orchestrator) SelectCityAt(ctx context.Context, index int) error {
	loc, ok := o.state.CityAt(index)
	if !ok {
		return fmt.Errorf("no saved city at index %d", index)
	}
	o.Select(ctx, loc)
	return nil
}

// Current returns the persisted current location, or nil.
func (o *Orchestrator) Current() *weather.Location {
	return o.state.Current()
}

// Cities returns the saved city list.
func (o *Orchestrator) Cities() []weather.Location {
	return o.state.Cities()
}

// LoadAndShow fetches weather for loc and publishes the resulting view. The
// view always leaves Loading: success publishes the display model, failure
// publishes an error view carrying the message verbatim. A result is dropped
// when a newer load started while this one was in flight.
func (o *Orchestrator) LoadAndShow(ctx context.Context, loc weather.Location) {
	token := o.beginLoad()

	snap, err := o.client.FetchAndCache(ctx, loc.Lat, loc.Lon)
	if err != nil {
		o.finishLoad(token, View{State: StateError, Error: err.Error()})
		return
	}

	model := view.Build(loc.Label, snap)
	o.finishLoad(token, View{State: StateDisplayed, Model: &model})
}

// RefreshAll re-fetches the current location and every saved city
// concurrently. Per-location failures are isolated: one failing fetch does
// not keep another's snapshot out of the cache. After all fetches complete
// the view is re-rendered from the cache entry for the current location; a
// failure on the current location is returned (and published) but the other
// updates stand.
func (o *Orchestrator) RefreshAll(ctx context.Context) error {
	cur := o.state.Current()
	saved := o.state.Cities()

	var (
		wg     sync.WaitGroup
		curErr error
	)

	// Without a current location there is nothing to re-render: refresh the
	// saved cities' caches and leave the view untouched.
	if cur == nil {
		for _, c := range saved {
			c := c
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := o.client.FetchAndCache(ctx, c.Lat, c.Lon); err != nil {
					log.Printf("refresh failed for %s: %v", c.Label, err)
				}
			}()
		}
		wg.Wait()
		return nil
	}

	token := o.beginLoad()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := o.client.FetchAndCache(ctx, cur.Lat, cur.Lon); err != nil {
			log.Printf("refresh failed for %s: %v", cur.Label, err)
			curErr = err
		}
	}()

	for _, c := range saved {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := o.client.FetchAndCache(ctx, c.Lat, c.Lon); err != nil {
				log.Printf("refresh failed for %s: %v", c.Label, err)
			}
		}()
	}

	wg.Wait()

	if curErr != nil {
		o.finishLoad(token, View{State: StateError, Error: curErr.Error()})
		return curErr
	}

	snap := o.cache.GetSnapshot(cur.Lat, cur.Lon)
	if snap == nil {
		// Fetch reported success but the cache has no entry; the view must
		// still leave Loading.
		err := fmt.Errorf("no cached weather for %s", cur.Label)
		o.finishLoad(token, View{State: StateError, Error: err.Error()})
		return err
	}

	model := view.Build(cur.Label, snap)
	o.finishLoad(token, View{State: StateDisplayed, Model: &model})
	return nil
}

// beginLoad publishes the loading view and returns the generation token for
// this load. Only the newest token may publish a result.
func (o *Orchestrator) beginLoad() uuid.UUID {
	o.mu.Lock()
	defer o.mu.Unlock()
	token := uuid.New()
	o.loadGen = token
	o.current = View{State: StateLoading}
	return token
}

// finishLoad publishes v unless a newer load superseded this one.
func (o *Orchestrator) finishLoad(token uuid.UUID, v View) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.loadGen != token {
		return
	}
	o.current = v
}

func (o *Orchestrator) publish(v View) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = v
}
