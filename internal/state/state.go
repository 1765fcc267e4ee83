package state

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"weather-dashboard/internal/weather"
)

// Persistence is the slice of the storage layer the state store needs.
type Persistence interface {
	LoadState() ([]byte, error)
	SaveState(payload []byte) error
}

// AppState is the persisted shape: the current selection plus the saved city
// list in insertion order.
type AppState struct {
	Current *weather.Location  `json:"current"`
	Cities  []weather.Location `json:"cities"`
}

// Store owns the application state. All mutation goes through named methods
// that persist the full state before returning; nothing else writes fields.
type Store struct {
	mu      sync.Mutex
	st      AppState
	persist Persistence
}

// Load reads the persisted state. Missing or malformed data yields the empty
// default state; loading never fails the caller.
func Load(p Persistence) *Store {
	s := &Store{persist: p}

	raw, err := p.LoadState()
	if err != nil {
		log.Println("warning: could not read persisted state:", err)
		return s
	}
	if raw == nil {
		return s
	}

	var st AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		log.Println("warning: persisted state is invalid, starting empty:", err)
		return s
	}
	s.st = st
	return s
}

// Current returns a copy of the current selection, or nil.
func (s *Store) Current() *weather.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Current == nil {
		return nil
	}
	cur := *s.st.Current
	return &cur
}

// Cities returns a copy of the saved city list.
func (s *Store) Cities() []weather.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]weather.Location, len(s.st.Cities))
	copy(out, s.st.Cities)
	return out
}

// SelectCurrent sets the current selection and persists.
func (s *Store) SelectCurrent(loc weather.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Current = &loc
	s.save()
}

// AddCity appends a city to the saved list. The label must not collide
// (case-insensitively) with an already saved city or the current selection.
func (s *Store) AddCity(loc weather.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.st.Cities {
		if strings.EqualFold(c.Label, loc.Label) {
			return weather.ErrDuplicateCity
		}
	}
	if s.st.Current != nil && strings.EqualFold(s.st.Current.Label, loc.Label) {
		return weather.ErrDuplicateCity
	}

	s.st.Cities = append(s.st.Cities, loc)
	s.save()
	return nil
}

// RemoveCityAt removes the saved city at the given position. An out-of-range
// index is a no-op.
func (s *Store) RemoveCityAt(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.st.Cities) {
		return
	}
	s.st.Cities = append(s.st.Cities[:index], s.st.Cities[index+1:]...)
	s.save()
}

// CityAt returns a copy of the saved city at the given position.
func (s *Store) CityAt(index int) (weather.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.st.Cities) {
		return weather.Location{}, false
	}
	return s.st.Cities[index], true
}

// save persists the full state, total overwrite. Callers hold the lock.
func (s *Store) save() {
	raw, err := json.Marshal(s.st)
	if err != nil {
		log.Println("warning: could not encode state:", err)
		return
	}
	if err := s.persist.SaveState(raw); err != nil {
		log.Println("warning: could not persist state:", err)
	}
}
