package weather

import (
	"errors"
	"fmt"
	"time"
)

// LocationKind says how a location entered the app: resolved from the
// device position or chosen from the known-city list.
type LocationKind string

const (
	KindGeo   LocationKind = "geo"
	KindNamed LocationKind = "named"
)

// Location is a labeled point we track weather for. Identity for caching
// purposes is the coordinate pair rounded to three decimals; the label is
// display-only and may differ between a saved city and the same coordinates
// reached via geolocation.
type Location struct {
	Kind  LocationKind `json:"kind"`
	Label string       `json:"label"`
	Lat   float64      `json:"lat"`
	Lon   float64      `json:"lon"`
}

// Key returns the canonical cache key for this location's coordinates.
func (l Location) Key() string {
	return CoordKey(l.Lat, l.Lon)
}

// CoordKey formats a coordinate pair to exactly three decimal places.
// Coordinates that round to the same value share a key on purpose.
func CoordKey(lat, lon float64) string {
	return fmt.Sprintf("%.3f_%.3f", lat, lon)
}

// CurrentConditions is the provider's current_weather block. Fields the
// provider may omit are pointers so the view layer can tell absent from zero.
type CurrentConditions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	WindSpeed   *float64 `json:"windspeed,omitempty"`
	WeatherCode *int     `json:"weathercode,omitempty"`
	Time        string   `json:"time,omitempty"`
}

// HourlyBlock carries the provider's parallel hourly arrays.
type HourlyBlock struct {
	Time               []string  `json:"time"`
	RelativeHumidity2m []float64 `json:"relativehumidity_2m"`
}

// DailyBlock carries the provider's parallel daily arrays.
type DailyBlock struct {
	Time             []string  `json:"time"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	Temperature2mMin []float64 `json:"temperature_2m_min"`
	WeatherCode      []int     `json:"weathercode"`
	Sunrise          []string  `json:"sunrise"`
	Sunset           []string  `json:"sunset"`
}

// Meta is stamped client-side after a successful fetch; the provider does
// not echo the queried coordinates, and the cache is keyed by them.
type Meta struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Snapshot is one raw provider response for a coordinate, kept as-is so the
// view mapper works off the same payload shape the provider returned.
// Timestamps are already local to the queried coordinate (timezone=auto).
type Snapshot struct {
	Current *CurrentConditions `json:"current_weather,omitempty"`
	Hourly  *HourlyBlock       `json:"hourly,omitempty"`
	Daily   *DailyBlock        `json:"daily,omitempty"`
	Meta    Meta               `json:"_meta"`
}

// SnapshotCache persists one snapshot per rounded coordinate. A new fetch
// overwrites the prior entry; nothing expires on its own.
type SnapshotCache interface {
	GetSnapshot(lat, lon float64) *Snapshot
	PutSnapshot(lat, lon float64, snap *Snapshot) error
}

var (
	// ErrNetwork covers transport failures and non-success provider status codes.
	ErrNetwork = errors.New("weather provider request failed")
	// ErrParse covers structurally invalid provider responses.
	ErrParse = errors.New("malformed weather provider response")
	// ErrCityNotFound means the name is not in the known-city list.
	ErrCityNotFound = errors.New("city not found")
	// ErrDuplicateCity means the label is already saved or currently selected.
	ErrDuplicateCity = errors.New("city already added")
	// ErrGeolocationUnavailable covers denied, absent or timed-out position lookups.
	ErrGeolocationUnavailable = errors.New("geolocation unavailable")
)
