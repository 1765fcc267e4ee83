// Package cities holds the fixed known-city list used for lookup and
// autocomplete. The table is configuration data, not behaviour: lookups only
// ever accept an exact (case-insensitive) match against it.
package cities

import (
	"strings"

	"weather-dashboard/internal/weather"
)

// known is the city table, in display order.
var known = []weather.Location{
	{Kind: weather.KindNamed, Label: "Saint Petersburg", Lat: 59.9311, Lon: 30.3609},
	{Kind: weather.KindNamed, Label: "Moscow", Lat: 55.7558, Lon: 37.6173},
	{Kind: weather.KindNamed, Label: "Kazan", Lat: 55.7903, Lon: 49.1120},
	{Kind: weather.KindNamed, Label: "Novosibirsk", Lat: 55.0084, Lon: 82.9357},
	{Kind: weather.KindNamed, Label: "Yekaterinburg", Lat: 56.8389, Lon: 60.6057},
	{Kind: weather.KindNamed, Label: "Nizhny Novgorod", Lat: 56.2965, Lon: 43.9361},
	{Kind: weather.KindNamed, Label: "Samara", Lat: 53.2415, Lon: 50.2212},
	{Kind: weather.KindNamed, Label: "Omsk", Lat: 54.9893, Lon: 73.3686},
	{Kind: weather.KindNamed, Label: "Rostov-on-Don", Lat: 47.2357, Lon: 39.7015},
	{Kind: weather.KindNamed, Label: "Krasnodar", Lat: 45.0355, Lon: 38.9753},
}

// MaxSuggestions bounds the autocomplete result size.
const MaxSuggestions = 8

// Find returns the known city whose name matches exactly, ignoring case.
func Find(name string) (weather.Location, error) {
	q := strings.TrimSpace(name)
	for _, c := range known {
		if strings.EqualFold(c.Label, q) {
			return c, nil
		}
	}
	return weather.Location{}, weather.ErrCityNotFound
}

// Suggest returns up to MaxSuggestions city names starting with the given
// prefix, ignoring case. An empty prefix yields nothing.
func Suggest(prefix string) []string {
	q := strings.ToLower(strings.TrimSpace(prefix))
	if q == "" {
		return nil
	}

	var out []string
	for _, c := range known {
		if strings.HasPrefix(strings.ToLower(c.Label), q) {
			out = append(out, c.Label)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}
