package view

import (
	"fmt"
	"reflect"
	"testing"

	"weather-dashboard/internal/weather"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func sampleSnapshot() *weather.Snapshot {
	return &weather.Snapshot{
		Current: &weather.CurrentConditions{
			Temperature: floatPtr(12.6),
			WindSpeed:   floatPtr(4.4),
			WeatherCode: intPtr(0),
			Time:        "2026-03-02T14:00",
		},
		Hourly: &weather.HourlyBlock{
			Time:               []string{"2026-03-02T13:00", "2026-03-02T14:00", "2026-03-02T15:00"},
			RelativeHumidity2m: []float64{10, 20, 30},
		},
		Daily: &weather.DailyBlock{
			Time:             []string{"2026-03-02", "2026-03-03", "2026-03-04"},
			Temperature2mMax: []float64{13.2, 9.8, 7.1},
			Temperature2mMin: []float64{4.5, 2.2, -0.6},
			WeatherCode:      []int{0, 61, 95},
			Sunrise:          []string{"2026-03-02T07:12"},
			Sunset:           []string{"2026-03-02T18:05"},
		},
	}
}

func TestBuildCurrentValues(t *testing.T) {
	m := Build("Moscow", sampleSnapshot())

	if m.HeaderLabel != "Moscow" {
		t.Errorf("expected header Moscow, got %q", m.HeaderLabel)
	}
	if m.CurrentTemp != "13°" {
		t.Errorf("expected temp 13°, got %q", m.CurrentTemp)
	}
	// feels-like mirrors the current temperature
	if m.FeelsLike != "13°" {
		t.Errorf("expected feels-like 13°, got %q", m.FeelsLike)
	}
	if m.Wind != "4 m/s" {
		t.Errorf("expected wind 4 m/s, got %q", m.Wind)
	}
	if m.Sunrise != "07:12" || m.Sunset != "18:05" {
		t.Errorf("expected 07:12/18:05, got %q/%q", m.Sunrise, m.Sunset)
	}
	if m.IconFile != "day.svg" {
		t.Errorf("expected day.svg, got %q", m.IconFile)
	}
	if m.Description != "Clear" {
		t.Errorf("expected Clear, got %q", m.Description)
	}
}

func TestBuildIsPure(t *testing.T) {
	snap := sampleSnapshot()
	first := Build("Kazan", snap)
	second := Build("Kazan", snap)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two builds from the same input differ:\n%+v\n%+v", first, second)
	}
}

func TestBuildMissingCurrentBlock(t *testing.T) {
	snap := sampleSnapshot()
	snap.Current = nil

	m := Build("Omsk", snap)

	if m.CurrentTemp != Dash || m.FeelsLike != Dash || m.Wind != Dash {
		t.Errorf("expected dashes for absent current block, got %q %q %q", m.CurrentTemp, m.FeelsLike, m.Wind)
	}
	// no current code: icon falls back to today's daily code
	if m.IconFile != "day.svg" {
		t.Errorf("expected daily-code fallback day.svg, got %q", m.IconFile)
	}
}

func TestHumidityLookup(t *testing.T) {
	tests := []struct {
		name string
		now  string
		want string
	}{
		{"exact match", "2026-03-02T14:00", "20%"},
		{"no match falls back to first entry", "2026-03-02T23:00", "10%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := sampleSnapshot()
			snap.Current.Time = tt.now
			m := Build("Samara", snap)
			if m.Humidity != tt.want {
				t.Errorf("expected humidity %q, got %q", tt.want, m.Humidity)
			}
		})
	}
}

func TestHumidityEmptySeries(t *testing.T) {
	snap := sampleSnapshot()
	snap.Hourly = &weather.HourlyBlock{}
	if m := Build("Samara", snap); m.Humidity != Dash {
		t.Errorf("expected dash for empty hourly series, got %q", m.Humidity)
	}

	snap.Hourly = nil
	if m := Build("Samara", snap); m.Humidity != Dash {
		t.Errorf("expected dash for absent hourly block, got %q", m.Humidity)
	}
}

func TestCodeMapping(t *testing.T) {
	if got := IconFor(0); got != "day.svg" {
		t.Errorf("expected day.svg for code 0, got %q", got)
	}
	if got := DescriptionFor(0); got != "Clear" {
		t.Errorf("expected Clear for code 0, got %q", got)
	}
	if got := IconFor(999); got != FallbackIcon {
		t.Errorf("expected fallback icon for unknown code, got %q", got)
	}
	if got := DescriptionFor(999); got != Dash {
		t.Errorf("expected dash for unknown code, got %q", got)
	}
	// shared thunderstorm icon
	for _, code := range []int{95, 96, 99} {
		if got := IconFor(code); got != "thunder.svg" {
			t.Errorf("expected thunder.svg for code %d, got %q", code, got)
		}
	}
}

func TestForecastRowsCapped(t *testing.T) {
	daily := &weather.DailyBlock{}
	for i := 0; i < 10; i++ {
		daily.Time = append(daily.Time, fmt.Sprintf("2026-03-%02d", i+2))
		daily.Temperature2mMax = append(daily.Temperature2mMax, 10+float64(i))
		daily.Temperature2mMin = append(daily.Temperature2mMin, float64(i))
		daily.WeatherCode = append(daily.WeatherCode, 0)
	}
	snap := sampleSnapshot()
	snap.Daily = daily

	m := Build("Moscow", snap)

	if len(m.Forecast) != 7 {
		t.Fatalf("expected 7 forecast rows, got %d", len(m.Forecast))
	}
	if m.Forecast[0].DayLabel != "Today" {
		t.Errorf("expected row 0 labeled Today, got %q", m.Forecast[0].DayLabel)
	}
	// 2026-03-03 is a Tuesday
	if m.Forecast[1].DayLabel != "Tue" {
		t.Errorf("expected row 1 labeled Tue, got %q", m.Forecast[1].DayLabel)
	}
}

func TestForecastRowsBoundedByShortestArray(t *testing.T) {
	snap := sampleSnapshot()
	snap.Daily.WeatherCode = snap.Daily.WeatherCode[:2]

	m := Build("Moscow", snap)

	if len(m.Forecast) != 2 {
		t.Fatalf("expected 2 forecast rows, got %d", len(m.Forecast))
	}
	if m.Forecast[1].Min != 2 || m.Forecast[1].Max != 10 {
		t.Errorf("expected rounded 2/10, got %d/%d", m.Forecast[1].Min, m.Forecast[1].Max)
	}
}
