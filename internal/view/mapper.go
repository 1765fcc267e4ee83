// Package view maps raw weather snapshots to display-ready values. Every
// function here is pure: same snapshot and label in, same model out, no I/O.
package view

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"weather-dashboard/internal/weather"
)

// Dash is the placeholder shown for any value the snapshot does not carry.
const Dash = "—"

// clockPlaceholder is shown when no sunrise/sunset entry exists.
const clockPlaceholder = "--:--"

// maxForecastDays bounds the forecast row count.
const maxForecastDays = 7

// ForecastRow is one day of the forecast strip.
type ForecastRow struct {
	DayLabel string `json:"dayLabel"`
	IconFile string `json:"iconFile"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
}

// DisplayModel is the fully-resolved set of values needed to render one
// location's weather view. It is recomputed from scratch on every build and
// never persisted.
type DisplayModel struct {
	HeaderLabel string        `json:"headerLabel"`
	CurrentTemp string        `json:"currentTemp"`
	FeelsLike   string        `json:"feelsLike"`
	Wind        string        `json:"wind"`
	Humidity    string        `json:"humidity"`
	Sunrise     string        `json:"sunrise"`
	Sunset      string        `json:"sunset"`
	IconFile    string        `json:"iconFile"`
	Description string        `json:"description"`
	Forecast    []ForecastRow `json:"forecast"`
}

// Build computes the display model for a labeled snapshot.
func Build(label string, snap *weather.Snapshot) DisplayModel {
	m := DisplayModel{
		HeaderLabel: label,
		CurrentTemp: Dash,
		FeelsLike:   Dash,
		Wind:        Dash,
		Humidity:    Dash,
		Sunrise:     clockPlaceholder,
		Sunset:      clockPlaceholder,
		IconFile:    FallbackIcon,
		Description: Dash,
	}
	if snap == nil {
		return m
	}

	cur := snap.Current
	if cur != nil && cur.Temperature != nil {
		t := fmt.Sprintf("%d°", roundInt(*cur.Temperature))
		m.CurrentTemp = t
		// The provider supplies no apparent-temperature field in this request
		// shape; feels-like mirrors the current temperature.
		m.FeelsLike = t
	}
	if cur != nil && cur.WindSpeed != nil {
		m.Wind = fmt.Sprintf("%d m/s", roundInt(*cur.WindSpeed))
	}

	m.Humidity = humidityAt(snap.Hourly, currentTime(cur))

	if d := snap.Daily; d != nil {
		if len(d.Sunrise) > 0 {
			m.Sunrise = formatClock(d.Sunrise[0])
		}
		if len(d.Sunset) > 0 {
			m.Sunset = formatClock(d.Sunset[0])
		}
	}

	if code, ok := effectiveCode(snap); ok {
		m.IconFile = IconFor(code)
		m.Description = DescriptionFor(code)
	}

	m.Forecast = forecastRows(snap.Daily)
	return m
}

// humidityAt resolves the humidity display value from the hourly series: the
// entry whose timestamp string equals the current one, otherwise the first
// entry, otherwise the dash. The provider's hourly timestamps share the
// current block's format, so an exact string match suffices; no interpolation.
func humidityAt(hourly *weather.HourlyBlock, now string) string {
	if hourly == nil || len(hourly.RelativeHumidity2m) == 0 {
		return Dash
	}

	for i, ts := range hourly.Time {
		if ts == now && i < len(hourly.RelativeHumidity2m) {
			return formatHumidity(hourly.RelativeHumidity2m[i])
		}
	}
	return formatHumidity(hourly.RelativeHumidity2m[0])
}

// effectiveCode picks the current weather code, falling back to today's daily
// code when the current block has none.
func effectiveCode(snap *weather.Snapshot) (int, bool) {
	if snap.Current != nil && snap.Current.WeatherCode != nil {
		return *snap.Current.WeatherCode, true
	}
	if snap.Daily != nil && len(snap.Daily.WeatherCode) > 0 {
		return snap.Daily.WeatherCode[0], true
	}
	return 0, false
}

// forecastRows builds up to seven day rows, bounded by the shortest of the
// parallel daily arrays. Row zero is today.
func forecastRows(daily *weather.DailyBlock) []ForecastRow {
	if daily == nil {
		return nil
	}

	days := len(daily.Time)
	for _, n := range []int{len(daily.Temperature2mMax), len(daily.Temperature2mMin), len(daily.WeatherCode)} {
		if n < days {
			days = n
		}
	}
	if days > maxForecastDays {
		days = maxForecastDays
	}

	rows := make([]ForecastRow, 0, days)
	for i := 0; i < days; i++ {
		rows = append(rows, ForecastRow{
			DayLabel: dayLabel(i, daily.Time[i]),
			IconFile: IconFor(daily.WeatherCode[i]),
			Min:      roundInt(daily.Temperature2mMin[i]),
			Max:      roundInt(daily.Temperature2mMax[i]),
		})
	}
	return rows
}

func dayLabel(index int, date string) string {
	if index == 0 {
		return "Today"
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Weekday().String()[:3]
}

// formatClock renders a provider timestamp as a 24-hour HH:MM string. The
// raw value is returned when it does not parse.
func formatClock(iso string) string {
	for _, layout := range []string{"2006-01-02T15:04", time.RFC3339} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("15:04")
		}
	}
	return iso
}

func formatHumidity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func currentTime(cur *weather.CurrentConditions) string {
	if cur == nil {
		return ""
	}
	return cur.Time
}
