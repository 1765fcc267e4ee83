package view

// Open-Meteo weather code to icon filename (amcharts icon set). Codes absent
// from the table get the generic fallback icon.
var codeIcons = map[int]string{
	// clear / cloud cover gradient
	0: "day.svg",
	1: "cloudy-day-1.svg",
	2: "cloudy-day-2.svg",
	3: "cloudy.svg",
	// fog
	45: "cloudy-night-1.svg",
	48: "cloudy-night-2.svg",
	// drizzle / rain
	51: "rainy-1.svg",
	53: "rainy-3.svg",
	55: "rainy-5.svg",
	56: "rainy-2.svg",
	57: "rainy-4.svg",
	61: "rainy-3.svg",
	63: "rainy-4.svg",
	65: "rainy-5.svg",
	66: "rainy-2.svg",
	67: "rainy-6.svg",
	// snow
	71: "snowy-1.svg",
	73: "snowy-3.svg",
	75: "snowy-5.svg",
	77: "snowy-2.svg",
	85: "snowy-4.svg",
	86: "snowy-6.svg",
	// rain showers
	80: "rainy-5.svg",
	81: "rainy-6.svg",
	82: "rainy-7.svg",
	// thunderstorm, shared icon
	95: "thunder.svg",
	96: "thunder.svg",
	99: "thunder.svg",
}

// FallbackIcon is used for any weather code the table does not know.
const FallbackIcon = "weather.svg"

// Short human-readable descriptions per weather code. Deliberately sparser
// than the icon table: codes without a description show the placeholder dash.
var codeDescriptions = map[int]string{
	0:  "Clear",
	1:  "Mostly clear",
	2:  "Cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Fog",
	51: "Drizzle",
	53: "Light rain",
	55: "Rain",
	56: "Freezing drizzle",
	57: "Drizzle",
	61: "Rain",
	63: "Rain",
	65: "Heavy rain",
	71: "Light snow",
	73: "Snow",
	75: "Heavy snow",
	80: "Rain showers",
	81: "Rain showers",
	82: "Heavy rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm",
	99: "Thunderstorm",
}

// IconFor maps a weather code to its icon filename.
func IconFor(code int) string {
	if icon, ok := codeIcons[code]; ok {
		return icon
	}
	return FallbackIcon
}

// DescriptionFor maps a weather code to its short description.
func DescriptionFor(code int) string {
	if desc, ok := codeDescriptions[code]; ok {
		return desc
	}
	return Dash
}
