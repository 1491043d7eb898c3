package weather

import (
	"regexp"
	"strings"
)

// Qualitative condition labels derived from the latest reading.
const (
	ConditionRainy    = "rainy"
	ConditionHumid    = "humid"
	ConditionHot      = "hot"
	ConditionCool     = "cool"
	ConditionPleasant = "pleasant"
)

// Policy thresholds for deriving a condition label. Checked in order:
// rainfall wins over humidity, humidity over temperature.
const (
	rainyRainfallMM  = 5.0
	humidHumidityPct = 80.0
	hotTemperatureC  = 32.0
	coolTemperatureC = 26.0
)

// classifyConditions maps a reading to one of the condition labels.
func classifyConditions(tempC, humidityPct, rainfallMM float64) string {
	switch {
	case rainfallMM > rainyRainfallMM:
		return ConditionRainy
	case humidityPct > humidHumidityPct:
		return ConditionHumid
	case tempC > hotTemperatureC:
		return ConditionHot
	case tempC < coolTemperatureC:
		return ConditionCool
	default:
		return ConditionPleasant
	}
}

var conditionIcons = map[string]string{
	ConditionRainy:    "🌧️",
	ConditionHumid:    "💧",
	ConditionHot:      "☀️",
	ConditionCool:     "⛅",
	ConditionPleasant: "🌤️",
}

var conditionAdvisories = map[string]string{
	ConditionRainy:    "Heavy showers around — consider moving your cleanup or pack ponchos.",
	ConditionHumid:    "Muggy out there. Bring extra water for the crew.",
	ConditionHot:      "Scorching today. Sunscreen, hats and shade breaks are a must.",
	ConditionCool:     "Cooler than usual — great conditions for a long session on the sand.",
	ConditionPleasant: "Perfect weather for a beach cleanup!",
}

// conditionIcon returns the glyph for a condition label.
func conditionIcon(condition string) string {
	if icon, ok := conditionIcons[condition]; ok {
		return icon
	}
	return conditionIcons[ConditionPleasant]
}

// conditionAdvisory returns the advisory sentence for a condition label.
func conditionAdvisory(condition string) string {
	if adv, ok := conditionAdvisories[condition]; ok {
		return adv
	}
	return conditionAdvisories[ConditionPleasant]
}

// Pattern and presentation for a recognized forecast phrase.
type forecastPattern struct {
	re   *regexp.Regexp
	icon string
	desc string
}

// Compiles patterns for the free-text daily forecast labels the outlook
// endpoint returns ("Thundery Showers", "Partly Cloudy (Day)", ...).
// Case-insensitive; first match wins, heavier weather ranked first.
func buildForecastPatterns() []forecastPattern {
	return []forecastPattern{
		{regexp.MustCompile(`(?i)thunder`), "⛈️", "Thundery showers expected"},
		{regexp.MustCompile(`(?i)(heavy\s+rain|showers|rain)`), "🌧️", "Showers expected"},
		{regexp.MustCompile(`(?i)(haz[ey]|mist|fog)`), "🌫️", "Hazy conditions"},
		{regexp.MustCompile(`(?i)(cloudy|overcast)`), "☁️", "Cloudy skies"},
		{regexp.MustCompile(`(?i)(fair|sunny|warm)`), "☀️", "Fair and dry"},
		{regexp.MustCompile(`(?i)wind`), "🌬️", "Windy conditions"},
	}
}

// classifyForecastText maps the upstream forecast label to an icon and a
// short description. Unknown labels get a neutral pair.
func classifyForecastText(text string) (icon, desc string) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "⛅", "No forecast available"
	}
	for _, p := range buildForecastPatterns() {
		if p.re.MatchString(t) {
			return p.icon, p.desc
		}
	}
	return "⛅", "Partly cloudy"
}
