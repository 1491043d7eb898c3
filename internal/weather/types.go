package weather

import "time"

// CurrentWeather is the normalized latest reading shown on the weather panel.
type CurrentWeather struct {
	TemperatureC float64   `json:"temperature"`
	HumidityPct  float64   `json:"humidity"`
	WindKPH      float64   `json:"windSpeed"`
	RainfallMM   float64   `json:"rainfall"`
	Condition    string    `json:"condition"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	Timestamp    time.Time `json:"timestamp"`
}

// ForecastDay is one of the four daily summaries from the outlook endpoint.
type ForecastDay struct {
	Date         string  `json:"date"`
	Forecast     string  `json:"forecast"`
	HighC        float64 `json:"high"`
	LowC         float64 `json:"low"`
	HumidityHigh float64 `json:"humidityHigh"`
	HumidityLow  float64 `json:"humidityLow"`
	Wind         string  `json:"wind,omitempty"`
	Icon         string  `json:"icon"`
	Description  string  `json:"description"`
}

// Provenance values for Bundle.Source.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// Bundle is the full weather payload handed to the rendering layer. Source
// tells callers whether they are looking at live data or the fallback record.
type Bundle struct {
	Current        CurrentWeather `json:"current"`
	Forecast       []ForecastDay  `json:"forecast"`
	Source         string         `json:"source"`
	FallbackReason string         `json:"fallbackReason,omitempty"`
	FetchedAt      time.Time      `json:"fetchedAt"`
}

// Live reports whether the bundle came from the upstream API.
func (b Bundle) Live() bool { return b.Source == SourceLive }
