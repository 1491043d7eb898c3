package config

import (
	"os"
	"strconv"
	"time"

	"github.com/s777ia/ShoreSquad/internal/geo"
)

// Defaults for the NEA endpoints and the app's home beach area.
const (
	DefaultRealtimeURL = "https://api.data.gov.sg/v1/environment/realtime-weather-readings"
	DefaultForecastURL = "https://api.data.gov.sg/v1/environment/4-day-weather-forecast"

	// East Coast Parkway station, closest to the beaches we organize at.
	DefaultStation = "S107"

	DefaultStorePath = "shoresquad.db"
)

// Keys are the logical names under which the store keeps its JSON values.
type Keys struct {
	UserLocation    string
	CrewData        string
	CleanupEvents   string
	UserPreferences string
}

// Config carries everything the components need at construction time.
// Built once in main and treated as immutable afterwards.
type Config struct {
	Port             string
	RealtimeURL      string
	ForecastURL      string
	PreferredStation string
	HTTPTimeout      time.Duration
	LocationTimeout  time.Duration
	LocationTTL      time.Duration
	RefreshInterval  time.Duration
	FallbackLocation geo.Coordinate
	StorePath        string
	StoreKeys        Keys
}

// FromEnv builds a Config from environment variables, falling back to the
// defaults above for anything unset.
func FromEnv() Config {
	cfg := Config{
		Port:             envOr("PORT", "8080"),
		RealtimeURL:      envOr("SHORESQUAD_REALTIME_URL", DefaultRealtimeURL),
		ForecastURL:      envOr("SHORESQUAD_FORECAST_URL", DefaultForecastURL),
		PreferredStation: envOr("SHORESQUAD_STATION", DefaultStation),
		HTTPTimeout:      10 * time.Second,
		LocationTimeout:  10 * time.Second,
		LocationTTL:      5 * time.Minute,
		RefreshInterval:  durationOr("SHORESQUAD_REFRESH_INTERVAL", 10*time.Minute),
		FallbackLocation: geo.Coordinate{Lat: 1.3521, Lng: 103.8198},
		StorePath:        envOr("SHORESQUAD_DB", DefaultStorePath),
		StoreKeys: Keys{
			UserLocation:    "user_location",
			CrewData:        "crew_data",
			CleanupEvents:   "cleanup_events",
			UserPreferences: "user_preferences",
		},
	}
	if lat, ok := envFloat("SHORESQUAD_FALLBACK_LAT"); ok {
		cfg.FallbackLocation.Lat = lat
	}
	if lng, ok := envFloat("SHORESQUAD_FALLBACK_LNG"); ok {
		cfg.FallbackLocation.Lng = lng
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
