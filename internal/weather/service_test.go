package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/s777ia/ShoreSquad/internal/config"
)

const realtimeFixture = `{
  "items": [{
    "timestamp": "2025-06-01T14:00:00+08:00",
    "readings": {
      "S107": {"temperature": 30.5, "humidity": 72, "wind_speed": 10, "rainfall": 0},
      "S24":  {"temperature": 28.0, "humidity": 88, "wind_speed": 4,  "rainfall": 0.2}
    }
  }]
}`

const forecastFixture = `{
  "items": [{
    "forecasts": [
      {"date": "2025-06-02", "forecast": "Thundery Showers",
       "temperature": {"low": 25, "high": 31},
       "relative_humidity": {"low": 65, "high": 95},
       "wind": {"speed": {"low": 10, "high": 20}, "direction": "SSE"}},
      {"date": "2025-06-03", "forecast": "Partly Cloudy (Day)",
       "temperature": {"low": 26, "high": 33},
       "relative_humidity": {"low": 55, "high": 90},
       "wind": {"speed": {"low": 10, "high": 15}, "direction": "S"}},
      {"date": "2025-06-04", "forecast": "Fair",
       "temperature": {"low": 26, "high": 33},
       "relative_humidity": {"low": 55, "high": 85},
       "wind": {"speed": {"low": 5, "high": 15}, "direction": "SW"}},
      {"date": "2025-06-05", "forecast": "Late Morning Showers",
       "temperature": {"low": 25, "high": 32},
       "relative_humidity": {"low": 60, "high": 95},
       "wind": {"speed": {"low": 10, "high": 20}, "direction": "S"}}
    ]
  }]
}`

func testConfig(baseURL string) config.Config {
	cfg := config.FromEnv()
	cfg.RealtimeURL = baseURL + "/realtime"
	cfg.ForecastURL = baseURL + "/forecast"
	cfg.PreferredStation = "S107"
	cfg.HTTPTimeout = 2 * time.Second
	return cfg
}

func newFakeUpstream(t *testing.T, realtimeStatus, forecastStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/realtime", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(realtimeStatus)
		if realtimeStatus == http.StatusOK {
			_, _ = w.Write([]byte(realtimeFixture))
		}
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(forecastStatus)
		if forecastStatus == http.StatusOK {
			_, _ = w.Write([]byte(forecastFixture))
		}
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestBundleLive(t *testing.T) {
	ts := newFakeUpstream(t, http.StatusOK, http.StatusOK)
	svc := NewService(NewClient(testConfig(ts.URL)))

	b := svc.Bundle(context.Background())
	if !b.Live() {
		t.Fatalf("expected live bundle, got source=%q reason=%q", b.Source, b.FallbackReason)
	}
	if b.Current.TemperatureC != 30.5 {
		t.Errorf("expected preferred station temperature 30.5, got %v", b.Current.TemperatureC)
	}
	// 10 knots converts to 18.52 km/h, rounded to 19.
	if b.Current.WindKPH != 19 {
		t.Errorf("expected wind 19 km/h, got %v", b.Current.WindKPH)
	}
	if b.Current.Condition != ConditionPleasant {
		t.Errorf("expected pleasant conditions, got %q", b.Current.Condition)
	}
	if len(b.Forecast) != 4 {
		t.Fatalf("expected 4 forecast days, got %d", len(b.Forecast))
	}
	if b.Forecast[0].Icon != "⛈️" {
		t.Errorf("expected thundery icon for day one, got %q", b.Forecast[0].Icon)
	}
	if b.Forecast[0].HighC != 31 || b.Forecast[0].LowC != 25 {
		t.Errorf("unexpected day one temperatures: %+v", b.Forecast[0])
	}
}

func TestBundleFallbackOnRealtimeFailure(t *testing.T) {
	ts := newFakeUpstream(t, http.StatusInternalServerError, http.StatusOK)
	svc := NewService(NewClient(testConfig(ts.URL)))

	b := svc.Bundle(context.Background())
	if b.Live() {
		t.Fatal("expected fallback bundle")
	}
	assertFallbackCurrent(t, b.Current)
	if b.FallbackReason == "" {
		t.Error("expected a fallback reason")
	}
	if len(b.Forecast) != 4 {
		t.Errorf("expected 4 fallback forecast days, got %d", len(b.Forecast))
	}
}

func TestBundleForecastFailureDiscardsCurrent(t *testing.T) {
	// The current reading fetch succeeds, but the policy is all-or-nothing:
	// a forecast failure replaces the whole bundle with the fallback.
	ts := newFakeUpstream(t, http.StatusOK, http.StatusBadGateway)
	svc := NewService(NewClient(testConfig(ts.URL)))

	b := svc.Bundle(context.Background())
	if b.Live() {
		t.Fatal("expected fallback bundle")
	}
	assertFallbackCurrent(t, b.Current)
}

func TestBundleFallbackOnMalformedPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	svc := NewService(NewClient(testConfig(ts.URL)))
	if b := svc.Bundle(context.Background()); b.Live() {
		t.Fatal("expected fallback on malformed payload")
	}
}

func TestCurrentConditionsFallsBackToFirstStation(t *testing.T) {
	ts := newFakeUpstream(t, http.StatusOK, http.StatusOK)
	cfg := testConfig(ts.URL)
	cfg.PreferredStation = "S999" // not in the response
	client := NewClient(cfg)

	cur, err := client.CurrentConditions(context.Background())
	if err != nil {
		t.Fatalf("CurrentConditions failed: %v", err)
	}
	// S107 sorts before S24, so it is the first available station.
	if cur.TemperatureC != 30.5 {
		t.Errorf("expected first station reading, got %+v", cur)
	}
}

func assertFallbackCurrent(t *testing.T, cur CurrentWeather) {
	t.Helper()
	if cur.TemperatureC != 29 || cur.HumidityPct != 78 || cur.WindKPH != 12 || cur.RainfallMM != 0 {
		t.Errorf("unexpected fallback reading: %+v", cur)
	}
	if cur.Condition != ConditionPleasant {
		t.Errorf("expected pleasant fallback condition, got %q", cur.Condition)
	}
}
