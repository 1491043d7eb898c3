package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/s777ia/ShoreSquad/internal/config"
)

// Knots to km/h; the realtime endpoint reports wind in knots.
const knotsToKPH = 1.852

// Client fetches raw readings from the two public endpoints and maps them to
// the normalized shapes. It never applies the fallback policy itself; that is
// the Service's job.
type Client struct {
	realtimeURL      string
	forecastURL      string
	preferredStation string
	httpClient       *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		realtimeURL:      cfg.RealtimeURL,
		forecastURL:      cfg.ForecastURL,
		preferredStation: cfg.PreferredStation,
		httpClient:       &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Raw shape of the realtime readings endpoint: the latest reading per
// station, keyed by station identifier.
type realtimeResponse struct {
	Items []struct {
		Timestamp time.Time                 `json:"timestamp"`
		Readings  map[string]stationReading `json:"readings"`
	} `json:"items"`
}

type stationReading struct {
	TemperatureC float64 `json:"temperature"`
	HumidityPct  float64 `json:"humidity"`
	WindKnots    float64 `json:"wind_speed"`
	RainfallMM   float64 `json:"rainfall"`
}

// Raw shape of the 4-day outlook endpoint.
type forecastResponse struct {
	Items []struct {
		Forecasts []struct {
			Date        string `json:"date"`
			Forecast    string `json:"forecast"`
			Temperature struct {
				Low  float64 `json:"low"`
				High float64 `json:"high"`
			} `json:"temperature"`
			RelativeHumidity struct {
				Low  float64 `json:"low"`
				High float64 `json:"high"`
			} `json:"relative_humidity"`
			Wind struct {
				Speed struct {
					Low  float64 `json:"low"`
					High float64 `json:"high"`
				} `json:"speed"`
				Direction string `json:"direction"`
			} `json:"wind"`
		} `json:"forecasts"`
	} `json:"items"`
}

// CurrentConditions fetches the latest station readings and normalizes the
// nearest station's values.
func (c *Client) CurrentConditions(ctx context.Context) (CurrentWeather, error) {
	var resp realtimeResponse
	if err := c.fetchJSON(ctx, c.realtimeURL, &resp); err != nil {
		return CurrentWeather{}, err
	}
	if len(resp.Items) == 0 || len(resp.Items[0].Readings) == 0 {
		return CurrentWeather{}, fmt.Errorf("realtime response has no readings")
	}

	item := resp.Items[0]
	reading, ok := item.Readings[c.preferredStation]
	if !ok {
		// Preferred station absent: take the first station in the response.
		ids := make([]string, 0, len(item.Readings))
		for id := range item.Readings {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		reading = item.Readings[ids[0]]
	}

	condition := classifyConditions(reading.TemperatureC, reading.HumidityPct, reading.RainfallMM)
	ts := item.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return CurrentWeather{
		TemperatureC: reading.TemperatureC,
		HumidityPct:  reading.HumidityPct,
		WindKPH:      math.Round(reading.WindKnots * knotsToKPH),
		RainfallMM:   reading.RainfallMM,
		Condition:    condition,
		Description:  conditionAdvisory(condition),
		Icon:         conditionIcon(condition),
		Timestamp:    ts,
	}, nil
}

// Forecast fetches the 4-day outlook and normalizes each day.
func (c *Client) Forecast(ctx context.Context) ([]ForecastDay, error) {
	var resp forecastResponse
	if err := c.fetchJSON(ctx, c.forecastURL, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 || len(resp.Items[0].Forecasts) == 0 {
		return nil, fmt.Errorf("forecast response has no entries")
	}

	raw := resp.Items[0].Forecasts
	out := make([]ForecastDay, 0, len(raw))
	for _, f := range raw {
		icon, desc := classifyForecastText(f.Forecast)
		day := ForecastDay{
			Date:         f.Date,
			Forecast:     f.Forecast,
			HighC:        f.Temperature.High,
			LowC:         f.Temperature.Low,
			HumidityHigh: f.RelativeHumidity.High,
			HumidityLow:  f.RelativeHumidity.Low,
			Icon:         icon,
			Description:  desc,
		}
		if f.Wind.Direction != "" || f.Wind.Speed.High > 0 {
			day.Wind = fmt.Sprintf("%s %.0f-%.0f km/h", f.Wind.Direction,
				math.Round(f.Wind.Speed.Low*knotsToKPH), math.Round(f.Wind.Speed.High*knotsToKPH))
		}
		out = append(out, day)
	}
	return out, nil
}

func (c *Client) fetchJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather api http status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding weather response: %w", err)
	}
	return nil
}
