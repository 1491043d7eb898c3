package weather

import (
	"context"
	"log"
	"time"
)

// Service applies the app's failure policy on top of the Client: any error
// from either endpoint is swallowed and replaced with the fallback bundle, so
// callers always get something to render. A forecast failure discards the
// current reading too; the bundle is live only when both calls succeeded.
type Service struct {
	client *Client
}

func NewService(client *Client) *Service {
	return &Service{client: client}
}

// Bundle fetches current conditions and the 4-day outlook sequentially.
func (s *Service) Bundle(ctx context.Context) Bundle {
	current, err := s.client.CurrentConditions(ctx)
	if err != nil {
		log.Println("warning: realtime weather fetch failed, using fallback:", err)
		return FallbackBundle(time.Now(), err.Error())
	}
	forecast, err := s.client.Forecast(ctx)
	if err != nil {
		log.Println("warning: forecast fetch failed, using fallback:", err)
		return FallbackBundle(time.Now(), err.Error())
	}
	return Bundle{
		Current:   current,
		Forecast:  forecast,
		Source:    SourceLive,
		FetchedAt: time.Now(),
	}
}

// FallbackBundle is the hardcoded record substituted whenever live data is
// unavailable or malformed.
func FallbackBundle(now time.Time, reason string) Bundle {
	return Bundle{
		Current:        FallbackCurrent(now),
		Forecast:       fallbackForecast(now),
		Source:         SourceFallback,
		FallbackReason: reason,
		FetchedAt:      now,
	}
}

// FallbackCurrent is the documented fallback reading.
func FallbackCurrent(now time.Time) CurrentWeather {
	return CurrentWeather{
		TemperatureC: 29,
		HumidityPct:  78,
		WindKPH:      12,
		RainfallMM:   0,
		Condition:    ConditionPleasant,
		Description:  conditionAdvisory(ConditionPleasant),
		Icon:         conditionIcon(ConditionPleasant),
		Timestamp:    now,
	}
}

// fallbackForecast covers the next four days with a neutral outlook.
func fallbackForecast(now time.Time) []ForecastDay {
	labels := []string{"Partly Cloudy", "Afternoon Showers", "Partly Cloudy", "Fair"}
	out := make([]ForecastDay, 0, len(labels))
	for i, label := range labels {
		icon, desc := classifyForecastText(label)
		out = append(out, ForecastDay{
			Date:         now.AddDate(0, 0, i+1).Format("2006-01-02"),
			Forecast:     label,
			HighC:        32,
			LowC:         26,
			HumidityHigh: 90,
			HumidityLow:  60,
			Icon:         icon,
			Description:  desc,
		})
	}
	return out
}
