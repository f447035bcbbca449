package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/obs"
	"github.com/i474232898/destination-intel/internal/upstream"
	"github.com/i474232898/destination-intel/internal/weather"
)

const defaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

// openMeteoTimeLayout is the ISO8601 form Open-Meteo uses for current_weather.time (GMT).
const openMeteoTimeLayout = "2006-01-02T15:04"

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *upstream.Client
	now     func() time.Time
}

// NewOpenMeteoProvider creates a provider; an empty baseURL selects the public API.
func NewOpenMeteoProvider(client *upstream.Client, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = defaultOpenMeteoURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		client:  client,
		now:     time.Now,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, coords geo.Coordinates) (_ weather.Snapshot, err error) {
	if err := weather.CheckCoordinates(coords); err != nil {
		return weather.Snapshot{}, err
	}
	defer obs.Time(ctx, "weather.openmeteo")(&err)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', 6, 64))
		values.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', 6, 64))
		values.Set("current_weather", "true")
		values.Set("windspeed_unit", "kmh")
		values.Set("timezone", "GMT")

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	var payload struct {
		CurrentWeather *struct {
			Temperature   *float64 `json:"temperature"`
			WindSpeed     *float64 `json:"windspeed"`
			WindDirection *float64 `json:"winddirection"`
			WeatherCode   *int     `json:"weathercode"`
			Time          string   `json:"time"`
		} `json:"current_weather"`
	}

	if err := p.client.GetJSON(ctx, buildRequest, &payload); err != nil {
		return weather.Snapshot{}, err
	}

	cw := payload.CurrentWeather
	if cw == nil || cw.Temperature == nil || cw.WindSpeed == nil || cw.WeatherCode == nil {
		return weather.Snapshot{}, fmt.Errorf("%s: %w: current_weather incomplete", p.name, upstream.ErrMalformed)
	}

	var windDir float64
	if cw.WindDirection != nil {
		windDir = *cw.WindDirection
	}

	return weather.Snapshot{
		TemperatureC:         *cw.Temperature,
		WindSpeedKph:         *cw.WindSpeed,
		WindDirectionDeg:     windDir,
		ConditionCode:        *cw.WeatherCode,
		ConditionDescription: weather.DescribeWMO(*cw.WeatherCode),
		Condition:            weather.ClassifyWMO(*cw.WeatherCode),
		ObservedAt:           p.parseTime(cw.Time),
		ProviderName:         p.name,
	}, nil
}

func (p *OpenMeteoProvider) parseTime(s string) time.Time {
	if ts, err := time.ParseInLocation(openMeteoTimeLayout, s, time.UTC); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC()
	}
	return p.now().UTC()
}
