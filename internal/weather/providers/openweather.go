package providers

import (
	"context"
	"errors"
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

const defaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *upstream.Client
	now     func() time.Time
}

func NewOpenWeatherProvider(client *upstream.Client, apiKey, baseURL string) (*OpenWeatherProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openweather api key is not configured")
	}
	if baseURL == "" {
		baseURL = defaultOpenWeatherURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		now:     time.Now,
	}, nil
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, coords geo.Coordinates) (_ weather.Snapshot, err error) {
	if err := weather.CheckCoordinates(coords); err != nil {
		return weather.Snapshot{}, err
	}
	defer obs.Time(ctx, "weather.openweathermap")(&err)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', 6, 64))
		values.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', 6, 64))

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	var payload struct {
		Name string `json:"name"`
		Dt   int64  `json:"dt"`
		Main *struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Wind *struct {
			Speed *float64 `json:"speed"` // m/s with units=metric
			Deg   float64  `json:"deg"`
		} `json:"wind"`
		Weather []struct {
			ID int `json:"id"`
		} `json:"weather"`
	}

	if err := p.client.GetJSON(ctx, buildRequest, &payload); err != nil {
		return weather.Snapshot{}, err
	}

	if payload.Main == nil || payload.Main.Temp == nil || payload.Wind == nil || payload.Wind.Speed == nil || len(payload.Weather) == 0 {
		return weather.Snapshot{}, fmt.Errorf("%s: %w: main, wind or weather missing", p.name, upstream.ErrMalformed)
	}

	ts := p.now().UTC()
	if payload.Dt > 0 {
		ts = time.Unix(payload.Dt, 0).UTC()
	}

	var label *string
	if payload.Name != "" {
		name := payload.Name
		label = &name
	}

	code := payload.Weather[0].ID
	return weather.Snapshot{
		LocationLabel:        label,
		TemperatureC:         *payload.Main.Temp,
		WindSpeedKph:         *payload.Wind.Speed * 3.6,
		WindDirectionDeg:     payload.Wind.Deg,
		ConditionCode:        code,
		ConditionDescription: weather.DescribeOpenWeather(code),
		Condition:            weather.ClassifyOpenWeather(code),
		ObservedAt:           ts,
		ProviderName:         p.name,
	}, nil
}
