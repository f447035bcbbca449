package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/destination-intel/internal/geo"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Geocoder != GeocoderNominatim || cfg.WeatherProvider != WeatherOpenMeteo {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.GeocodeTimeout != 5*time.Second || cfg.WeatherTimeout != 4*time.Second || cfg.PlacesTimeout != 4*time.Second {
		t.Fatalf("unexpected timeouts: %v %v %v", cfg.GeocodeTimeout, cfg.WeatherTimeout, cfg.PlacesTimeout)
	}
	if !reflect.DeepEqual(cfg.Speeds, geo.DefaultSpeeds()) {
		t.Fatalf("speeds = %v", cfg.Speeds)
	}
	if cfg.PlacesRadiusMeters != 5000 || cfg.PlacesLimit != 10 {
		t.Fatalf("places defaults = %d/%d", cfg.PlacesRadiusMeters, cfg.PlacesLimit)
	}
	if cfg.GeocodeCacheSize != 512 || cfg.GeocodeCacheTTL != 24*time.Hour || cfg.WarmInterval != 6*time.Hour {
		t.Fatalf("cache defaults = %d/%v/%v", cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL, cfg.WarmInterval)
	}
	if cfg.WarmDestinations != nil {
		t.Fatalf("warm destinations = %v", cfg.WarmDestinations)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEOCODER", "Google")
	t.Setenv("GOOGLE_GEOCODING_API_KEY", "g-key")
	t.Setenv("WEATHER_PROVIDER", "openweathermap")
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")
	t.Setenv("WEATHER_TIMEOUT", "1500ms")
	t.Setenv("SPEED_TRAIN_KMH", "120")
	t.Setenv("WARM_DESTINATIONS", "Paris, Tokyo")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.Geocoder != GeocoderGoogle || cfg.WeatherProvider != WeatherOpenWeatherMap {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.WeatherTimeout != 1500*time.Millisecond {
		t.Fatalf("weather timeout = %v", cfg.WeatherTimeout)
	}
	if cfg.Speeds[geo.ModeTrain] != 120 || cfg.Speeds[geo.ModeCar] != 60 {
		t.Fatalf("speeds = %v", cfg.Speeds)
	}
	if !reflect.DeepEqual(cfg.WarmDestinations, []string{"Paris", "Tokyo"}) {
		t.Fatalf("warm destinations = %v", cfg.WarmDestinations)
	}
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "google without key", env: map[string]string{"GEOCODER": "google"}, want: "GOOGLE_GEOCODING_API_KEY"},
		{name: "unknown geocoder", env: map[string]string{"GEOCODER": "bing"}, want: "GEOCODER"},
		{name: "openweathermap without key", env: map[string]string{"WEATHER_PROVIDER": "openweathermap"}, want: "OPENWEATHER_API_KEY"},
		{name: "bad duration", env: map[string]string{"PLACES_TIMEOUT": "soon"}, want: "PLACES_TIMEOUT"},
		{name: "zero speed", env: map[string]string{"SPEED_FLIGHT_KMH": "0"}, want: "SPEED_FLIGHT_KMH"},
		{name: "negative limit", env: map[string]string{"PLACES_LIMIT": "-1"}, want: "PLACES_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}
