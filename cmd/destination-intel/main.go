package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/i474232898/destination-intel/internal/aggregator"
	httpapi "github.com/i474232898/destination-intel/internal/api/http"
	"github.com/i474232898/destination-intel/internal/cli"
	"github.com/i474232898/destination-intel/internal/config"
	"github.com/i474232898/destination-intel/internal/geocode"
	"github.com/i474232898/destination-intel/internal/places"
	"github.com/i474232898/destination-intel/internal/scheduler"
	"github.com/i474232898/destination-intel/internal/server"
	"github.com/i474232898/destination-intel/internal/store"
	"github.com/i474232898/destination-intel/internal/upstream"
	"github.com/i474232898/destination-intel/internal/weather"
	"github.com/i474232898/destination-intel/internal/weather/providers"
)

const serviceName = "destination-intel"

var version = "dev"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls; per-call deadlines are shorter.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	resolver, err := newResolver(cfg, httpClient)
	if err != nil {
		log.Fatalf("failed to create geocoder: %v", err)
	}

	// Geocode cache with configured retention.
	cache := store.NewMemoryCache[geocode.Result](cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL)
	cached := geocode.NewCachingResolver(resolver, cache)

	weatherProvider, err := newWeatherProvider(cfg, httpClient)
	if err != nil {
		log.Fatalf("failed to create weather provider: %v", err)
	}

	placesProvider := newPlacesProvider(cfg, httpClient)

	orch := aggregator.New(cached, weatherProvider, placesProvider, aggregator.Config{
		GeocodeTimeout: cfg.GeocodeTimeout,
		WeatherTimeout: cfg.WeatherTimeout,
		PlacesTimeout:  cfg.PlacesTimeout,
		Search: places.SearchOptions{
			RadiusMeters: cfg.PlacesRadiusMeters,
			Limit:        cfg.PlacesLimit,
		},
		Speeds: cfg.Speeds,
	})

	// Scheduler that keeps frequently requested destinations in the geocode cache.
	sched := scheduler.New(cfg.WarmDestinations, cfg.WarmInterval, cached)

	app := httpapi.NewApp(orch, serviceName)
	srv := server.New(app, sched, ":"+cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := cli.Dependencies{
		Aggregator: orch,
		Server:     srv,
		Version:    version,
	}

	code := cli.Execute(ctx, os.Args[1:], deps, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newResolver(cfg *config.AppConfig, httpClient *http.Client) (geocode.Resolver, error) {
	switch cfg.Geocoder {
	case config.GeocoderGoogle:
		return geocode.NewGoogleResolver(cfg.GoogleGeocodingAPIKey)
	default:
		client := upstream.NewClient("nominatim", httpClient, upstream.DefaultBreaker())
		return geocode.NewNominatimResolver(client, geocode.NominatimConfig{
			BaseURL:   cfg.NominatimURL,
			UserAgent: cfg.UserAgent,
		}), nil
	}
}

func newWeatherProvider(cfg *config.AppConfig, httpClient *http.Client) (weather.Provider, error) {
	switch cfg.WeatherProvider {
	case config.WeatherOpenWeatherMap:
		client := upstream.NewClient("openweathermap", httpClient, upstream.DefaultBreaker())
		return providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey, "")
	default:
		client := upstream.NewClient("openmeteo", httpClient, upstream.DefaultBreaker())
		return providers.NewOpenMeteoProvider(client, ""), nil
	}
}

func newPlacesProvider(cfg *config.AppConfig, httpClient *http.Client) places.Provider {
	if cfg.GeoapifyAPIKey == "" {
		log.Println("INFO: GEOAPIFY_API_KEY not set; nearby places will be reported as degraded")
		return places.Disabled("GEOAPIFY_API_KEY is not set")
	}
	client := upstream.NewClient("geoapify", httpClient, upstream.DefaultBreaker())
	p, err := places.NewGeoapifyProvider(client, cfg.GeoapifyAPIKey, "")
	if err != nil {
		log.Printf("ERROR: failed to create places provider: %v", err)
		return places.Disabled(err.Error())
	}
	return p
}
