package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/destination-intel/internal/common"
	"github.com/i474232898/destination-intel/internal/geo"
)

const (
	GeocoderNominatim = "nominatim"
	GeocoderGoogle    = "google"

	WeatherOpenMeteo      = "openmeteo"
	WeatherOpenWeatherMap = "openweathermap"
)

type AppConfig struct {
	Port string

	// HTTPTimeout is the upper bound of the shared outbound client. Per-provider
	// deadlines below are normally shorter.
	HTTPTimeout time.Duration

	Geocoder              string
	NominatimURL          string
	GoogleGeocodingAPIKey string
	UserAgent             string

	WeatherProvider   string
	OpenWeatherAPIKey string

	GeoapifyAPIKey string

	GeocodeTimeout time.Duration
	WeatherTimeout time.Duration
	PlacesTimeout  time.Duration

	PlacesRadiusMeters int
	PlacesLimit        int

	Speeds geo.SpeedTable

	// Geocode cache retention.
	GeocodeCacheSize int           // max cached names (0 = unlimited)
	GeocodeCacheTTL  time.Duration // max age of a cached name (0 = unlimited)

	// Destinations pre-resolved by the scheduler.
	WarmDestinations []string
	WarmInterval     time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment without touching .env.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error

	cfg.Port = getenvDefault("PORT", "8080")

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	cfg.Geocoder = strings.ToLower(getenvDefault("GEOCODER", GeocoderNominatim))
	cfg.NominatimURL = os.Getenv("NOMINATIM_URL")
	cfg.GoogleGeocodingAPIKey = os.Getenv("GOOGLE_GEOCODING_API_KEY")
	cfg.UserAgent = getenvDefault("USER_AGENT", "destination-intel/1.0")

	cfg.WeatherProvider = strings.ToLower(getenvDefault("WEATHER_PROVIDER", WeatherOpenMeteo))
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeoapifyAPIKey = os.Getenv("GEOAPIFY_API_KEY")

	if cfg.GeocodeTimeout, err = getenvDuration("GEOCODE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.WeatherTimeout, err = getenvDuration("WEATHER_TIMEOUT", 4*time.Second); err != nil {
		return nil, err
	}
	if cfg.PlacesTimeout, err = getenvDuration("PLACES_TIMEOUT", 4*time.Second); err != nil {
		return nil, err
	}

	cfg.PlacesRadiusMeters = getenvInt("PLACES_RADIUS_METERS", 5000)
	cfg.PlacesLimit = getenvInt("PLACES_LIMIT", 10)

	defaults := geo.DefaultSpeeds()
	cfg.Speeds = geo.SpeedTable{}
	for mode, key := range map[geo.Mode]string{
		geo.ModeCar:    "SPEED_CAR_KMH",
		geo.ModeTrain:  "SPEED_TRAIN_KMH",
		geo.ModeFlight: "SPEED_FLIGHT_KMH",
	} {
		speed := getenvFloat(key, defaults[mode])
		if speed <= 0 {
			return nil, fmt.Errorf("invalid %s: must be positive", key)
		}
		cfg.Speeds[mode] = speed
	}

	cfg.GeocodeCacheSize = getenvInt("GEOCODE_CACHE_SIZE", 512)
	if cfg.GeocodeCacheTTL, err = getenvDuration("GEOCODE_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	cfg.WarmDestinations = common.SplitList(os.Getenv("WARM_DESTINATIONS"))
	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", 6*time.Hour); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Geocoder {
	case GeocoderNominatim:
	case GeocoderGoogle:
		if c.GoogleGeocodingAPIKey == "" {
			return fmt.Errorf("GOOGLE_GEOCODING_API_KEY is required when GEOCODER=%s", GeocoderGoogle)
		}
	default:
		return fmt.Errorf("invalid GEOCODER %q: use %s or %s", c.Geocoder, GeocoderNominatim, GeocoderGoogle)
	}

	switch c.WeatherProvider {
	case WeatherOpenMeteo:
	case WeatherOpenWeatherMap:
		if c.OpenWeatherAPIKey == "" {
			return fmt.Errorf("OPENWEATHER_API_KEY is required when WEATHER_PROVIDER=%s", WeatherOpenWeatherMap)
		}
	default:
		return fmt.Errorf("invalid WEATHER_PROVIDER %q: use %s or %s", c.WeatherProvider, WeatherOpenMeteo, WeatherOpenWeatherMap)
	}

	if c.PlacesRadiusMeters <= 0 || c.PlacesLimit <= 0 {
		return fmt.Errorf("PLACES_RADIUS_METERS and PLACES_LIMIT must be positive")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
