package aggregator

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/geocode"
	"github.com/i474232898/destination-intel/internal/obs"
	"github.com/i474232898/destination-intel/internal/places"
	"github.com/i474232898/destination-intel/internal/weather"
)

const (
	defaultGeocodeTimeout = 5 * time.Second
	defaultWeatherTimeout = 4 * time.Second
	defaultPlacesTimeout  = 4 * time.Second
)

// Config holds per-provider deadlines, search bounds and the speed table.
type Config struct {
	GeocodeTimeout time.Duration
	WeatherTimeout time.Duration
	PlacesTimeout  time.Duration
	Search         places.SearchOptions
	Speeds         geo.SpeedTable
}

func (c Config) withDefaults() Config {
	if c.GeocodeTimeout <= 0 {
		c.GeocodeTimeout = defaultGeocodeTimeout
	}
	if c.WeatherTimeout <= 0 {
		c.WeatherTimeout = defaultWeatherTimeout
	}
	if c.PlacesTimeout <= 0 {
		c.PlacesTimeout = defaultPlacesTimeout
	}
	if c.Speeds == nil {
		c.Speeds = geo.DefaultSpeeds()
	}
	return c
}

// Orchestrator combines geocoding, weather, nearby places and travel metrics into a
// single Result. It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	geocoder geocode.Resolver
	weather  weather.Provider
	places   places.Provider
	cfg      Config
}

// New creates an Orchestrator.
func New(geocoder geocode.Resolver, weatherProvider weather.Provider, placesProvider places.Provider, cfg Config) *Orchestrator {
	return &Orchestrator{
		geocoder: geocoder,
		weather:  weatherProvider,
		places:   placesProvider,
		cfg:      cfg.withDefaults(),
	}
}

// Resolve runs one aggregation. Only ErrInvalidInput is returned, before any provider
// call; every upstream failure is absorbed into the result's Degraded set.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (_ Result, err error) {
	defer obs.Time(ctx, "aggregate.resolve")(&err)

	mode, err := o.validate(req)
	if err != nil {
		return Result{}, err
	}

	res := emptyResult()
	var degraded []string

	// Step 1: coordinates.
	loc, ok := o.locate(ctx, req.Query)
	if !ok {
		degraded = append(degraded, SourceGeocode)
	}
	res.Coordinates = loc

	// Steps 2-3: fan-out and fan-in.
	if loc != nil {
		var (
			wg         sync.WaitGroup
			weatherOut Outcome[weather.Snapshot]
			nearbyOut  = make([]Outcome[[]places.PointOfInterest], len(places.Categories))
		)

		// Each goroutine writes only its own variable or slice element.
		wg.Add(1)
		go func() {
			defer wg.Done()
			weatherOut = call(ctx, o.cfg.WeatherTimeout, func(ctx context.Context) (weather.Snapshot, error) {
				return o.weather.Fetch(ctx, loc.Coordinates)
			})
		}()

		for i, category := range places.Categories {
			wg.Add(1)
			go func(i int, category places.Category) {
				defer wg.Done()
				nearbyOut[i] = call(ctx, o.cfg.PlacesTimeout, func(ctx context.Context) ([]places.PointOfInterest, error) {
					return o.places.FetchNearby(ctx, loc.Coordinates, category, o.cfg.Search)
				})
			}(i, category)
		}

		wg.Wait()

		if weatherOut.Degraded() {
			log.Printf("INFO: weather provider degraded for %s: %v", loc.Coordinates, weatherOut.Err)
			degraded = append(degraded, SourceWeather)
		} else {
			snap := weatherOut.Value
			if snap.LocationLabel == nil && loc.Label != "" {
				label := loc.Label
				snap.LocationLabel = &label
			}
			res.Weather = &snap
		}

		for i, category := range places.Categories {
			out := nearbyOut[i]
			pois := out.Value
			if out.Degraded() {
				log.Printf("INFO: places provider degraded for %s/%s: %v", loc.Coordinates, category, out.Err)
				degraded = append(degraded, placesSource(category))
				pois = nil
			}
			if pois == nil {
				pois = []places.PointOfInterest{}
			}
			switch category {
			case places.CategoryLodging:
				res.Nearby.Lodging = pois
			case places.CategoryDining:
				res.Nearby.Dining = pois
			case places.CategoryAttractions:
				res.Nearby.Attractions = pois
			}
		}
	}

	// Step 4: travel metrics.
	if req.Origin != nil && loc != nil {
		km := geo.HaversineKm(*req.Origin, loc.Coordinates)
		res.Travel = &TravelMetrics{
			DistanceKm:       km,
			DurationEstimate: o.cfg.Speeds.EstimateDuration(km, mode),
			Mode:             mode,
		}
	}

	sort.Strings(degraded)
	res.Degraded = degraded
	return res, nil
}

func (o *Orchestrator) validate(req Request) (geo.Mode, error) {
	if err := req.Query.Validate(); err != nil {
		return "", err
	}
	if req.Origin != nil {
		if err := req.Origin.Validate(); err != nil {
			return "", fmt.Errorf("%w: origin %v", ErrInvalidInput, err)
		}
	}
	mode, err := geo.ParseMode(string(req.Mode))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return mode, nil
}

// locate returns the destination, geocoding the name when no coordinates were given.
// ok is false when geocoding failed.
func (o *Orchestrator) locate(ctx context.Context, q PlaceQuery) (*Location, bool) {
	if q.Coordinates != nil {
		loc := &Location{Coordinates: *q.Coordinates}
		if q.RawName != nil {
			loc.Label = geocode.Normalize(*q.RawName)
		}
		return loc, true
	}

	out := call(ctx, o.cfg.GeocodeTimeout, func(ctx context.Context) (geocode.Result, error) {
		return o.geocoder.Resolve(ctx, *q.RawName)
	})
	if out.Degraded() {
		log.Printf("INFO: geocoding %q failed, continuing without coordinates: %v", *q.RawName, out.Err)
		return nil, false
	}
	return &Location{Coordinates: out.Value.Coordinates, Label: out.Value.Label}, true
}
