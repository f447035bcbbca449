package aggregator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/places"
	"github.com/i474232898/destination-intel/internal/weather"
)

// ErrInvalidInput is the only error Resolve returns. It is raised before any
// provider is called.
var ErrInvalidInput = errors.New("invalid input")

// Names recorded in Result.Degraded.
const (
	SourceGeocode           = "geocode"
	SourceWeather           = "weather"
	SourcePlacesLodging     = "places.lodging"
	SourcePlacesDining      = "places.dining"
	SourcePlacesAttractions = "places.attractions"
)

// PlaceQuery identifies the destination. At least one field must be set; when both
// are, Coordinates wins and no geocoding happens.
type PlaceQuery struct {
	RawName     *string
	Coordinates *geo.Coordinates
}

// NameQuery builds a query from a place name.
func NameQuery(name string) PlaceQuery {
	return PlaceQuery{RawName: &name}
}

// CoordinatesQuery builds a query from a coordinate pair.
func CoordinatesQuery(c geo.Coordinates) PlaceQuery {
	return PlaceQuery{Coordinates: &c}
}

// Validate enforces the PlaceQuery invariant.
func (q PlaceQuery) Validate() error {
	if q.Coordinates != nil {
		if err := q.Coordinates.Validate(); err != nil {
			return fmt.Errorf("%w: destination %v", ErrInvalidInput, err)
		}
		return nil
	}
	if q.RawName == nil {
		return fmt.Errorf("%w: a place name or coordinates are required", ErrInvalidInput)
	}
	if strings.TrimSpace(*q.RawName) == "" {
		return fmt.Errorf("%w: place name is empty", ErrInvalidInput)
	}
	return nil
}

// Request is one aggregation call.
type Request struct {
	Query  PlaceQuery
	Origin *geo.Coordinates
	// Mode defaults to car when empty.
	Mode geo.Mode
}

// Location is the resolved destination.
type Location struct {
	geo.Coordinates `yaml:",inline"`
	Label           string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Nearby groups points of interest per category. Sequences are never nil.
type Nearby struct {
	Lodging     []places.PointOfInterest `json:"lodging" yaml:"lodging"`
	Dining      []places.PointOfInterest `json:"dining" yaml:"dining"`
	Attractions []places.PointOfInterest `json:"attractions" yaml:"attractions"`
}

// TravelMetrics is present only when both origin and destination are known.
type TravelMetrics struct {
	DistanceKm       float64  `json:"distanceKm" yaml:"distanceKm"`
	DurationEstimate string   `json:"durationEstimate" yaml:"durationEstimate"`
	Mode             geo.Mode `json:"mode" yaml:"mode"`
}

// Result is the unified output. It is always well formed; missing data shows up as
// nil fields, empty sequences and entries in Degraded.
type Result struct {
	Coordinates *Location         `json:"coordinates" yaml:"coordinates"`
	Weather     *weather.Snapshot `json:"weather" yaml:"weather"`
	Nearby      Nearby            `json:"nearby" yaml:"nearby"`
	Travel      *TravelMetrics    `json:"travel" yaml:"travel"`
	Degraded    []string          `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

func emptyResult() Result {
	return Result{
		Nearby: Nearby{
			Lodging:     []places.PointOfInterest{},
			Dining:      []places.PointOfInterest{},
			Attractions: []places.PointOfInterest{},
		},
	}
}

func placesSource(c places.Category) string {
	return "places." + string(c)
}
