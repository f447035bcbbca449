package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a latitude or longitude falls outside the valid range.
var ErrOutOfRange = errors.New("coordinates out of range")

// Coordinates is an immutable latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"gte=-180,lte=180"`
}

// Validate checks latitude is in [-90,90] and longitude in [-180,180].
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrOutOfRange, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrOutOfRange, c.Longitude)
	}
	return nil
}

// String renders the pair as "lat,lon" with six decimals.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}
