package weather

import (
	"context"
	"errors"
	"fmt"

	"github.com/i474232898/destination-intel/internal/geo"
)

// ErrInvalidCoordinates is returned, without a provider call, for out-of-range input.
var ErrInvalidCoordinates = errors.New("invalid coordinates for weather lookup")

// Provider abstracts a current-weather source (e.g. Open-Meteo, OpenWeatherMap).
// Fetch returns an error wrapping one of the upstream errors when the provider is
// unavailable, times out or sends a malformed payload.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, coords geo.Coordinates) (Snapshot, error)
}

// CheckCoordinates wraps range failures in ErrInvalidCoordinates.
func CheckCoordinates(coords geo.Coordinates) error {
	if err := coords.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return nil
}
