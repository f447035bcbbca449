package places

import (
	"context"
	"fmt"

	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/upstream"
)

type disabledProvider struct {
	reason string
}

// Disabled returns a Provider whose every call fails with upstream.ErrUnavailable,
// for deployments without places credentials.
func Disabled(reason string) Provider {
	return disabledProvider{reason: reason}
}

func (d disabledProvider) Name() string {
	return "disabled"
}

func (d disabledProvider) FetchNearby(context.Context, geo.Coordinates, Category, SearchOptions) ([]PointOfInterest, error) {
	return nil, fmt.Errorf("%w: %s", upstream.ErrUnavailable, d.reason)
}
