package geocode

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/obs"
)

// The geocoder package reads its key from a package variable, so lookups that set it
// are serialized process-wide.
var googleMu sync.Mutex

type googleLookupFunc func(geocoder.Address) (geocoder.Location, error)

// GoogleResolver resolves names with the Google Geocoding API.
type GoogleResolver struct {
	apiKey string
	lookup googleLookupFunc
}

// NewGoogleResolver creates a resolver using apiKey for every request.
func NewGoogleResolver(apiKey string) (*GoogleResolver, error) {
	if apiKey == "" {
		return nil, errors.New("google geocoding api key is empty")
	}
	r := &GoogleResolver{apiKey: apiKey}
	r.lookup = r.geocode
	return r, nil
}

func (r *GoogleResolver) Name() string {
	return "google"
}

func (r *GoogleResolver) geocode(addr geocoder.Address) (geocoder.Location, error) {
	googleMu.Lock()
	defer googleMu.Unlock()

	geocoder.ApiKey = r.apiKey
	return geocoder.Geocoding(addr)
}

// Resolve runs one geocoding lookup. The library call is not context-aware, so the
// result is abandoned (and ErrNotFound returned) when ctx ends first.
func (r *GoogleResolver) Resolve(ctx context.Context, name string) (_ Result, err error) {
	defer obs.Time(ctx, "geocode.google")(&err)

	q := Normalize(name)
	if q == "" {
		return Result{}, ErrEmptyName
	}

	type outcome struct {
		loc geocoder.Location
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		loc, err := r.lookup(geocoder.Address{City: q})
		done <- outcome{loc: loc, err: err}
	}()

	var res outcome
	select {
	case <-ctx.Done():
		return Result{}, fmt.Errorf("%w: %q: %v", ErrNotFound, q, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		return Result{}, fmt.Errorf("%w: %q: %v", ErrNotFound, q, res.err)
	}

	coords := geo.Coordinates{Latitude: res.loc.Latitude, Longitude: res.loc.Longitude}
	if coords == (geo.Coordinates{}) {
		return Result{}, fmt.Errorf("%w: no results for %q", ErrNotFound, q)
	}
	if err := coords.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %q: %v", ErrNotFound, q, err)
	}

	// The library reports coordinates only, so there is no canonical label.
	return Result{Coordinates: coords}, nil
}
