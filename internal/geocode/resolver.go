package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/i474232898/destination-intel/internal/geo"
)

var (
	// ErrNotFound is returned when a name could not be resolved. It is never fatal to
	// the aggregate: callers continue without coordinates.
	ErrNotFound = errors.New("place not found")
	// ErrEmptyName is returned, without any provider call, for a blank name.
	ErrEmptyName = errors.New("place name is empty")
)

// Result is a successful resolution.
type Result struct {
	Coordinates geo.Coordinates
	// Label is the provider's canonical name for the place; it may differ from the input.
	Label string
}

// Resolver turns a free-text place name into coordinates.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, name string) (Result, error)
}

// Normalize trims and collapses whitespace so equivalent names share one cache key.
func Normalize(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
