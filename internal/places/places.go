package places

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/i474232898/destination-intel/internal/geo"
)

// Category is this system's stable POI taxonomy.
type Category string

const (
	CategoryLodging     Category = "lodging"
	CategoryDining      Category = "dining"
	CategoryAttractions Category = "attractions"
)

// Categories lists every category in a fixed order.
var Categories = []Category{CategoryLodging, CategoryDining, CategoryAttractions}

const (
	DefaultRadiusMeters = 5000
	DefaultLimit        = 10
)

// PointOfInterest is a normalized nearby place. Name is never empty.
type PointOfInterest struct {
	Name           string   `json:"name" yaml:"name"`
	DistanceMeters float64  `json:"distanceMeters" yaml:"distanceMeters"`
	CategoryTags   []string `json:"categoryTags" yaml:"categoryTags"`
	ExternalID     string   `json:"externalId" yaml:"externalId"`
}

// SearchOptions bounds a nearby search. Zero values select the defaults.
type SearchOptions struct {
	RadiusMeters int
	// Limit is the number of results requested from the provider, not a cap applied
	// to what it returns.
	Limit int
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.RadiusMeters <= 0 {
		o.RadiusMeters = DefaultRadiusMeters
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// Provider fetches nearby points of interest. Results keep the provider's order.
// A returned error means the category is unavailable for this request; callers
// substitute an empty sequence.
type Provider interface {
	Name() string
	FetchNearby(ctx context.Context, coords geo.Coordinates, category Category, opts SearchOptions) ([]PointOfInterest, error)
}

// ParseCategory maps a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported category %q", s)
}

// tagSet deduplicates and sorts tags so the set renders deterministically.
func tagSet(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
