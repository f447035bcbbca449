package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/destination-intel/internal/common"
	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/obs"
	"github.com/i474232898/destination-intel/internal/upstream"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// NominatimConfig configures a NominatimResolver.
type NominatimConfig struct {
	BaseURL   string
	UserAgent string
}

// NominatimResolver resolves names using OSM Nominatim.
type NominatimResolver struct {
	client    *upstream.Client
	baseURL   string
	userAgent string
}

// NewNominatimResolver creates a resolver issuing requests through client.
func NewNominatimResolver(client *upstream.Client, cfg NominatimConfig) *NominatimResolver {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultNominatimURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "destination-intel/1.0"
	}
	return &NominatimResolver{
		client:    client,
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

func (r *NominatimResolver) Name() string {
	return "nominatim"
}

// coordinate accepts both quoted and bare JSON numbers.
type coordinate float64

func (c *coordinate) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("parse coordinate %q: %w", text, err)
		}
		*c = coordinate(value)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("coordinate must be a string or number")
	}
	*c = coordinate(value)
	return nil
}

type nominatimResult struct {
	Lat         *coordinate `json:"lat"`
	Lon         *coordinate `json:"lon"`
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
}

// Resolve performs one search request and returns the first hit. Provider failures,
// timeouts, malformed payloads and empty result sets all yield ErrNotFound.
func (r *NominatimResolver) Resolve(ctx context.Context, name string) (_ Result, err error) {
	defer obs.Time(ctx, "geocode.nominatim")(&err)

	q := Normalize(name)
	if q == "" {
		return Result{}, ErrEmptyName
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", q)
		values.Set("format", "json")
		values.Set("limit", "1")
		values.Set("accept-language", "en")

		req, err := http.NewRequest(http.MethodGet, r.baseURL+"?"+values.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", r.userAgent)
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	var payload []nominatimResult
	if err := r.client.GetJSON(ctx, buildRequest, &payload); err != nil {
		return Result{}, fmt.Errorf("%w: %q: %v", ErrNotFound, q, err)
	}
	if len(payload) == 0 {
		return Result{}, fmt.Errorf("%w: no results for %q", ErrNotFound, q)
	}

	first := payload[0]
	if first.Lat == nil || first.Lon == nil {
		return Result{}, fmt.Errorf("%w: %q: %v", ErrNotFound, q, upstream.ErrMalformed)
	}

	coords := geo.Coordinates{Latitude: float64(*first.Lat), Longitude: float64(*first.Lon)}
	if err := coords.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %q: %v", ErrNotFound, q, err)
	}

	return Result{Coordinates: coords, Label: common.FirstNonEmpty(first.DisplayName, first.Name, q)}, nil
}
