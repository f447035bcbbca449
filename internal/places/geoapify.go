package places

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/obs"
	"github.com/i474232898/destination-intel/internal/upstream"
)

const defaultGeoapifyURL = "https://api.geoapify.com/v2/places"

// geoapifyCategories translates categories into Geoapify's vocabulary.
var geoapifyCategories = map[Category][]string{
	CategoryLodging:     {"accommodation.hotel", "accommodation.guest_house", "accommodation.hostel", "accommodation.motel", "accommodation.apartment"},
	CategoryDining:      {"catering.restaurant", "catering.cafe", "catering.bistro"},
	CategoryAttractions: {"tourism.attraction", "tourism.sights", "entertainment.museum", "entertainment.culture"},
}

// GeoapifyProvider implements Provider with the Geoapify Places API.
type GeoapifyProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *upstream.Client
}

func NewGeoapifyProvider(client *upstream.Client, apiKey, baseURL string) (*GeoapifyProvider, error) {
	if apiKey == "" {
		return nil, errors.New("geoapify api key is not configured")
	}
	if baseURL == "" {
		baseURL = defaultGeoapifyURL
	}
	return &GeoapifyProvider{
		name:    "geoapify",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
	}, nil
}

func (p *GeoapifyProvider) Name() string {
	return p.name
}

type geoapifyResponse struct {
	Features *[]struct {
		Properties struct {
			Name       string   `json:"name"`
			Categories []string `json:"categories"`
			Distance   *float64 `json:"distance"`
			PlaceID    string   `json:"place_id"`
			Lat        *float64 `json:"lat"`
			Lon        *float64 `json:"lon"`
		} `json:"properties"`
	} `json:"features"`
}

func (p *GeoapifyProvider) FetchNearby(
	ctx context.Context,
	coords geo.Coordinates,
	category Category,
	opts SearchOptions,
) (_ []PointOfInterest, err error) {
	defer obs.Time(ctx, "places.geoapify."+string(category))(&err)

	if err := coords.Validate(); err != nil {
		return nil, err
	}
	vocab, ok := geoapifyCategories[category]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported category %q", p.name, category)
	}
	opts = opts.withDefaults()

	lon := strconv.FormatFloat(coords.Longitude, 'f', 6, 64)
	lat := strconv.FormatFloat(coords.Latitude, 'f', 6, 64)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("categories", strings.Join(vocab, ","))
		values.Set("filter", fmt.Sprintf("circle:%s,%s,%d", lon, lat, opts.RadiusMeters))
		values.Set("bias", fmt.Sprintf("proximity:%s,%s", lon, lat))
		values.Set("limit", strconv.Itoa(opts.Limit))
		values.Set("apiKey", p.apiKey)

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	var payload geoapifyResponse
	if err := p.client.GetJSON(ctx, buildRequest, &payload); err != nil {
		return nil, err
	}
	if payload.Features == nil {
		return nil, fmt.Errorf("%s: %w: features missing", p.name, upstream.ErrMalformed)
	}

	out := make([]PointOfInterest, 0, len(*payload.Features))
	for _, f := range *payload.Features {
		props := f.Properties
		name := strings.TrimSpace(props.Name)
		if name == "" {
			continue
		}

		var distance float64
		switch {
		case props.Distance != nil:
			distance = *props.Distance
		case props.Lat != nil && props.Lon != nil:
			distance = geo.HaversineKm(coords, geo.Coordinates{Latitude: *props.Lat, Longitude: *props.Lon}) * 1000
		}

		out = append(out, PointOfInterest{
			Name:           name,
			DistanceMeters: distance,
			CategoryTags:   tagSet(props.Categories),
			ExternalID:     props.PlaceID,
		})
	}

	return out, nil
}
