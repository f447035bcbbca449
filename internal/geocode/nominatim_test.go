package geocode

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/i474232898/destination-intel/internal/upstream"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestResolver(t *testing.T, responseBody string, statusCode int, calls *atomic.Int32) *NominatimResolver {
	t.Helper()
	httpClient := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if calls != nil {
				calls.Add(1)
			}
			if req.URL.Query().Get("format") != "json" {
				t.Fatalf("expected format=json, got %q", req.URL.Query().Get("format"))
			}
			if req.Header.Get("User-Agent") == "" {
				t.Fatal("expected a User-Agent header")
			}
			return &http.Response{
				StatusCode: statusCode,
				Header:     make(http.Header),
				Body:       io.NopCloser(strings.NewReader(responseBody)),
			}, nil
		}),
	}
	client := upstream.NewClient("nominatim", httpClient, upstream.DefaultBreaker())
	return NewNominatimResolver(client, NominatimConfig{BaseURL: "https://nominatim.test/search"})
}

func TestNominatimResolveParsesStringCoordinates(t *testing.T) {
	r := newTestResolver(t, `[{"lat":"42.3601","lon":"-71.0589","name":"Boston","display_name":"Boston, Suffolk County, Massachusetts, United States"}]`, http.StatusOK, nil)

	res, err := r.Resolve(context.Background(), "  boston ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if math.Abs(res.Coordinates.Latitude-42.3601) > 1e-9 {
		t.Fatalf("expected lat 42.3601, got %f", res.Coordinates.Latitude)
	}
	if math.Abs(res.Coordinates.Longitude+71.0589) > 1e-9 {
		t.Fatalf("expected lon -71.0589, got %f", res.Coordinates.Longitude)
	}
	if !strings.HasPrefix(res.Label, "Boston, Suffolk") {
		t.Fatalf("unexpected label %q", res.Label)
	}
}

func TestNominatimResolveNotFound(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "empty result", body: `[]`, status: http.StatusOK},
		{name: "server error", body: `oops`, status: http.StatusInternalServerError},
		{name: "malformed payload", body: `{"lat":`, status: http.StatusOK},
		{name: "missing coordinates", body: `[{"name":"Nowhere"}]`, status: http.StatusOK},
		{name: "invalid coordinates", body: `[{"lat":"not-a-number","lon":"1"}]`, status: http.StatusOK},
		{name: "out of range", body: `[{"lat":"123","lon":"1"}]`, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, tt.body, tt.status, nil)
			_, err := r.Resolve(context.Background(), "Atlantis")
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestNominatimResolveEmptyNameMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	r := newTestResolver(t, `[]`, http.StatusOK, &calls)

	_, err := r.Resolve(context.Background(), "   \t")
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no outbound calls, got %d", calls.Load())
	}
}
