package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/i474232898/destination-intel/internal/aggregator"
	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/obs"
)

type fakeAggregator struct {
	calls int
	last  aggregator.Request
	reqID string
	err   error
}

func (f *fakeAggregator) Resolve(ctx context.Context, req aggregator.Request) (aggregator.Result, error) {
	f.calls++
	f.last = req
	f.reqID = obs.RequestID(ctx)
	if f.err != nil {
		return aggregator.Result{}, f.err
	}
	return aggregator.Result{
		Coordinates: &aggregator.Location{Coordinates: geo.Coordinates{Latitude: 42.3601, Longitude: -71.0589}, Label: "Boston"},
		Nearby:      aggregator.Nearby{},
		Degraded:    []string{aggregator.SourceWeather},
	}, nil
}

type fakeServer struct {
	ran bool
}

func (s *fakeServer) Run(context.Context) error {
	s.ran = true
	return nil
}

func run(t *testing.T, deps Dependencies, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := Execute(context.Background(), args, deps, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func TestLookupJSON(t *testing.T) {
	agg := &fakeAggregator{}
	code, out, errOut := run(t, Dependencies{Aggregator: agg}, "lookup", "--name", "Boston", "--origin", "40.7128,-74.006", "--mode", "train")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}

	if agg.last.Query.RawName == nil || *agg.last.Query.RawName != "Boston" || agg.last.Query.Coordinates != nil {
		t.Fatalf("unexpected query %+v", agg.last.Query)
	}
	if agg.last.Origin == nil || agg.last.Origin.Longitude != -74.006 || agg.last.Mode != geo.ModeTrain {
		t.Fatalf("unexpected request %+v", agg.last)
	}
	if len(agg.reqID) != 36 {
		t.Fatalf("request id = %q", agg.reqID)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	if fmt.Sprint(body["degraded"]) != "[weather]" || body["weather"] != nil {
		t.Fatalf("unexpected output %v", body)
	}
}

func TestLookupYAML(t *testing.T) {
	agg := &fakeAggregator{}
	code, out, errOut := run(t, Dependencies{Aggregator: agg}, "lookup", "--lat", "42.3601", "--lon", "-71.0589", "--format", "yaml")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if agg.last.Query.Coordinates == nil || agg.last.Query.RawName != nil {
		t.Fatalf("unexpected query %+v", agg.last.Query)
	}

	var body struct {
		Coordinates struct {
			Latitude float64 `yaml:"latitude"`
			Label    string  `yaml:"label"`
		} `yaml:"coordinates"`
		Degraded []string `yaml:"degraded"`
	}
	if err := yaml.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, out)
	}
	if body.Coordinates.Latitude != 42.3601 || body.Coordinates.Label != "Boston" || len(body.Degraded) != 1 {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestLookupUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{name: "no destination", args: []string{"lookup"}, code: 2, want: "--name or --lat/--lon"},
		{name: "lat without lon", args: []string{"lookup", "--lat", "1"}, code: 1, want: "lon"},
		{name: "bad origin", args: []string{"lookup", "--name", "Paris", "--origin", "1"}, code: 1, want: "lat,lon"},
		{name: "bad format", args: []string{"lookup", "--name", "Paris", "--format", "xml"}, code: 1, want: "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &fakeAggregator{}
			code, _, errOut := run(t, Dependencies{Aggregator: agg}, tt.args...)
			if code != tt.code {
				t.Fatalf("exit code %d, want %d (stderr: %s)", code, tt.code, errOut)
			}
			if !strings.Contains(errOut, tt.want) {
				t.Fatalf("stderr %q does not mention %q", errOut, tt.want)
			}
			if agg.calls != 0 {
				t.Fatal("aggregator should not be called")
			}
		})
	}
}

func TestLookupInvalidInputExitCode(t *testing.T) {
	agg := &fakeAggregator{err: fmt.Errorf("%w: place name is empty", aggregator.ErrInvalidInput)}
	code, _, errOut := run(t, Dependencies{Aggregator: agg}, "lookup", "--name", " ")
	if code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
	if !strings.Contains(errOut, "invalid input") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestServeRunsServer(t *testing.T) {
	srv := &fakeServer{}
	if code, _, errOut := run(t, Dependencies{Server: srv}, "serve"); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if !srv.ran {
		t.Fatal("server was not run")
	}

	if code, _, _ := run(t, Dependencies{}, "serve"); code != 1 {
		t.Fatalf("serve without server: exit code %d, want 1", code)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, Dependencies{Version: "1.2.3"}, "--version")
	if code != 0 || !strings.Contains(out, "1.2.3") {
		t.Fatalf("exit code %d, output %q", code, out)
	}
}
