package geo

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

var (
	newYork = Coordinates{Latitude: 40.7128, Longitude: -74.0060}
	boston  = Coordinates{Latitude: 42.3601, Longitude: -71.0589}
)

func TestHaversineNewYorkBoston(t *testing.T) {
	got := HaversineKm(newYork, boston)
	if math.Abs(got-306) > 2 {
		t.Fatalf("HaversineKm(NYC, Boston) = %.2f, want 306±2", got)
	}

	if d := EstimateDuration(got, ModeCar); d != "5h 6m" {
		t.Fatalf("EstimateDuration(%.2f, car) = %q, want %q", got, d, "5h 6m")
	}
}

func TestHaversineSymmetryAndIdentity(t *testing.T) {
	points := []Coordinates{
		newYork,
		boston,
		{Latitude: 0, Longitude: 0},
		{Latitude: 90, Longitude: 0},
		{Latitude: -90, Longitude: 180},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 51.5074, Longitude: -0.1278},
		{Latitude: 0, Longitude: 180},
		{Latitude: 0, Longitude: -180},
	}

	for _, a := range points {
		if d := HaversineKm(a, a); d != 0 {
			t.Errorf("HaversineKm(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range points {
			ab := HaversineKm(a, b)
			ba := HaversineKm(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("asymmetric distance %v<->%v: %v vs %v", a, b, ab, ba)
			}
		}
	}
}

func TestEstimateDurationMonotonic(t *testing.T) {
	speeds := DefaultSpeeds()
	for _, mode := range []Mode{ModeCar, ModeTrain, ModeFlight} {
		prev := -1
		for km := 0.0; km <= 5000; km += 7.3 {
			d := speeds.EstimateDuration(km, mode)
			minutes := parseDuration(t, d)
			if minutes < prev {
				t.Fatalf("%s: duration decreased at %.1f km: %d < %d", mode, km, minutes, prev)
			}
			prev = minutes
		}
	}
}

func TestEstimateDurationNotAvailable(t *testing.T) {
	tests := []struct {
		name     string
		speeds   SpeedTable
		distance float64
		mode     Mode
	}{
		{name: "nan distance", speeds: DefaultSpeeds(), distance: math.NaN(), mode: ModeCar},
		{name: "infinite distance", speeds: DefaultSpeeds(), distance: math.Inf(1), mode: ModeTrain},
		{name: "zero speed", speeds: SpeedTable{ModeCar: 0}, distance: 10, mode: ModeCar},
		{name: "unknown mode", speeds: DefaultSpeeds(), distance: 10, mode: Mode("boat")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.speeds.EstimateDuration(tt.distance, tt.mode); got != DurationNotAvailable {
				t.Fatalf("EstimateDuration = %q, want %q", got, DurationNotAvailable)
			}
		})
	}
}

func TestEstimateDurationFormatting(t *testing.T) {
	speeds := DefaultSpeeds()
	if got := speeds.EstimateDuration(90, ModeTrain); got != "1h 0m" {
		t.Fatalf("got %q, want 1h 0m", got)
	}
	if got := speeds.EstimateDuration(1050, ModeFlight); got != "1h 30m" {
		t.Fatalf("got %q, want 1h 30m", got)
	}
	if got := speeds.EstimateDuration(0, ModeCar); got != "0h 0m" {
		t.Fatalf("got %q, want 0h 0m", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeCar, "car": ModeCar, " Train ": ModeTrain, "FLIGHT": ModeFlight} {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseMode("bike"); err == nil {
		t.Fatal("expected error for unsupported mode")
	}
}

func TestCoordinatesValidate(t *testing.T) {
	if err := boston.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range []Coordinates{
		{Latitude: 90.1, Longitude: 0},
		{Latitude: 0, Longitude: -180.5},
		{Latitude: math.NaN(), Longitude: 0},
	} {
		if err := c.Validate(); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Validate(%v) = %v, want ErrOutOfRange", c, err)
		}
	}
}

func parseDuration(t *testing.T, s string) int {
	t.Helper()
	var h, m int
	if _, err := fmt.Sscanf(s, "%dh %dm", &h, &m); err != nil {
		t.Fatalf("unparseable duration %q: %v", s, err)
	}
	return h*60 + m
}
