package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/geocode"
)

type recordingResolver struct {
	mu    sync.Mutex
	names []string
}

func (r *recordingResolver) Name() string { return "recording" }

func (r *recordingResolver) Resolve(_ context.Context, name string) (geocode.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	if name == "Atlantis" {
		return geocode.Result{}, geocode.ErrNotFound
	}
	return geocode.Result{Coordinates: geo.Coordinates{Latitude: 1, Longitude: 2}, Label: name}, nil
}

func (r *recordingResolver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}

func TestWarmResolvesEveryDestination(t *testing.T) {
	r := &recordingResolver{}
	s := New([]string{"Paris", "Atlantis", "Tokyo"}, time.Hour, r)

	if got := s.Warm(context.Background()); got != 2 {
		t.Fatalf("resolved = %d, want 2", got)
	}
	if r.count() != 3 {
		t.Fatalf("resolver called %d times, want 3", r.count())
	}
}

func TestStartRunsImmediately(t *testing.T) {
	r := &recordingResolver{}
	s := New([]string{"Paris"}, time.Hour, r)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for r.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("warm-up job did not run after Start")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStartWithoutDestinations(t *testing.T) {
	r := &recordingResolver{}
	s := New(nil, time.Hour, r)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()
	if r.count() != 0 {
		t.Fatal("resolver should not be called")
	}
}
