package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/destination-intel/internal/geocode"
)

const warmTimeout = 30 * time.Second

// Scheduler periodically resolves configured destinations so their coordinates are
// already cached when a request arrives.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	resolver     geocode.Resolver
	destinations []string
	interval     time.Duration
}

// New creates a new Scheduler. resolver is normally a geocode.CachingResolver.
func New(destinations []string, interval time.Duration, resolver geocode.Resolver) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:    s,
		resolver:     resolver,
		destinations: destinations,
		interval:     interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The first
// run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.destinations) == 0 {
		log.Println("scheduler: no destinations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()
		s.Warm(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Warm resolves every destination once and returns how many succeeded.
func (s *Scheduler) Warm(ctx context.Context) int {
	log.Println("scheduler: running geocode warm-up job")

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, name := range s.destinations {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			if _, err := s.resolver.Resolve(ctx, name); err != nil {
				log.Printf("scheduler: warm-up failed for %q: %v", name, err)
				return
			}
			mu.Lock()
			ok++
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	log.Printf("scheduler: completed geocode warm-up job (%d/%d resolved)", ok, len(s.destinations))
	return ok
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
