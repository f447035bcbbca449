package server

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/destination-intel/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// Server runs the HTTP API alongside the warm-up scheduler.
type Server struct {
	app   *fiber.App
	sched *scheduler.Scheduler
	addr  string
}

// New creates a Server listening on addr, e.g. ":8080". sched may be nil.
func New(app *fiber.App, sched *scheduler.Scheduler, addr string) *Server {
	return &Server{app: app, sched: sched, addr: addr}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.sched != nil {
		if err := s.sched.Start(); err != nil {
			return err
		}
		defer s.sched.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO: listening on %s", s.addr)
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("ERROR: error during shutdown: %v", err)
		return err
	}
	log.Println("INFO: server stopped")
	return nil
}
