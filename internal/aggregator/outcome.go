package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/i474232898/destination-intel/internal/upstream"
)

// Outcome is the typed result of one upstream call: a value, or the reason the
// field is degraded.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Degraded reports whether the call failed.
func (o Outcome[T]) Degraded() bool {
	return o.Err != nil
}

// call runs fn under its own deadline. The outcome is returned no later than the
// deadline even if fn ignores ctx; a panic in fn becomes a degraded outcome.
func call[T any](parent context.Context, timeout time.Duration, fn func(context.Context) (T, error)) Outcome[T] {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	done := make(chan Outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Outcome[T]{Err: fmt.Errorf("%w: provider panic: %v", upstream.ErrUnavailable, r)}
			}
		}()
		v, err := fn(ctx)
		done <- Outcome[T]{Value: v, Err: err}
	}()

	select {
	case out := <-done:
		return out
	case <-ctx.Done():
		return Outcome[T]{Err: fmt.Errorf("%w: %v", upstream.ErrTimeout, ctx.Err())}
	}
}
