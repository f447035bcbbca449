package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/i474232898/destination-intel/internal/aggregator"
)

// Aggregator resolves a destination into a combined result.
type Aggregator interface {
	Resolve(ctx context.Context, req aggregator.Request) (aggregator.Result, error)
}

// Server runs until ctx is cancelled.
type Server interface {
	Run(ctx context.Context) error
}

// Dependencies are the collaborators the commands need. Either may be nil when a
// command that uses it is never invoked.
type Dependencies struct {
	Aggregator Aggregator
	Server     Server
	Version    string
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

// Execute runs the CLI with injected dependencies and returns the process exit code.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}
	return 1
}
