package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrUnavailable covers network failures and non-2xx responses.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrTimeout is returned when the call exceeded its deadline.
	ErrTimeout = errors.New("provider timeout")
	// ErrMalformed is returned when a payload is missing expected fields or cannot be decoded.
	ErrMalformed = errors.New("malformed upstream response")
	// ErrRateLimited is returned on HTTP 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrCircuitOpen is returned without a network call while the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	errNoHTTPClient = errors.New("http client not configured")
)

// BreakerConfig controls the per-provider circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	OpenTimeout      time.Duration
	FailureThreshold uint32
}

// DefaultBreaker mirrors the settings used for every provider unless overridden.
func DefaultBreaker() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      5,
		Interval:         1 * time.Minute,
		OpenTimeout:      2 * time.Minute,
		FailureThreshold: 5,
	}
}

// Client executes single-attempt outbound calls for one provider behind a circuit breaker.
// It is safe for concurrent use.
type Client struct {
	name    string
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client for the named provider.
func NewClient(name string, httpClient *http.Client, cfg BreakerConfig) *Client {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = DefaultBreaker().FailureThreshold
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	})

	return &Client{
		name:    name,
		http:    httpClient,
		circuit: cb,
	}
}

// Name returns the provider name the client was created for.
func (c *Client) Name() string {
	return c.name
}

// Do performs exactly one request built by buildRequest, bound to ctx. There are no
// retries: the first failure is final and classified as one of the package errors.
// The caller must close the returned response body.
func (c *Client) Do(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	if c == nil || c.http == nil {
		return nil, errNoHTTPClient
	}
	if err := ctx.Err(); err != nil {
		return nil, classify(ctx, err)
	}

	req, err := buildRequest()
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req = req.WithContext(ctx)

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.http.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			drain(resp)
			return nil, ErrRateLimited
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			drain(resp)
			return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: %w: %v", c.name, ErrCircuitOpen, err)
		}
		return nil, fmt.Errorf("%s: %w", c.name, classify(ctx, err))
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type from circuit breaker", c.name)
	}
	return resp, nil
}

// GetJSON runs Do and decodes the response body into v.
func (c *Client) GetJSON(ctx context.Context, buildRequest func() (*http.Request, error), v any) error {
	resp, err := c.Do(ctx, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", c.name, classify(ctx, ctxErr))
		}
		return fmt.Errorf("%s: %w: %v", c.name, ErrMalformed, err)
	}
	return nil
}

// classify maps transport and context errors onto ErrTimeout or ErrUnavailable.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrRateLimited), errors.Is(err, ErrUnavailable), errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	_ = resp.Body.Close()
}
