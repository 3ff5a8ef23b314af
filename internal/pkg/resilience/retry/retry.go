// Package retry provides a small retry abstraction on top of avast/retry-go,
// using exponential backoff and honoring context cancellation between
// attempts.
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes fallible operations with automatic re-attempts.
type Retry interface {
	// Execute runs operation until it succeeds, the configured attempts are
	// exhausted, or ctx ends. The operation must be safe to call more than
	// once. A nil return means one of the attempts succeeded.
	Execute(ctx context.Context, operation func() error) error
}

type config struct {
	attempts    uint
	delay       time.Duration
	maxDelay    time.Duration
	lastErrOnly bool
}

// Option customizes the retry behavior.
type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New builds a Retry with exponential backoff. Defaults: 3 attempts, 1s
// base delay capped at 5s, returning only the last error.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{cfg: cfg}
}

func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	return retry.Do(operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	)
}

// WithAttempts sets the total number of attempts, the initial one included.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay before the first re-attempt.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the backoff growth between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly controls whether only the final attempt's error is
// returned (true, the default) or all attempt errors are combined.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
