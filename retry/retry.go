// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package retry

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// MaxDelay is the ceiling Delay saturates at once doubling would overflow.
const MaxDelay = time.Duration(math.MaxInt64)

// Policy bounds how often and how patiently an operation is retried.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BackoffBase is the wait before the first retry; each later wait doubles.
	BackoffBase time.Duration
}

// DefaultPolicy returns two retries with a five second base.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 2, BackoffBase: 5 * time.Second}
}

// Validate checks that the policy can be executed.
func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}
	if p.BackoffBase <= 0 {
		return ErrInvalidBackoff
	}
	return nil
}

// MaxAttempts returns the total number of attempts the policy allows.
func (p Policy) MaxAttempts() int {
	return p.MaxRetries + 1
}

// Delay returns the wait before the given retry (1-based).
func (p Policy) Delay(retry int) time.Duration {
	// Calculate exponential backoff: base * 2^(retry-1)
	delay := p.BackoffBase
	for i := 1; i < retry; i++ {
		if delay > MaxDelay/2 {
			return MaxDelay
		}
		delay *= 2
	}
	return delay
}

// Clock waits between attempts.
type Clock interface {
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	// Sleep with context awareness
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NotifyFunc observes a failed attempt just before the wait that precedes the next one.
type NotifyFunc func(attempt int, delay time.Duration, err error)

// Retrier executes operations under a Policy.
// A Retrier holds no per-call state and is safe for concurrent use.
type Retrier struct {
	policy Policy
	clock  Clock
	logger *slog.Logger
	notify NotifyFunc
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithClock replaces the wall clock used for backoff waits.
func WithClock(clock Clock) Option {
	return func(r *Retrier) {
		r.clock = clock
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retrier) {
		r.logger = logger
	}
}

// WithNotify registers a callback invoked for every retried failure.
func WithNotify(fn NotifyFunc) Option {
	return func(r *Retrier) {
		r.notify = fn
	}
}

// New creates a Retrier for the policy. The policy is checked when Run is called.
func New(policy Policy, opts ...Option) *Retrier {
	r := &Retrier{
		policy: policy,
		clock:  realClock{},
		logger: slog.Default().With("component", "retry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the retrier's policy.
func (r *Retrier) Policy() Policy {
	return r.policy
}

// Run invokes op until it succeeds or the policy is exhausted.
// op receives the 1-based attempt number. If every attempt fails Run returns
// an *ExhaustedError wrapping the last error; if ctx ends first it returns ctx.Err().
func (r *Retrier) Run(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	if err := r.policy.Validate(); err != nil {
		return err
	}

	maxAttempts := r.policy.MaxAttempts()
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Check context before attempting
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx, attempt)
		if lastErr == nil {
			if attempt > 1 {
				r.logger.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		// Don't sleep after the last attempt
		if attempt == maxAttempts {
			break
		}

		delay := r.policy.Delay(attempt)
		r.logger.Debug("operation failed, will retry",
			"attempt", attempt,
			"maxAttempts", maxAttempts,
			"delay", delay,
			"err", lastErr)
		if r.notify != nil {
			r.notify(attempt, delay, lastErr)
		}

		if err := r.clock.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	return &ExhaustedError{Attempts: maxAttempts, Err: lastErr}
}
