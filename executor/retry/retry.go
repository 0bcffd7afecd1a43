/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry implements the unified retry policy for model API calls.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// Class partitions errors by how the retry loop responds to them.
type Class int

const (
	// Retryable errors consume retry budget and back off exponentially.
	Retryable Class = iota
	// RateLimited errors wait out the limit without consuming budget.
	RateLimited
	// Fatal errors abort immediately without any retry.
	Fatal
)

// String returns the class name for logs and test output.
func (c Class) String() string {
	switch c {
	case Retryable:
		return "retryable"
	case RateLimited:
		return "rate_limited"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Classification is a Classifier's verdict on one error. Wait carries an
// optional rate-limit wait hint parsed from the provider's message; zero
// means use the policy's RateLimitWait.
type Classification struct {
	Class Class
	Wait  time.Duration
}

// Classifier maps an error to its retry classification. Each provider
// supplies its own; a nil classifier treats every error as retryable.
type Classifier func(error) Classification

// Policy configures the retry loop shared by all request paths.
type Policy struct {
	// MaxRetries is the budget of retries after the initial attempt
	// (default: 30). 0 means do not retry at all. Rate-limit waits do not
	// draw on this budget.
	MaxRetries int
	// BaseWait is the lower bound of every backoff wait (default: 1s)
	BaseWait time.Duration
	// MaxWait caps the exponential upper bound of the backoff wait
	// (default: 30s)
	MaxWait time.Duration
	// RateLimitWait is the wait applied to rate-limit errors that carry no
	// usable hint (default: 5s)
	RateLimitWait time.Duration
	// Sleep replaces the context-aware wait between attempts; nil means a
	// real timer. Tests substitute a recorder to run on a simulated clock.
	Sleep func(context.Context, time.Duration) error
}

// Validate checks that the policy has valid values.
func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if p.BaseWait < 0 {
		return errors.New("base wait cannot be negative")
	}
	if p.MaxWait < 0 {
		return errors.New("max wait cannot be negative")
	}
	if p.RateLimitWait < 0 {
		return errors.New("rate limit wait cannot be negative")
	}
	return nil
}

// DefaultPolicy returns the policy used when callers configure nothing:
// waits grow from 1s toward a 30s ceiling, and rate limits without a hint
// wait 5s.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:    30,
		BaseWait:      1 * time.Second,
		MaxWait:       30 * time.Second,
		RateLimitWait: 5 * time.Second,
	}
}

// backoff picks a wait uniformly from [BaseWait, min(MaxWait, BaseWait<<attempt)].
func (p Policy) backoff(attempt int) time.Duration {
	upper := p.MaxWait
	if attempt < 31 {
		if shifted := p.BaseWait << attempt; shifted < upper {
			upper = shifted
		}
	}
	if upper <= p.BaseWait {
		return p.BaseWait
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(upper-p.BaseWait)))
	if err != nil {
		return p.BaseWait
	}
	return p.BaseWait + time.Duration(n.Int64())
}

// BudgetExhaustedError reports that an operation kept failing after its full
// retry budget was spent. It wraps the last error observed.
type BudgetExhaustedError struct {
	Operation string
	Retries   int
	Err       error
}

// Error implements error.
func (e *BudgetExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d retries: %v", e.Operation, e.Retries, e.Err)
}

// Unwrap exposes the last underlying error to errors.Is and errors.As.
func (e *BudgetExhaustedError) Unwrap() error { return e.Err }

// RetryWithPolicy executes fn until it succeeds, fails fatally, or spends
// the policy's retry budget. Each failure is routed by the classifier:
// fatal errors return unmodified on the spot, rate limits wait out the
// provider's hint (or the policy default) without touching the budget, and
// everything else backs off exponentially until MaxRetries is exceeded and
// a BudgetExhaustedError wrapping the last error is returned.
func RetryWithPolicy[T any](ctx context.Context, p Policy, operation string, classify Classifier, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	if classify == nil {
		classify = func(error) Classification { return Classification{Class: Retryable} }
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = waitContext
	}

	attempt := 0
	for {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		switch c := classify(lastErr); c.Class {
		case Fatal:
			return result, lastErr

		case RateLimited:
			wait := c.Wait
			if wait <= 0 {
				wait = p.RateLimitWait
			}
			clog.FromContext(ctx).With("operation", operation).
				With("wait", wait).
				With("error", lastErr.Error()).
				Warn("Rate limited, waiting it out")
			if err := sleep(ctx, wait); err != nil {
				return result, err
			}

		default:
			if attempt >= p.MaxRetries {
				return result, &BudgetExhaustedError{
					Operation: operation,
					Retries:   p.MaxRetries,
					Err:       lastErr,
				}
			}
			wait := p.backoff(attempt)
			clog.FromContext(ctx).With("operation", operation).
				With("attempt", attempt+1).
				With("max_retries", p.MaxRetries).
				With("wait", wait).
				With("error", lastErr.Error()).
				Warn("Transient failure, retrying")
			if err := sleep(ctx, wait); err != nil {
				return result, err
			}
			attempt++
		}
	}
}

// waitContext sleeps for d unless the context ends first.
func waitContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
