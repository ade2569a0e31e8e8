// Package retry runs operations under named, bounded retry policies.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sevigo/issue-warden/internal/core"
)

// Strategy selects how the delay between attempts grows.
type Strategy string

const (
	Constant    Strategy = "constant"
	Exponential Strategy = "exponential"
)

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	Name        string
	MaxAttempts int
	Delay       time.Duration
	// MaxDelay caps exponential growth. Zero means no cap.
	MaxDelay time.Duration
	Strategy Strategy
	// Retryable decides whether an error is worth another attempt. Defaults to
	// core.IsTransient.
	Retryable func(error) bool
}

// ConstantPolicy waits the same delay between a fixed number of attempts.
func ConstantPolicy(name string, attempts int, delay time.Duration) Policy {
	return Policy{Name: name, MaxAttempts: attempts, Delay: delay, Strategy: Constant}
}

func (p Policy) backOff() backoff.BackOff {
	var b backoff.BackOff
	switch p.Strategy {
	case Exponential:
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = p.Delay
		eb.MaxElapsedTime = 0
		if p.MaxDelay > 0 {
			eb.MaxInterval = p.MaxDelay
		}
		b = eb
	default:
		b = backoff.NewConstantBackOff(p.Delay)
	}

	retries := 0
	if p.MaxAttempts > 1 {
		retries = p.MaxAttempts - 1
	}
	return backoff.WithMaxRetries(b, uint64(retries))
}

// Do calls fn until it succeeds, returns a non-retryable error, the policy runs
// out of attempts or ctx is done. Non-retryable errors are returned unchanged.
func Do[T any](ctx context.Context, logger *slog.Logger, policy Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	if logger == nil {
		logger = slog.Default()
	}
	retryable := policy.Retryable
	if retryable == nil {
		retryable = core.IsTransient
	}

	attempts := 0
	operation := func() (T, error) {
		attempts++
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return result, backoff.Permanent(err)
		}
		return result, err
	}

	notify := func(err error, wait time.Duration) {
		logger.WarnContext(ctx, "operation failed, retrying",
			"operation", policy.Name,
			"attempt", attempts,
			"max_attempts", policy.MaxAttempts,
			"delay", wait,
			"error", err,
		)
	}

	result, err := backoff.RetryNotifyWithData(operation, backoff.WithContext(policy.backOff(), ctx), notify)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil || !retryable(err) {
		return result, err
	}
	return result, fmt.Errorf("%s failed after %d attempts: %w", policy.Name, attempts, err)
}
