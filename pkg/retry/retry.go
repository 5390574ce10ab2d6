// Package retry implements bounded exponential backoff with jitter.
//
// The API client itself never retries; callers that want retry semantics
// (readiness polling, flaky networks) wrap their calls with this package
// and mark the errors worth repeating with Retryable.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Config controls the backoff schedule.
type Config struct {
	MaxAttempts int           // 0 retries until success or context end
	InitialWait time.Duration // wait after the first failure
	MaxWait     time.Duration // ceiling for the grown wait
	Multiplier  float64       // growth factor between attempts
	Jitter      float64       // fraction of each wait randomized, 0-1
}

// DefaultConfig is the schedule used when the caller has no opinion:
// three attempts, 100ms doubling up to 10s, 10% jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
		Jitter:      0.1,
	}
}

// transientError carries the retry marker through an error chain.
type transientError struct {
	err error
}

func (e transientError) Error() string { return e.err.Error() }

func (e transientError) Unwrap() error { return e.err }

// Retryable marks err as worth another attempt. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err: err}
}

// IsRetryable reports whether err was marked with Retryable anywhere in
// its chain.
func IsRetryable(err error) bool {
	var te transientError
	return errors.As(err, &te)
}

func wait(cfg Config, attempt int) time.Duration {
	w := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if w > float64(cfg.MaxWait) {
		w = float64(cfg.MaxWait)
	}
	if cfg.Jitter > 0 {
		w += w * cfg.Jitter * (rand.Float64()*2 - 1)
	}
	return time.Duration(w)
}

// Do executes fn with retries. Only errors marked with Retryable are
// attempted again; any other error returns immediately.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error

	for attempt := 1; cfg.MaxAttempts == 0 || attempt <= cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait(cfg, attempt)):
		}
	}

	return lastErr
}

// DoWithResult executes fn with retries and returns a result.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var result T
	err := Do(ctx, cfg, func() error {
		r, err := fn()
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}
