// Package retry provides bounded retry with exponential backoff for
// transient database failures.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"pharmacore/pkg/logger"
)

// Config controls retry behavior.
type Config struct {
	// MaxAttempts is the total number of attempts (first try included).
	MaxAttempts int

	// BaseDelay is the initial backoff delay, doubled on each retry.
	BaseDelay time.Duration

	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
}

// DefaultConfig returns production defaults: 3 attempts, 100ms base delay.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	}
}

// Do runs fn with retries on transient errors.
// Non-retryable errors (constraint violations, business errors) are
// returned immediately.
func Do(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var err error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(cfg, attempt)
			logger.Warn(ctx, "retrying after transient error",
				"attempt", attempt+1,
				"delay", delay.String(),
				"error", err,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
	}
	return err
}

// backoffDelay computes exponential delay: base * 2^(attempt-1), capped.
func backoffDelay(cfg Config, attempt int) time.Duration {
	delay := cfg.BaseDelay * time.Duration(1<<(attempt-1))
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}

// PostgreSQL error codes considered transient.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgTooManyConnections   = "53300"
	pgCannotConnectNow     = "57P03"
	pgConnectionException  = "08000"
	pgConnectionFailure    = "08006"
)

// Non-retryable codes: data/constraint problems that will not resolve
// on their own.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgInvalidTextValue    = "22P02"
)

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected,
			pgTooManyConnections, pgCannotConnectNow,
			pgConnectionException, pgConnectionFailure:
			return true
		case pgUniqueViolation, pgForeignKeyViolation,
			pgCheckViolation, pgNotNullViolation, pgInvalidTextValue:
			return false
		}
		return false
	}

	// Network-level failures surface as closed/broken connections.
	if pgconn.SafeToRetry(err) {
		return true
	}

	return false
}
