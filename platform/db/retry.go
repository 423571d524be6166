package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kisan_backend/platform/config"
	"kisan_backend/platform/logger"
)

// ConnectWithRetry calls Connect up to attempts times with quadratic backoff.
func ConnectWithRetry(ctx context.Context, cfg config.MongoConfig, log *logger.Logger, attempts int, baseDelay time.Duration) (*Mongo, error) {
	var m *Mongo
	err := withRetry(ctx, log, "database connection", attempts, baseDelay, func() error {
		conn, err := Connect(ctx, cfg)
		if err != nil {
			return err
		}
		m = conn
		return nil
	})
	return m, err
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
