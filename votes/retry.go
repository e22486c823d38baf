// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"database/sql/driver"
	"errors"
	"log/slog"
	"math/rand"
	"net"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	maxAttempts  = 3
	initialDelay = 25 * time.Millisecond
)

// withRetry runs fn up to maxAttempts times, backing off with jitter
// between attempts. Only contention errors are retried; everything else
// surfaces immediately.
func withRetry(fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) || attempt == maxAttempts {
			return err
		}

		delay := initialDelay << (attempt - 1)
		// 0.8x-1.2x jitter keeps colliding writers from lockstepping.
		delay = time.Duration(float64(delay) * (0.8 + rand.Float64()*0.4))
		slog.Warn("vote transaction retrying",
			"attempt", attempt,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
		time.Sleep(delay)
	}
	return err
}

// isRetryable reports whether err is transient contention: a serialization
// failure, deadlock, or lock timeout that a fresh attempt can win.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03": // lock_not_available
			return true
		}
		return false
	}

	// modernc.org/sqlite reports contention as SQLITE_BUSY / SQLITE_LOCKED
	// in the error text.
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "SQLITE_LOCKED")
}

// classify maps storage errors onto the package's error taxonomy.
// Retryable errors that survived the retry budget become ErrConflict;
// unreachable-database errors become ErrUnavailable so callers can tell
// "not recorded" from "may have been recorded".
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrShopNotFound) ||
		errors.Is(err, ErrInvalidVoteType) {
		return err
	}
	if isRetryable(err) {
		return ErrConflict
	}
	if isUnavailable(err) {
		return ErrUnavailable
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 08 - connection exceptions
		return strings.HasPrefix(string(pqErr.Code), "08")
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset")
}
