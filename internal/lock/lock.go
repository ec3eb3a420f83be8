// Package lock serializes hook invocations that touch the zone files.
//
// Kea may run several hooks at once; each must hold an exclusive advisory
// lock on a well-known file for the whole read, rewrite and publish cycle.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
)

// RetryDelay is how often a waiting process retries the lock.
const RetryDelay = 100 * time.Millisecond

// ErrTimeout is returned when the lock is not acquired within the timeout.
var ErrTimeout = errors.New("timed out waiting for zone lock")

// Lock is a held zone update lock.
type Lock struct {
	fl     *flock.Flock
	logger *slog.Logger
}

// Option is a functional option for Acquire.
type Option func(*Lock)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lock) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Acquire takes the exclusive lock on path, creating the file if needed.
// A zero timeout waits until the lock is free or ctx is done.
func Acquire(ctx context.Context, path string, timeout time.Duration, opts ...Option) (*Lock, error) {
	l := &Lock{
		fl:     flock.New(path),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	ok, err := l.fl.TryLockContext(ctx, RetryDelay)
	if err != nil {
		if timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, path, timeout)
		}
		return nil, fmt.Errorf("acquiring zone lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTimeout, path)
	}

	l.logger.Debug("acquired zone lock",
		slog.String("path", path),
		slog.Duration("waited", time.Since(start)),
	)

	return l, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release unlocks the lock file. The file itself is left in place.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("releasing zone lock %s: %w", l.fl.Path(), err)
	}
	l.logger.Debug("released zone lock", slog.String("path", l.fl.Path()))
	return nil
}
