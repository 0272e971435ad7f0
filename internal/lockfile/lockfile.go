// Package lockfile provides scoped advisory locking for state files shared
// between independent short-lived processes. The lock resource is a sidecar
// file derived from the state file path, so the data file itself is never
// opened for locking and rename operations never race with the lock handle.
package lockfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Suffix is appended to a state file path to name its lock resource.
const Suffix = ".lock"

// ErrTimeout is returned when the lock cannot be acquired within the bound.
var ErrTimeout = errors.New("timeout acquiring file lock")

// DefaultTimeout is the maximum time Acquire waits for the lock.
const DefaultTimeout = 5 * time.Second

// retryInterval is how often Acquire retries while waiting.
const retryInterval = 100 * time.Millisecond

// ResourceFor returns the lock resource path for a state file path.
func ResourceFor(path string) string {
	return path + Suffix
}

// Guard represents a held lock. Release is safe to call more than once and
// must be called on every exit path.
type Guard struct {
	lock     *flock.Flock
	released bool
}

// Release unlocks the resource. The first error, if any, is returned; later
// calls are no-ops.
func (g *Guard) Release() error {
	if g == nil || g.released {
		return nil
	}
	g.released = true
	return g.lock.Unlock()
}

// Locker acquires exclusive advisory locks with a bounded wait.
type Locker interface {
	// Acquire locks the resource derived from path, waiting up to the
	// configured timeout. It returns ErrTimeout when the bound expires.
	Acquire(ctx context.Context, path string) (*Guard, error)
}

// FlockLocker implements Locker using OS advisory locks via gofrs/flock.
type FlockLocker struct {
	timeout time.Duration
}

// New creates a Locker with the default timeout.
func New() *FlockLocker {
	return &FlockLocker{timeout: DefaultTimeout}
}

// NewWithTimeout creates a Locker with a custom acquisition bound.
func NewWithTimeout(timeout time.Duration) *FlockLocker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FlockLocker{timeout: timeout}
}

// Acquire implements Locker.
func (l *FlockLocker) Acquire(ctx context.Context, path string) (*Guard, error) {
	resource := ResourceFor(path)

	// Ensure the directory exists so the sidecar file can be created
	if err := os.MkdirAll(filepath.Dir(resource), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lock := flock.New(resource)

	lockCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, retryInterval)
	if err != nil {
		// TryLockContext reports the context error when the deadline
		// expires before the lock is obtained
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrTimeout
	}

	return &Guard{lock: lock}, nil
}
