package sessionlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"calibtool/internal/services"
)

// Lock guards a workspace so only one calibtool session drives the tools at a
// time.
type Lock struct {
	path string
	lock *flock.Flock
}

// New returns an unlocked Lock backed by path.
func New(path string) *Lock {
	return &Lock{path: path, lock: flock.New(path)}
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. A lock held elsewhere yields an
// error wrapping services.ErrLocked.
func (l *Lock) Acquire() error {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create lock directory: %w", err)
		}
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return services.Wrap(services.ErrLocked, "session", "", fmt.Sprintf("another calibtool session holds %s", l.path), nil)
	}
	return nil
}

// Release drops the lock. Releasing an unheld lock is a no-op.
func (l *Lock) Release() error {
	if !l.lock.Locked() {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

// IsLocked reports whether err came from a lock held by another session.
func IsLocked(err error) bool {
	return errors.Is(err, services.ErrLocked)
}
