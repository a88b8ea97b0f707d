package supervisor

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// fileLock is an exclusive flock(2) scoped to the check-and-create step.
// The kernel releases it on process exit, so a crashed supervisor never
// leaves the lock held.
type fileLock struct {
	f *os.File
}

// acquireLock blocks until the exclusive lock on path is held.
func acquireLock(path string) (*fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	// Owner token is diagnostic only; the flock itself is the mutex
	token, err := gonanoid.New()
	if err == nil {
		_ = f.Truncate(0)
		_, _ = f.WriteAt([]byte(fmt.Sprintf("%d %s\n", os.Getpid(), token)), 0)
	}

	return &fileLock{f: f}, nil
}

// release drops the lock. Safe to call once on every exit path.
func (l *fileLock) release() {
	if l == nil || l.f == nil {
		return
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	_ = l.f.Close()
	l.f = nil
}
