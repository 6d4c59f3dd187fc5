package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"plotsort/internal/ports"
)

// DirLocker implements ports.RunLocker with one lock file per source
// directory, held for the duration of a run
type DirLocker struct {
	mu    sync.Mutex
	dir   string
	locks map[string]*flock.Flock
}

// Ensure DirLocker implements RunLocker
var _ ports.RunLocker = (*DirLocker)(nil)

// NewDirLocker creates a locker that keeps its lock files in lockDir,
// or in the default runtime location when empty
func NewDirLocker(lockDir string) *DirLocker {
	if lockDir == "" {
		lockDir = DefaultDir()
	}
	return &DirLocker{dir: lockDir, locks: make(map[string]*flock.Flock)}
}

// DefaultDir returns $XDG_RUNTIME_DIR/plotsort, falling back to the OS temp dir
func DefaultDir() string {
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "plotsort")
}

// TryLock acquires the lock for sourceDir without blocking
func (l *DirLocker) TryLock(sourceDir string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.locks[sourceDir]; held {
		return false, nil
	}

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(l.LockPath(sourceDir))
	ok, err := fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return false, nil
	}

	l.locks[sourceDir] = fl
	return true, nil
}

// Unlock releases the lock for sourceDir
func (l *DirLocker) Unlock(sourceDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	fl, ok := l.locks[sourceDir]
	if !ok {
		return nil
	}
	delete(l.locks, sourceDir)
	return fl.Unlock()
}

// LockPath returns the lock file used for sourceDir
func (l *DirLocker) LockPath(sourceDir string) string {
	h := sha256.Sum256([]byte(sourceDir))
	return filepath.Join(l.dir, hex.EncodeToString(h[:8])+".lock")
}
