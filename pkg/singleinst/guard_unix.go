//go:build !windows

package singleinst

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// acquire takes an exclusive non-blocking flock on a lock file derived from
// the identity key. flock locks are per open file description, so a second
// acquisition fails even from within the same process.
func acquire(key string) (*Handle, error) {
	path := filepath.Join(os.TempDir(), sanitize(key)+".lock")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}

	// Record the holder pid for operators inspecting a stale lock.
	f.Truncate(0)
	f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0)

	// The lock file is deliberately left in place on release. Unlinking it
	// would let a contender that already opened the old inode flock it
	// while a fresh instance creates and locks a new file under the same
	// path, and then two starters hold the lock at once. A leftover
	// zero-length file in the temp dir is the cost of keeping the path
	// bound to one inode.
	return &Handle{release: func() error {
		unix.Flock(int(f.Fd()), unix.LOCK_UN)
		return f.Close()
	}}, nil
}
