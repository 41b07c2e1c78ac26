// Package singleinst enforces that at most one starter runs per machine for
// a given supervisor identity.
//
// The lock is a systemwide named primitive keyed by "<publisher> <app>":
// flock(2) on a lock file under the system temp directory on unix, a named
// mutex on Windows. Acquisition is non-blocking; a held lock is reported
// immediately so the second instance can exit without side effects.
package singleinst

import (
	"errors"
	"strings"
	"sync"
)

// ErrAlreadyRunning is returned when another process holds the lock for the
// same identity key.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Handle represents a held instance lock. Release is safe to call more than
// once; the lock is released exactly once.
type Handle struct {
	once    sync.Once
	release func() error
}

// Release gives up the lock. The first call releases; later calls are no-ops.
func (h *Handle) Release() error {
	var err error
	h.once.Do(func() {
		err = h.release()
	})
	return err
}

// Acquire attempts a non-blocking acquisition of the named lock for key.
// It returns ErrAlreadyRunning without waiting if another process holds it.
func Acquire(key string) (*Handle, error) {
	return acquire(key)
}

// sanitize maps a lock key to a name safe for file systems and kernel
// object namespaces.
func sanitize(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return r.Replace(key)
}
