//go:build windows

package singleinst

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// acquire creates a named mutex with initial ownership. If the name already
// exists somewhere on the machine the kernel reports ERROR_ALREADY_EXISTS
// and the caller must exit.
func acquire(key string) (*Handle, error) {
	name, err := windows.UTF16PtrFromString(sanitize(key))
	if err != nil {
		return nil, fmt.Errorf("mutex name: %w", err)
	}

	h, err := windows.CreateMutex(nil, true, name)
	if err != nil {
		if err == windows.ERROR_ALREADY_EXISTS {
			if h != 0 {
				windows.CloseHandle(h)
			}
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("create mutex: %w", err)
	}

	return &Handle{release: func() error {
		windows.ReleaseMutex(h)
		return windows.CloseHandle(h)
	}}, nil
}
