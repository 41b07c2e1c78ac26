//go:build windows

package proctab

import (
	"fmt"
	"os/exec"
	"syscall"
)

func startDetached(path string) error {
	// "start" goes through the shell's open verb, which is what resolves
	// .appref-ms references to the installed application. The empty first
	// argument is the window title slot.
	cmd := exec.Command("cmd", "/C", "start", "", path)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	return cmd.Process.Release()
}
