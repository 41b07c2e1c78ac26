//go:build !windows

package proctab

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
)

func startDetached(path string) error {
	var cmd *exec.Cmd

	switch {
	case runtime.GOOS == "darwin":
		cmd = exec.Command("open", path)
	case strings.HasSuffix(strings.ToLower(path), ".appref-ms"):
		// Reference files need a desktop handler to resolve.
		cmd = exec.Command("xdg-open", path)
	default:
		cmd = exec.Command(path)
	}

	// New session so the child survives the starter and owns no terminal.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	return cmd.Process.Release()
}
