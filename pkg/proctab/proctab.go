// Package proctab answers "is a process with this name running" and starts
// target applications as detached processes.
//
// Matching is by process name only, never by path: two copies of the target
// installed under different directories are indistinguishable and both count
// as running. Launching goes through the platform's open mechanism rather
// than a direct exec so that indirect application references (ClickOnce
// .appref-ms files) resolve to the currently installed version.
package proctab

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// NameRunning reports whether any process in the system process table has
// the given logical name. A trailing ".exe" on either side is ignored so
// the same target name works across platforms.
func NameRunning(name string) (bool, error) {
	procs, err := process.Processes()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	want := normalizeName(name)
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			// Processes can vanish or deny access mid-scan.
			continue
		}
		if normalizeName(pname) == want {
			return true, nil
		}
	}
	return false, nil
}

func normalizeName(name string) string {
	return strings.TrimSuffix(strings.ToLower(name), ".exe")
}

// StartDetached launches path as a detached child via the platform open
// mechanism. The child is not waited on and no console window is requested
// for it. Whether the application actually comes up is its own concern;
// callers must not treat a nil return as proof of a healthy target.
func StartDetached(path string) error {
	return startDetached(path)
}
