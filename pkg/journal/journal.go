// Package journal provides the starter's operator-facing event log: a plain
// text file with one time-stamped line per event.
//
// Writes are best-effort. The starter must never die because its log file is
// unwritable, so every failure is swallowed after being echoed to the
// diagnostic slog stream. The file is opened in append mode on every write
// and never held open between events.
package journal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// timeLayout matches the "<date> <time>: <message>" line format.
const timeLayout = "2006-01-02 15:04:05"

// Journal appends time-stamped lines to a fixed log file. The file name is
// derived from the starter's own application name, not the target's.
type Journal struct {
	path string
}

// New creates a journal writing to "<app>.log" inside dir.
func New(dir, app string) *Journal {
	return &Journal{path: filepath.Join(dir, app+".log")}
}

// Path returns the log file location, for pointing the operator at it.
func (j *Journal) Path() string {
	return j.path
}

// Log appends one line to the journal. Failures are swallowed.
func (j *Journal) Log(message string) {
	line := time.Now().Format(timeLayout) + ": " + message + "\n"

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Debug("journal open failed", "path", j.path, "error", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		slog.Debug("journal write failed", "path", j.path, "error", err)
	}
}

// Logf appends a formatted line to the journal.
func (j *Journal) Logf(format string, args ...any) {
	j.Log(fmt.Sprintf(format, args...))
}
