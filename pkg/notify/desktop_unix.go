//go:build !windows

package notify

import (
	"log/slog"
	"os/exec"
	"runtime"
)

// Desktop shows a native notification, falling back to the console when no
// desktop mechanism is available.
type Desktop struct {
	app      string
	fallback Console
}

// NewDesktop creates a desktop notifier titled with the starter's name.
func NewDesktop(app string) *Desktop {
	return &Desktop{app: app}
}

func (d *Desktop) Notify(message string) {
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		script := "display notification " + quote(message) + " with title " + quote(d.app)
		cmd = exec.Command("osascript", "-e", script)
	} else {
		cmd = exec.Command("notify-send", d.app, message)
	}

	if err := cmd.Run(); err != nil {
		slog.Debug("desktop notification failed", "error", err)
		d.fallback.Notify(message)
	}
}

func quote(s string) string {
	out := make([]rune, 0, len(s)+2)
	out = append(out, '"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(append(out, '"'))
}
