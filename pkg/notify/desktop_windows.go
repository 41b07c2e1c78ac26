//go:build windows

package notify

import (
	"log/slog"
	"os/exec"
	"syscall"
)

// Desktop shows a blocking message box, matching the original operator
// experience: one modal dialog per terminal failure.
type Desktop struct {
	app      string
	fallback Console
}

// NewDesktop creates a desktop notifier titled with the starter's name.
func NewDesktop(app string) *Desktop {
	return &Desktop{app: app}
}

func (d *Desktop) Notify(message string) {
	script := "Add-Type -AssemblyName PresentationFramework; " +
		"[System.Windows.MessageBox]::Show(" + psQuote(message) + ", " + psQuote(d.app) + ")"

	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}

	if err := cmd.Run(); err != nil {
		slog.Debug("desktop notification failed", "error", err)
		d.fallback.Notify(message)
	}
}

func psQuote(s string) string {
	out := "'"
	for _, r := range s {
		if r == '\'' {
			out += "''"
			continue
		}
		out += string(r)
	}
	return out + "'"
}
