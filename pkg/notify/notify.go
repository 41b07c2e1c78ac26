// Package notify surfaces terminal starter failures to an operator.
//
// The monitor loop itself never notifies; only terminal failure classes do,
// exactly once each. The Notifier interface keeps the delivery mechanism
// pluggable so headless deployments can swap the desktop dialog for a
// console line or nothing at all.
package notify

import (
	"fmt"
	"io"
	"os"
)

// Notifier delivers one message to the operator.
type Notifier interface {
	Notify(message string)
}

// Console writes notifications to a stream, stderr by default.
type Console struct {
	W io.Writer
}

func (c *Console) Notify(message string) {
	w := c.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, message)
}

// Nop discards notifications. Failures still reach the journal.
type Nop struct{}

func (Nop) Notify(string) {}

// ForName returns the notifier selected by configuration: "desktop",
// "console" or "none". Unknown names fall back to console.
func ForName(name, app string) Notifier {
	switch name {
	case "desktop":
		return NewDesktop(app)
	case "none":
		return Nop{}
	default:
		return &Console{}
	}
}
