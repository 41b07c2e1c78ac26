package starter

import (
	"fmt"
	"log/slog"

	"github.com/nilshoffmann/pwiz/pkg/journal"
	"github.com/nilshoffmann/pwiz/pkg/notify"
)

// Reporter surfaces terminal conditions to the operator. Messages go to
// the journal for after-the-fact inspection and to the notifier so an
// interactive user sees the failure immediately.
type Reporter struct {
	Journal  *journal.Journal
	Notifier notify.Notifier
	Logger   *slog.Logger
}

// Report records a terminal condition through every configured channel.
func (r *Reporter) Report(message string) {
	if r.Logger != nil {
		r.Logger.Error("terminal condition", "message", message)
	}
	if r.Journal != nil {
		r.Journal.Log(message)
	}
	if r.Notifier != nil {
		r.Notifier.Notify(message)
	}
}

// Reportf formats and reports a terminal condition.
func (r *Reporter) Reportf(format string, args ...interface{}) {
	r.Report(fmt.Sprintf(format, args...))
}
