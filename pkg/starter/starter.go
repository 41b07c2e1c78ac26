package starter

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/nilshoffmann/pwiz/pkg/journal"
	"github.com/nilshoffmann/pwiz/pkg/proctab"
	"github.com/nilshoffmann/pwiz/pkg/resolve"
)

// DefaultInterval is how often the supervisor re-checks the target when
// no interval is configured.
const DefaultInterval = time.Minute

// ProcessTable answers whether a process with a given image name is
// currently running anywhere on the machine.
type ProcessTable interface {
	NameRunning(name string) (bool, error)
}

// TargetLauncher starts the target at a path without supervising the
// resulting process.
type TargetLauncher interface {
	StartDetached(path string) error
}

// Options configures a Supervisor. Target, TargetName and ProcessName are
// required; everything else has a working default.
type Options struct {
	// Target is the resolved launch target
	Target resolve.TargetRef

	// TargetName is the display name used in journal messages
	TargetName string

	// ProcessName is the image name checked against the process table
	ProcessName string

	// Interval between monitor ticks (DefaultInterval if zero)
	Interval time.Duration

	Journal  *journal.Journal
	Logger   *slog.Logger
	Metrics  MetricsCollector
	Table    ProcessTable
	Launcher TargetLauncher
}

// Supervisor runs the monitor loop: as long as the target is installed it
// keeps a process with the target's image name alive, relaunching it
// whenever it disappears from the process table.
//
// The loop ends in exactly two ways: the context is cancelled (the clean
// shutdown path, Run returns nil) or the target itself vanishes from disk
// (Run returns a terminal *StarterError).
type Supervisor struct {
	target      resolve.TargetRef
	targetName  string
	processName string
	interval    time.Duration

	journal  *journal.Journal
	logger   *slog.Logger
	metrics  MetricsCollector
	table    ProcessTable
	launcher TargetLauncher

	// true once "is running" has been journaled for the current
	// contiguous running interval
	announced bool
}

// systemProcessTable consults the live process table.
type systemProcessTable struct{}

func (systemProcessTable) NameRunning(name string) (bool, error) {
	return proctab.NameRunning(name)
}

// systemLauncher opens targets through the operating system.
type systemLauncher struct{}

func (systemLauncher) StartDetached(path string) error {
	return proctab.StartDetached(path)
}

// New creates a Supervisor from options, filling in defaults for anything
// unset.
func New(opts Options) *Supervisor {
	s := &Supervisor{
		target:      opts.Target,
		targetName:  opts.TargetName,
		processName: opts.ProcessName,
		interval:    opts.Interval,
		journal:     opts.Journal,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		table:       opts.Table,
		launcher:    opts.Launcher,
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = NewNoopMetricsCollector()
	}
	if s.table == nil {
		s.table = systemProcessTable{}
	}
	if s.launcher == nil {
		s.launcher = systemLauncher{}
	}
	return s
}

// Run executes the monitor loop until ctx is cancelled or a terminal
// condition occurs. The first check happens immediately; later checks are
// spaced by the configured interval.
//
// A panic anywhere in the loop is converted into an UNHANDLED_FAULT error
// rather than crashing the process, so the caller can still report it and
// release the instance lock.
func (s *Supervisor) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fault := ErrUnhandledFault(r, s.journalPath())
			s.logger.Error("unhandled fault in monitor loop", "panic", r)
			s.metrics.TerminalCondition(fault.Code)
			err = fault
		}
	}()

	s.logger.Info("monitoring target",
		"target", s.targetName,
		"path", s.target.Path,
		"kind", s.target.Kind.String(),
		"interval", s.interval)

	for {
		// An already-cancelled context must not launch anything.
		select {
		case <-ctx.Done():
			s.logger.Info("shutdown requested, stopping monitor loop")
			return nil
		default:
		}

		if err := s.tick(); err != nil {
			s.metrics.TerminalCondition(GetErrorCode(err))
			return err
		}

		select {
		case <-ctx.Done():
			s.logger.Info("shutdown requested, stopping monitor loop")
			return nil
		case <-time.After(s.interval):
		}
	}
}

// tick performs one monitor iteration. A non-nil return is always a
// terminal *StarterError; transient failures are journaled and swallowed
// so the loop keeps going.
func (s *Supervisor) tick() error {
	s.metrics.MonitorTick()

	if _, err := os.Stat(s.target.Path); err != nil {
		if os.IsNotExist(err) {
			return ErrTargetMissing(s.targetName, s.target.Path)
		}
		// transient stat failure, try again next tick
		s.logger.Warn("could not check target path", "path", s.target.Path, "error", err)
		return nil
	}

	running, err := s.table.NameRunning(s.processName)
	if err != nil {
		s.logger.Warn("process table check failed", "process", s.processName, "error", err)
		s.journalLogf("Error checking for %s: %v", s.targetName, err)
		return nil
	}
	s.metrics.RunningCheck(running)

	if !running {
		s.announced = false
		s.journalLogf("Starting %s", s.targetName)
		s.logger.Info("target not running, launching", "process", s.processName)

		launchErr := s.launcher.StartDetached(s.target.Path)
		s.metrics.TargetLaunch(launchErr)
		if launchErr != nil {
			// Launch failures are not terminal: the OS open can fail
			// transiently, and the next tick retries. A permanently
			// broken target therefore journals an error every tick
			// instead of stopping the starter.
			s.logger.Error("failed to start target", "path", s.target.Path, "error", launchErr)
			s.journalLogf("Error starting %s: %v", s.targetName, launchErr)
		}
		return nil
	}

	if !s.announced {
		s.journalLogf("%s is running", s.targetName)
		s.announced = true
	}
	return nil
}

func (s *Supervisor) journalLogf(format string, args ...interface{}) {
	if s.journal != nil {
		s.journal.Logf(format, args...)
	}
}

func (s *Supervisor) journalPath() string {
	if s.journal == nil {
		return ""
	}
	return s.journal.Path()
}
