package starter

// MetricsCollector defines the interface for collecting supervisor metrics
type MetricsCollector interface {
	// MonitorTick records one iteration of the monitor loop
	MonitorTick()

	// RunningCheck records a process-table check and its outcome
	RunningCheck(running bool)

	// TargetLaunch records an attempt to start the target
	TargetLaunch(err error)

	// TerminalCondition records the condition that ended the supervisor
	TerminalCondition(code ErrorCode)
}

// noopMetricsCollector is a no-op implementation of MetricsCollector
type noopMetricsCollector struct{}

func (n *noopMetricsCollector) MonitorTick()                     {}
func (n *noopMetricsCollector) RunningCheck(running bool)        {}
func (n *noopMetricsCollector) TargetLaunch(err error)           {}
func (n *noopMetricsCollector) TerminalCondition(code ErrorCode) {}

// NewNoopMetricsCollector creates a no-op metrics collector
func NewNoopMetricsCollector() MetricsCollector {
	return &noopMetricsCollector{}
}
