package starter

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsCollector implements MetricsCollector using Prometheus metrics
type PrometheusMetricsCollector struct {
	ticks              prometheus.Counter
	runningChecks      *prometheus.CounterVec
	launches           *prometheus.CounterVec
	terminalConditions *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewPrometheusMetricsCollector creates a new Prometheus metrics collector
func NewPrometheusMetricsCollector(namespace string) *PrometheusMetricsCollector {
	if namespace == "" {
		namespace = "autoqcstarter"
	}

	pmc := &PrometheusMetricsCollector{
		registry: prometheus.NewRegistry(),
	}

	pmc.ticks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "monitor_ticks_total",
			Help:      "Total number of monitor loop iterations",
		},
	)

	pmc.runningChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "running_checks_total",
			Help:      "Total number of process-table checks by outcome",
		},
		[]string{"result"},
	)

	pmc.launches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "target_launches_total",
			Help:      "Total number of target launch attempts by status",
		},
		[]string{"status"},
	)

	pmc.terminalConditions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terminal_conditions_total",
			Help:      "Total number of conditions that ended the supervisor",
		},
		[]string{"code"},
	)

	pmc.registry.MustRegister(
		pmc.ticks,
		pmc.runningChecks,
		pmc.launches,
		pmc.terminalConditions,
	)

	return pmc
}

// MonitorTick records one iteration of the monitor loop
func (pmc *PrometheusMetricsCollector) MonitorTick() {
	pmc.ticks.Inc()
}

// RunningCheck records a process-table check and its outcome
func (pmc *PrometheusMetricsCollector) RunningCheck(running bool) {
	result := "absent"
	if running {
		result = "running"
	}
	pmc.runningChecks.WithLabelValues(result).Inc()
}

// TargetLaunch records an attempt to start the target
func (pmc *PrometheusMetricsCollector) TargetLaunch(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	pmc.launches.WithLabelValues(status).Inc()
}

// TerminalCondition records the condition that ended the supervisor
func (pmc *PrometheusMetricsCollector) TerminalCondition(code ErrorCode) {
	pmc.terminalConditions.WithLabelValues(string(code)).Inc()
}

// Registry returns the Prometheus registry for HTTP handler setup
func (pmc *PrometheusMetricsCollector) Registry() *prometheus.Registry {
	return pmc.registry
}

// Compile-time interface compliance check
var _ MetricsCollector = (*PrometheusMetricsCollector)(nil)
