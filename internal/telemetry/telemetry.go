package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskpilot",
		Name:      "runs_total",
		Help:      "Completed task runs by outcome status.",
	}, []string{"status"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "taskpilot",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of a full task run.",
		Buckets:   prometheus.DefBuckets,
	})

	toolExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskpilot",
		Name:      "tool_executions_total",
		Help:      "Tool invocations by tool name and outcome.",
	}, []string{"tool", "outcome"})
)

// Telemetry records run and tool metrics onto the process-wide registry.
// The zero value is not usable; construct with NewTelemetry.
type Telemetry struct{}

func NewTelemetry() *Telemetry { return &Telemetry{} }

// RecordRun tracks one completed task run.
func (t *Telemetry) RecordRun(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	runsTotal.WithLabelValues(status).Inc()
	runDuration.Observe(duration.Seconds())
}

// RecordToolExecution tracks one tool invocation.
func (t *Telemetry) RecordToolExecution(tool string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	toolExecutions.WithLabelValues(tool, outcome).Inc()
}
