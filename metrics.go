package apcluster

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics from clustering runs.
// Implement it to integrate with monitoring systems like Prometheus.
//
// Collectors are diagnostic only: nothing a collector does influences
// convergence or termination.
type MetricsCollector interface {
	// RecordCheckpoint is called at every convergence checkpoint (each
	// 10th iteration) with the aggregate delta pair measured there.
	RecordCheckpoint(iteration int, deltaAvailability, deltaResponsibility float64)

	// RecordRun is called once per run with the total duration, the number
	// of clusters produced (0 on failure), and the error, if any.
	RecordRun(duration time.Duration, clusters int, err error)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCheckpoint(int, float64, float64) {}
func (NoopMetricsCollector) RecordRun(time.Duration, int, error)    {}

// BasicMetricsCollector is a simple in-memory collector, useful for
// debugging and tests without an external monitoring system.
type BasicMetricsCollector struct {
	CheckpointCount atomic.Int64
	RunCount        atomic.Int64
	RunErrors       atomic.Int64
	RunTotalNanos   atomic.Int64
	LastClusters    atomic.Int64
}

// RecordCheckpoint implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheckpoint(int, float64, float64) {
	b.CheckpointCount.Add(1)
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(duration time.Duration, clusters int, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	b.LastClusters.Store(int64(clusters))
	if err != nil {
		b.RunErrors.Add(1)
	}
}
