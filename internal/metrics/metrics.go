// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Inference gateway metrics. outcome is "success" or a failure kind.
	ObserveInferenceCall(op, outcome string, duration time.Duration)

	// User directory metrics. outcome is "created" or "existing".
	IncUserSync(outcome string)

	// Edge metrics
	IncRateLimited()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
