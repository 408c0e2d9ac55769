package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveInferenceCall is a no-op.
func (n *NoopRecorder) ObserveInferenceCall(op, outcome string, duration time.Duration) {}

// IncUserSync is a no-op.
func (n *NoopRecorder) IncUserSync(outcome string) {}

// IncRateLimited is a no-op.
func (n *NoopRecorder) IncRateLimited() {}
