package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intelvestor"

// PrometheusRecorder exports metrics through a Prometheus registry.
//
// Metrics:
//   - intelvestor_gateway_inference_requests_total{op,outcome}
//   - intelvestor_gateway_inference_duration_seconds{op}
//   - intelvestor_gateway_user_syncs_total{outcome}
//   - intelvestor_gateway_rate_limited_total
type PrometheusRecorder struct {
	registry *prometheus.Registry

	inferenceRequests *prometheus.CounterVec
	inferenceDuration *prometheus.HistogramVec
	userSyncs         *prometheus.CounterVec
	rateLimited       prometheus.Counter
}

// NewPrometheus creates a recorder registered on registry.
// A nil registry gets a fresh one with Go and process collectors.
func NewPrometheus(registry *prometheus.Registry) *PrometheusRecorder {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	p := &PrometheusRecorder{
		registry: registry,
		inferenceRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "inference_requests_total",
				Help:      "Calls to the inference service by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		inferenceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "inference_duration_seconds",
				Help:      "Latency of calls to the inference service",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"op"},
		),
		userSyncs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "user_syncs_total",
				Help:      "User sync calls by outcome",
			},
			[]string{"outcome"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
	}

	registry.MustRegister(
		p.inferenceRequests,
		p.inferenceDuration,
		p.userSyncs,
		p.rateLimited,
	)

	return p
}

// ObserveInferenceCall records one inference call.
func (p *PrometheusRecorder) ObserveInferenceCall(op, outcome string, duration time.Duration) {
	p.inferenceRequests.WithLabelValues(op, outcome).Inc()
	p.inferenceDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// IncUserSync records one user sync.
func (p *PrometheusRecorder) IncUserSync(outcome string) {
	p.userSyncs.WithLabelValues(outcome).Inc()
}

// IncRateLimited records one rejected request.
func (p *PrometheusRecorder) IncRateLimited() {
	p.rateLimited.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
