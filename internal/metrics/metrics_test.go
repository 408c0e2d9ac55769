package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInMemoryRecorder(t *testing.T) {
	m := NewInMemory()

	m.ObserveInferenceCall("predict", "success", 10*time.Millisecond)
	m.ObserveInferenceCall("predict", "success", 5*time.Millisecond)
	m.ObserveInferenceCall("market_overview", "timeout", time.Second)
	m.IncUserSync("created")
	m.IncUserSync("existing")
	m.IncUserSync("existing")
	m.IncRateLimited()

	snap := m.Snapshot()

	if snap.InferenceCalls["predict/success"] != 2 {
		t.Errorf("predict/success = %d, want 2", snap.InferenceCalls["predict/success"])
	}
	if snap.InferenceCalls["market_overview/timeout"] != 1 {
		t.Errorf("market_overview/timeout = %d, want 1", snap.InferenceCalls["market_overview/timeout"])
	}
	if snap.InferenceDurationNs != (1015 * time.Millisecond).Nanoseconds() {
		t.Errorf("InferenceDurationNs = %d", snap.InferenceDurationNs)
	}
	if snap.UsersCreated != 1 || snap.UsersExisting != 2 {
		t.Errorf("user syncs = %d/%d, want 1/2", snap.UsersCreated, snap.UsersExisting)
	}
	if snap.RateLimitedRequests != 1 {
		t.Errorf("RateLimitedRequests = %d, want 1", snap.RateLimitedRequests)
	}
}

func TestInMemoryRecorder_SnapshotIsCopy(t *testing.T) {
	m := NewInMemory()
	m.ObserveInferenceCall("predict", "success", 0)

	snap := m.Snapshot()
	snap.InferenceCalls["predict/success"] = 99

	if m.Snapshot().InferenceCalls["predict/success"] != 1 {
		t.Error("mutating a snapshot should not affect the recorder")
	}
}

func TestNoopRecorder(t *testing.T) {
	r := NewNoop()
	r.ObserveInferenceCall("predict", "success", time.Second)
	r.IncUserSync("created")
	r.IncRateLimited()
}

func TestPrometheusRecorder_Counters(t *testing.T) {
	p := NewPrometheus(prometheus.NewRegistry())

	p.ObserveInferenceCall("predict", "success", 100*time.Millisecond)
	p.ObserveInferenceCall("predict", "status", 20*time.Millisecond)
	p.IncUserSync("created")
	p.IncRateLimited()
	p.IncRateLimited()

	if got := testutil.ToFloat64(p.inferenceRequests.WithLabelValues("predict", "success")); got != 1 {
		t.Errorf("predict/success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.inferenceRequests.WithLabelValues("predict", "status")); got != 1 {
		t.Errorf("predict/status = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.userSyncs.WithLabelValues("created")); got != 1 {
		t.Errorf("user syncs created = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.rateLimited); got != 2 {
		t.Errorf("rate limited = %v, want 2", got)
	}
}

func TestPrometheusRecorder_Handler(t *testing.T) {
	p := NewPrometheus(nil)
	p.ObserveInferenceCall("market_overview", "success", 50*time.Millisecond)

	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	for _, want := range []string{
		`intelvestor_gateway_inference_requests_total{op="market_overview",outcome="success"} 1`,
		"intelvestor_gateway_inference_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
