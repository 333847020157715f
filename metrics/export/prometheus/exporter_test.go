package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	stayauth "github.com/lumenstay/stayauth"
)

type fakeSource struct {
	snapshot stayauth.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() stayauth.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                      { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: stayauth.MetricsSnapshot{
			Counters:   map[stayauth.MetricID]uint64{},
			Histograms: map[stayauth.MetricID][]uint64{},
		},
		dropped: 0,
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderDeterministicIncludesCounterAndHistogram(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: stayauth.MetricsSnapshot{
			Counters: map[stayauth.MetricID]uint64{
				stayauth.MetricLoginSuccess: 7,
			},
			Histograms: map[stayauth.MetricID][]uint64{
				stayauth.MetricLoginLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	if !strings.Contains(out, "stayauth_login_success_total 7") {
		t.Fatalf("expected login_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "stayauth_login_latency_seconds_bucket{le=\"0.025\"} 1") {
		t.Fatalf("expected first histogram bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "stayauth_login_latency_seconds_bucket{le=\"+Inf\"} 36") {
		t.Fatalf("expected +Inf cumulative bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "stayauth_audit_dropped_total 2") {
		t.Fatalf("expected audit dropped counter in output, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: stayauth.MetricsSnapshot{
			Counters:   map[stayauth.MetricID]uint64{stayauth.MetricLoginSuccess: 1},
			Histograms: map[stayauth.MetricID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: stayauth.MetricsSnapshot{
			Counters: map[stayauth.MetricID]uint64{
				stayauth.MetricLoginSuccess:       1000,
				stayauth.MetricLoginFailure:       40,
				stayauth.MetricRestoreSuccess:     800,
				stayauth.MetricRestoreFailure:     10,
				stayauth.MetricSessionInvalidated: 20,
				stayauth.MetricLogout:             300,
			},
			Histograms: map[stayauth.MetricID][]uint64{
				stayauth.MetricLoginLatency: {10, 20, 30, 40, 50, 60, 70, 80},
			},
		},
		dropped: 0,
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
