package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordHTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 2 {
		t.Errorf("status 200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("404")); got != 1 {
		t.Errorf("status 404 count = %v, want 1", got)
	}
}

func TestCollector_RecordLoginAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLoginAttempt(true)
	c.RecordLoginAttempt(false)
	c.RecordLoginAttempt(false)

	if got := testutil.ToFloat64(c.loginAttempts.WithLabelValues("success")); got != 1 {
		t.Errorf("success count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.loginAttempts.WithLabelValues("failure")); got != 2 {
		t.Errorf("failure count = %v, want 2", got)
	}
}

func TestCollector_RecordHabitCompletion(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHabitCompletion("incremented")
	c.RecordHabitCompletion("incremented")
	c.RecordHabitCompletion("reset")

	if got := testutil.ToFloat64(c.habitCompletion.WithLabelValues("incremented")); got != 2 {
		t.Errorf("incremented count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.habitCompletion.WithLabelValues("reset")); got != 1 {
		t.Errorf("reset count = %v, want 1", got)
	}
}

func TestCollector_RecordQuoteFetch(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordQuoteFetch(true)
	c.RecordQuoteFetch(false)

	if got := testutil.ToFloat64(c.quoteFetch.WithLabelValues("success")); got != 1 {
		t.Errorf("success count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.quoteFetch.WithLabelValues("failure")); got != 1 {
		t.Errorf("failure count = %v, want 1", got)
	}
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHTTPStatus(200)
	c.RecordRequestLatency(50 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	for _, name := range []string{
		"daybook_http_status_total",
		"daybook_request_latency_seconds",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
