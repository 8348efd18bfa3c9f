package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ErlanBelekov/todo-app/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_AllCollectorsGatherable(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	metrics.AuthOperationsTotal.WithLabelValues("signup", "ok").Inc()
	metrics.EmailsSentTotal.WithLabelValues("signup_confirmation", "ok").Inc()

	n, err := testutil.GatherAndCount(reg, "todo_auth_operations_total", "todo_auth_emails_sent_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n < 2 {
		t.Errorf("series count = %d, want >= 2", n)
	}
}

func TestNewServer_ServesMetrics(t *testing.T) {
	srv := metrics.NewServer(":0")

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("default go collector missing from /metrics output")
	}
}
