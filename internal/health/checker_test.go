package health_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ErlanBelekov/todo-app/internal/health"
	"github.com/prometheus/client_golang/prometheus"
)

type mockPinger struct {
	err   error
	calls atomic.Int32
}

func (m *mockPinger) Ping(_ context.Context) error {
	m.calls.Add(1)
	return m.err
}

func newTestChecker(p health.Pinger) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	logger := slog.Default()
	return health.NewChecker(p, logger, reg), reg
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c, _ := newTestChecker(&mockPinger{err: errors.New("db down")})

	result := c.Liveness(context.Background())
	if result.Status != health.StatusUp {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	if result.Checks != nil {
		t.Fatalf("expected no checks, got %v", result.Checks)
	}
}

func TestReadiness_PostgresUp(t *testing.T) {
	c, reg := newTestChecker(&mockPinger{})

	result := c.Readiness(context.Background())
	if result.Status != health.StatusUp {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	if pg := result.Checks["postgres"]; pg.Status != health.StatusUp {
		t.Fatalf("expected postgres up, got %+v", pg)
	}

	if gauge := testGauge(t, reg, "todo_auth_health_check_up", "postgres"); gauge != 1 {
		t.Fatalf("expected gauge 1, got %f", gauge)
	}
}

func TestReadiness_PostgresDown(t *testing.T) {
	c, reg := newTestChecker(&mockPinger{err: errors.New("connection refused")})

	result := c.Readiness(context.Background())
	if result.Status != health.StatusDown {
		t.Fatalf("expected status down, got %s", result.Status)
	}
	pg := result.Checks["postgres"]
	if pg.Status != health.StatusDown || pg.Error == "" {
		t.Fatalf("expected postgres down with error, got %+v", pg)
	}

	if gauge := testGauge(t, reg, "todo_auth_health_check_up", "postgres"); gauge != 0 {
		t.Fatalf("expected gauge 0, got %f", gauge)
	}
}

func TestSchedule_InvalidSpec(t *testing.T) {
	c, _ := newTestChecker(&mockPinger{})

	if _, err := c.Schedule(context.Background(), "not a cron spec"); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestSchedule_ProbesPeriodically(t *testing.T) {
	p := &mockPinger{}
	c, _ := newTestChecker(p)

	cr, err := c.Schedule(context.Background(), "@every 1s")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	defer cr.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for p.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if p.calls.Load() == 0 {
		t.Fatal("scheduled check never ran")
	}
}

func testGauge(t *testing.T, reg *prometheus.Registry, name, depLabel string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "dependency" && lp.GetValue() == depLabel {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{dependency=%q} not found", name, depLabel)
	return 0
}

// ctxPinger records whether the context it was pinged with was already done.
type ctxPinger struct {
	calls     atomic.Int32
	cancelled atomic.Bool
}

func (p *ctxPinger) Ping(ctx context.Context) error {
	if ctx.Err() != nil {
		p.cancelled.Store(true)
	}
	p.calls.Add(1)
	return ctx.Err()
}

func TestSchedule_TickSurvivesCancelledParent(t *testing.T) {
	p := &ctxPinger{}
	c, reg := newTestChecker(p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cr, err := c.Schedule(ctx, "@every 1s")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	defer cr.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for p.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if p.calls.Load() == 0 {
		t.Fatal("scheduled check never ran")
	}
	if p.cancelled.Load() {
		t.Error("scheduled check pinged with a cancelled context")
	}
	if gauge := testGauge(t, reg, "todo_auth_health_check_up", "postgres"); gauge != 1 {
		t.Errorf("expected gauge 1, got %f", gauge)
	}
}
