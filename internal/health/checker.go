package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckResult represents the health of a single dependency.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResult is the top-level health response.
type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// Checker verifies that the credential store is reachable.
type Checker struct {
	db     Pinger
	logger *slog.Logger
	gauge  *prometheus.GaugeVec
}

// NewChecker creates a health checker and registers its Prometheus gauge.
func NewChecker(db Pinger, logger *slog.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "todo_auth",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		db:     db,
		logger: logger.With("component", "health"),
		gauge:  gauge,
	}
}

// Liveness returns a simple "up" response if the process is running.
func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: StatusUp}
}

// Readiness pings every dependency and reports per-check status.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := HealthResult{
		Status: StatusUp,
		Checks: make(map[string]CheckResult),
	}

	if err := c.db.Ping(checkCtx); err != nil {
		c.logger.WarnContext(ctx, "postgres health check failed", "error", err)
		result.Status = StatusDown
		result.Checks["postgres"] = CheckResult{Status: StatusDown, Error: err.Error()}
		c.gauge.WithLabelValues("postgres").Set(0)
	} else {
		result.Checks["postgres"] = CheckResult{Status: StatusUp}
		c.gauge.WithLabelValues("postgres").Set(1)
	}

	return result
}

// Schedule runs Readiness on the cron spec (e.g. "@every 15s") so the gauge
// stays current between probe requests. The caller owns the returned cron
// and must Stop it. Ticks ignore ctx cancellation so one racing shutdown
// doesn't report postgres as down.
func (c *Checker) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	tickCtx := context.WithoutCancel(ctx)
	cr := cron.New()
	_, err := cr.AddFunc(spec, func() {
		c.Readiness(tickCtx)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule health probe %q: %w", spec, err)
	}
	cr.Start()
	return cr, nil
}
