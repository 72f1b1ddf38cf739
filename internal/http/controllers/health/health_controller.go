// Package health contiene los controllers de liveness y readiness.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	dto "github.com/datacentricdesign/dcd-auth/internal/http/dto/health"
	"github.com/datacentricdesign/dcd-auth/internal/observability/logger"
)

const defaultCheckTimeout = 2 * time.Second

// Checker es un componente verificable (hydra, redis).
type Checker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapta una función a Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// HealthController expone /healthz (liveness) y /readyz (dependencias).
type HealthController struct {
	version string
	checks  map[string]Checker
	timeout time.Duration
	now     func() time.Time
}

// NewHealthController crea el controller. checks puede ser nil.
func NewHealthController(version string, checks map[string]Checker) *HealthController {
	return &HealthController{
		version: version,
		checks:  checks,
		timeout: defaultCheckTimeout,
		now:     time.Now,
	}
}

// Live maneja GET /healthz: el proceso responde.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Version:   c.version,
		Timestamp: c.now().UTC(),
	})
}

// Ready maneja GET /readyz: corre todos los checks en paralelo.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]dto.HealthStatus, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, chk Checker) {
			defer wg.Done()
			if err := chk.Check(ctx); err != nil {
				results[i] = dto.HealthStatus{Status: "error", Message: err.Error()}
				return
			}
			results[i] = dto.HealthStatus{Status: "ok"}
		}(i, c.checks[name])
	}
	wg.Wait()

	resp := dto.HealthResponse{
		Status:     "ready",
		Components: make(map[string]dto.HealthStatus, len(names)),
		Version:    c.version,
		Timestamp:  c.now().UTC(),
	}
	status := http.StatusOK
	for i, name := range names {
		resp.Components[name] = results[i]
		if results[i].Status != "ok" {
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			logger.From(r.Context()).Warn("readiness check failed",
				logger.Component(name), logger.String("reason", results[i].Message))
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
