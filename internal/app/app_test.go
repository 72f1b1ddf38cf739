package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/datacentricdesign/dcd-auth/internal/config"
	"github.com/datacentricdesign/dcd-auth/internal/observability/logger"
	"github.com/datacentricdesign/dcd-auth/internal/rate"
)

func newHydraStub(t *testing.T, ready bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health/ready" && ready {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
			return
		}
		http.Error(w, `{"error":"not ready"}`, http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func loadTestConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func readyz(t *testing.T, h http.Handler) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestNew_RedisLimiterAndMetrics(t *testing.T) {
	defer logger.Replace(zap.NewNop())()
	hydra := newHydraStub(t, true)
	mr := miniredis.RunT(t)

	cfg := loadTestConfig(t, map[string]string{
		"HYDRA_ADMIN_URL": hydra.URL,
		"API_URL":         "http://persons.test/api",
		"METRICS_ENABLED": "true",
		"RATE_ENABLED":    "true",
		"REDIS_ADDR":      mr.Addr(),
		"BASE_URL":        "/auth",
	})

	a, err := New(context.Background(), cfg, Options{Version: "test", Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NotNil(t, a.Metrics)
	assert.IsType(t, &rate.RedisLimiter{}, a.Limiter)
	assert.Positive(t, a.Scopes.Len())

	code, body := readyz(t, a.Handler)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
	comps := body["components"].(map[string]any)
	assert.Contains(t, comps, "hydra")
	assert.Contains(t, comps, "redis")

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	srv := a.Server()
	assert.Equal(t, cfg.Server.Addr, srv.Addr)
	assert.Equal(t, cfg.Server.ReadHeaderTimeout, srv.ReadHeaderTimeout)
}

func TestNew_MemoryLimiterNoMetrics(t *testing.T) {
	defer logger.Replace(zap.NewNop())()
	hydra := newHydraStub(t, false)

	cfg := loadTestConfig(t, map[string]string{
		"HYDRA_ADMIN_URL": hydra.URL,
		"API_URL":         "http://persons.test/api",
		"METRICS_ENABLED": "false",
		"RATE_ENABLED":    "true",
		"REDIS_ADDR":      "",
	})

	a, err := New(context.Background(), cfg, Options{})
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Metrics)
	assert.IsType(t, &rate.MemoryLimiter{}, a.Limiter)

	code, body := readyz(t, a.Handler)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", body["status"])

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestLoadScopes_MissingFile(t *testing.T) {
	_, err := LoadScopes("/definitely/not/here.yaml")
	require.Error(t, err)

	c, err := LoadScopes("")
	require.NoError(t, err)
	assert.Positive(t, c.Len())
}
