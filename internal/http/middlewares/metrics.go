package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/datacentricdesign/dcd-auth/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// WithMetrics instrumenta requests (contador, latencia, inflight). La ruta
// se etiqueta con el patrón de chi para acotar cardinalidad.
func WithMetrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method := strings.ToUpper(r.Method)
			m.Inflight(1)
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				m.Inflight(-1)
				m.ObserveHTTP(method, routeLabel(r, rec.status), rec.status, time.Since(start))
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

func routeLabel(r *http.Request, status int) string {
	if status == http.StatusNotFound {
		return "unmatched"
	}
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return metrics.NormalizePath(r.URL.Path)
}
