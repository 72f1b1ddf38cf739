// Package router arma el árbol de rutas (chi) y la cadena de middlewares.
package router

import (
	"net/http"
	"strings"

	flowctrl "github.com/datacentricdesign/dcd-auth/internal/http/controllers/flows"
	healthctrl "github.com/datacentricdesign/dcd-auth/internal/http/controllers/health"
	"github.com/datacentricdesign/dcd-auth/internal/http/helpers"
	mw "github.com/datacentricdesign/dcd-auth/internal/http/middlewares"
	"github.com/datacentricdesign/dcd-auth/internal/metrics"
	"github.com/datacentricdesign/dcd-auth/internal/rate"
	"github.com/go-chi/chi/v5"
)

// Deps contiene las dependencias del router.
type Deps struct {
	// BasePath prefijo de las páginas (ej: "/auth"). "" o "/" = raíz.
	BasePath string

	Flows     *flowctrl.Controllers
	Health    *healthctrl.HealthController
	Responder *helpers.Responder

	// Metrics opcional: nil desactiva /metrics y la instrumentación HTTP.
	Metrics *metrics.Metrics
	// Limiter opcional para POST /signin y /signup.
	Limiter rate.Limiter

	CookieSecure bool
}

// NormalizeBasePath: "" y "/" → ""; si no, con "/" inicial y sin "/" final.
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// New construye el handler raíz.
//
// Cadena global: recover → request-id → security headers → no-store →
// metrics → logging. Las páginas agregan CSRF y los POST de credenciales
// el rate limit.
func New(d Deps) http.Handler {
	out := d.Responder
	base := NormalizeBasePath(d.BasePath)

	r := chi.NewRouter()
	r.NotFound(out.NotFound)
	r.MethodNotAllowed(out.MethodNotAllowed)
	r.Use(
		mw.WithRecover(out.Error),
		mw.WithRequestID(),
		mw.WithSecurityHeaders(),
		mw.WithNoStore(),
		mw.WithMetrics(d.Metrics),
		mw.WithLogging(),
	)

	if d.Health != nil {
		r.Get("/healthz", d.Health.Live)
		r.Get("/readyz", d.Health.Ready)
	}
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	pages := func(pr chi.Router) {
		pr.NotFound(out.NotFound)
		pr.MethodNotAllowed(out.MethodNotAllowed)
		RegisterFlowRoutes(pr, FlowRouterDeps{
			BasePath:     base,
			Controllers:  d.Flows,
			Responder:    out,
			Metrics:      d.Metrics,
			Limiter:      d.Limiter,
			CookieSecure: d.CookieSecure,
		})
	}
	if base == "" {
		r.Group(pages)
	} else {
		r.Route(base, pages)
	}

	return r
}
