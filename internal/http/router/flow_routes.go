package router

import (
	"net/http"

	"github.com/datacentricdesign/dcd-auth/internal/http/controllers/flows"
	dto "github.com/datacentricdesign/dcd-auth/internal/http/dto/flows"
	"github.com/datacentricdesign/dcd-auth/internal/http/helpers"
	mw "github.com/datacentricdesign/dcd-auth/internal/http/middlewares"
	"github.com/datacentricdesign/dcd-auth/internal/http/views"
	"github.com/datacentricdesign/dcd-auth/internal/metrics"
	"github.com/datacentricdesign/dcd-auth/internal/rate"
	"github.com/go-chi/chi/v5"
)

// FlowRouterDeps contiene las dependencias para las páginas de flujos.
type FlowRouterDeps struct {
	BasePath     string
	Controllers  *flows.Controllers
	Responder    *helpers.Responder
	Metrics      *metrics.Metrics
	Limiter      rate.Limiter
	CookieSecure bool
}

// RegisterFlowRoutes registra signin, signup, consent, signout y estáticos
// relativos al prefijo ya montado.
func RegisterFlowRoutes(r chi.Router, deps FlowRouterDeps) {
	c := deps.Controllers
	out := deps.Responder

	cookiePath := deps.BasePath
	if cookiePath == "" {
		cookiePath = "/"
	}

	r.With(mw.WithCacheControl("public, max-age=3600")).
		Handle("/static/*", http.StripPrefix(deps.BasePath+"/static/", views.Static()))

	r.Group(func(r chi.Router) {
		r.Use(mw.WithCSRF(mw.CSRFConfig{
			Path:         cookiePath,
			Secure:       deps.CookieSecure,
			MaxBodyBytes: dto.MaxBodySize,
			OnError:      out.Error,
		}))

		limit := func(route string) mw.Middleware {
			return mw.WithRateLimit(mw.RateLimitConfig{
				Limiter:   deps.Limiter,
				KeyFunc:   mw.IPPathRateKey,
				OnLimited: func(*http.Request) { deps.Metrics.RateLimited(route) },
				OnError:   out.Error,
			})
		}

		r.Get("/signin", c.Signin.Show)
		r.With(limit("signin")).Post("/signin", c.Signin.Submit)

		r.Get("/signup", c.Signup.Show)
		r.With(limit("signup")).Post("/signup", c.Signup.Submit)

		r.Get("/consent", c.Consent.Show)
		r.Post("/consent", c.Consent.Submit)

		r.Get("/signout", c.Signout.Show)
		r.Post("/signout", c.Signout.Submit)
	})
}
