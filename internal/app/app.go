// Package app arma el grafo de dependencias del servicio a partir de la
// configuración: clientes upstream, catálogo de scopes, flujos y router.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/datacentricdesign/dcd-auth/internal/claims"
	"github.com/datacentricdesign/dcd-auth/internal/config"
	"github.com/datacentricdesign/dcd-auth/internal/flow"
	flowctrl "github.com/datacentricdesign/dcd-auth/internal/http/controllers/flows"
	healthctrl "github.com/datacentricdesign/dcd-auth/internal/http/controllers/health"
	"github.com/datacentricdesign/dcd-auth/internal/http/helpers"
	"github.com/datacentricdesign/dcd-auth/internal/http/router"
	"github.com/datacentricdesign/dcd-auth/internal/http/views"
	"github.com/datacentricdesign/dcd-auth/internal/hydra"
	"github.com/datacentricdesign/dcd-auth/internal/jwt"
	"github.com/datacentricdesign/dcd-auth/internal/metrics"
	"github.com/datacentricdesign/dcd-auth/internal/observability/logger"
	"github.com/datacentricdesign/dcd-auth/internal/persons"
	"github.com/datacentricdesign/dcd-auth/internal/rate"
	"github.com/datacentricdesign/dcd-auth/internal/scopes"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/prometheus/client_golang/prometheus"
	rdb "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options opcionales de New.
type Options struct {
	Version string
	// Registry de métricas; nil = uno nuevo con collectors de Go y proceso.
	Registry *prometheus.Registry
}

// App es el servicio cableado.
type App struct {
	Config  *config.Config
	Handler http.Handler

	Hydra   *hydra.Client
	Persons *persons.Client
	Scopes  *scopes.Catalog
	Metrics *metrics.Metrics
	Limiter rate.Limiter

	closers []func() error
}

// New construye todo. No hace I/O salvo el PING opcional a Redis.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	log := logger.From(ctx).With(logger.Component("app"))
	a := &App{Config: cfg}

	// 1. Métricas
	if cfg.MetricsEnabled() {
		m, err := metrics.New(opts.Registry)
		if err != nil {
			return nil, fmt.Errorf("app: metrics: %w", err)
		}
		a.Metrics = m
	}

	// 2. Clientes upstream (transporte pooled + instrumentado)
	var err error
	a.Hydra, err = hydra.NewClient(hydra.Config{
		AdminURL:   cfg.Hydra.AdminURL,
		Timeout:    cfg.Upstream.Timeout,
		HTTPClient: a.upstreamHTTPClient("hydra"),
	})
	if err != nil {
		return nil, err
	}

	a.Persons, err = NewPersonsClient(cfg, a.upstreamHTTPClient("persons"))
	if err != nil {
		return nil, err
	}
	if !a.Persons.Authenticated() {
		log.Warn("persons API client runs without service credential (OAUTH2_TOKEN_URL not set)")
	}

	// 3. Catálogo de scopes
	a.Scopes, err = LoadScopes(cfg.Consent.ScopesFile)
	if err != nil {
		return nil, err
	}

	// 4. Capability de consent
	caps, err := newCapabilityIssuer(cfg, log)
	if err != nil {
		return nil, err
	}

	// 5. Flujos
	deps := flow.Deps{
		Hydra:             a.Hydra,
		Persons:           a.Persons,
		Capabilities:      caps,
		Scopes:            a.Scopes,
		FirstParty:        flow.NewAllowList(cfg.Consent.FirstPartyApps),
		Subjects:          claims.Subjects{Namespace: cfg.Flow.SubjectNamespace},
		RememberFor:       cfg.Flow.RememberFor,
		LogoutFallbackURL: cfg.Flow.LogoutFallbackURL,
	}
	if a.Metrics != nil {
		deps.Recorder = a.Metrics
	}
	flows, err := flow.New(deps)
	if err != nil {
		return nil, err
	}

	// 6. Rate limit de credenciales + readiness
	checks := map[string]healthctrl.Checker{
		"hydra": healthctrl.CheckFunc(a.Hydra.Ready),
	}
	if cfg.RateEnabled() {
		a.Limiter = a.buildLimiter(ctx, cfg, checks)
	}

	// 7. HTTP
	v, err := views.New()
	if err != nil {
		return nil, err
	}
	out := helpers.NewResponder(v, router.NormalizeBasePath(cfg.Server.BasePath))

	a.Handler = router.New(router.Deps{
		BasePath:     cfg.Server.BasePath,
		Flows:        flowctrl.NewControllers(flows, out),
		Health:       healthctrl.NewHealthController(opts.Version, checks),
		Responder:    out,
		Metrics:      a.Metrics,
		Limiter:      a.Limiter,
		CookieSecure: cfg.SecureCookies(),
	})

	log.Info("app wired",
		logger.String("base_path", cfg.Server.BasePath),
		logger.Int("scopes", a.Scopes.Len()),
		logger.Int("first_party_apps", len(cfg.Consent.FirstPartyApps)),
		logger.Bool("metrics", a.Metrics != nil),
		logger.Bool("rate_limit", a.Limiter != nil),
	)
	return a, nil
}

// Server devuelve el http.Server listo para ListenAndServe.
func (a *App) Server() *http.Server {
	return &http.Server{
		Addr:              a.Config.Server.Addr,
		Handler:           a.Handler,
		ReadHeaderTimeout: a.Config.Server.ReadHeaderTimeout,
	}
}

// Close libera recursos (conexión Redis).
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// NewPersonsClient construye el cliente del API de personas (también lo usa
// el CLI). httpClient puede ser nil.
func NewPersonsClient(cfg *config.Config, httpClient *http.Client) (*persons.Client, error) {
	cred := cfg.Persons.Credential
	return persons.NewClient(persons.Config{
		BaseURL: cfg.Persons.APIURL,
		Timeout: cfg.Upstream.Timeout,
		Credential: persons.CredentialConfig{
			TokenURL:     cred.TokenURL,
			ClientID:     cred.ClientID,
			ClientSecret: cred.ClientSecret,
			Scopes:       cred.Scopes,
			Audience:     cred.Audience,
		},
		HTTPClient: httpClient,
	})
}

// LoadScopes: archivo configurado o catálogo embebido.
func LoadScopes(path string) (*scopes.Catalog, error) {
	if path == "" {
		return scopes.LoadDefault(), nil
	}
	c, err := scopes.Load(path)
	if err != nil {
		return nil, fmt.Errorf("app: scopes catalog: %w", err)
	}
	return c, nil
}

func (a *App) upstreamHTTPClient(service string) *http.Client {
	return &http.Client{Transport: a.Metrics.InstrumentTransport(service, cleanhttp.DefaultPooledTransport())}
}

func (a *App) buildLimiter(ctx context.Context, cfg *config.Config, checks map[string]healthctrl.Checker) rate.Limiter {
	log := logger.From(ctx).With(logger.Component("rate"))
	limit, window := cfg.Rate.Signin.Limit, cfg.Rate.Signin.Window

	if cfg.Rate.Redis.Addr == "" {
		log.Info("using in-memory rate limiter", logger.Int("limit", limit), logger.Duration(window))
		return rate.NewMemoryLimiter("signin:", limit, window)
	}

	client := rdb.NewClient(&rdb.Options{Addr: cfg.Rate.Redis.Addr, DB: cfg.Rate.Redis.DB})
	a.closers = append(a.closers, client.Close)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// el limiter deja pasar si Redis falla; arrancamos igual
		log.Warn("redis not reachable at startup", logger.String("addr", cfg.Rate.Redis.Addr), logger.Err(err))
	}

	l := rate.NewRedisLimiter(client, cfg.Rate.Redis.Prefix, limit, window)
	checks["redis"] = l
	log.Info("using redis rate limiter",
		logger.String("addr", cfg.Rate.Redis.Addr), logger.Int("limit", limit), logger.Duration(window))
	return l
}

// newCapabilityIssuer: sin secreto configurado (sólo fuera de prod, lo
// valida config) se genera uno efímero por proceso.
func newCapabilityIssuer(cfg *config.Config, log *zap.Logger) (*jwt.CapabilityIssuer, error) {
	secret := []byte(cfg.Flow.ConsentTokenSecret)
	if len(secret) == 0 {
		var err error
		if secret, err = jwt.RandomSecret(); err != nil {
			return nil, fmt.Errorf("app: consent secret: %w", err)
		}
		log.Warn("CONSENT_TOKEN_SECRET not set, using an ephemeral secret (consent forms do not survive restarts or span replicas)")
	}
	return jwt.NewCapabilityIssuer(secret, cfg.Flow.ConsentTokenTTL)
}
