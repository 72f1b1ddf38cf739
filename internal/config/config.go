package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Largo mínimo del secreto HMAC de la capability de consent.
const minConsentSecretLen = 32

type Config struct {
	App struct {
		// dev | staging | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr     string `yaml:"addr"`
		BasePath string `yaml:"base_path"`
		// nil = default según entorno (true en prod)
		CookieSecure *bool `yaml:"cookie_secure"`
		Metrics      *bool `yaml:"metrics"`

		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
		ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Hydra struct {
		AdminURL string `yaml:"admin_url"`
	} `yaml:"hydra"`

	Persons struct {
		APIURL     string `yaml:"api_url"`
		Credential struct {
			TokenURL     string   `yaml:"token_url"`
			ClientID     string   `yaml:"client_id"`
			ClientSecret string   `yaml:"client_secret"`
			Scopes       []string `yaml:"scopes"`
			Audience     string   `yaml:"audience"`
		} `yaml:"credential"`
	} `yaml:"persons"`

	Consent struct {
		FirstPartyApps []string `yaml:"first_party_apps"`
		ScopesFile     string   `yaml:"scopes_file"` // vacío = catálogo embebido
	} `yaml:"consent"`

	Flow struct {
		SubjectNamespace   string        `yaml:"subject_namespace"`
		RememberFor        int           `yaml:"remember_for"` // segundos
		LogoutFallbackURL  string        `yaml:"logout_fallback_url"`
		ConsentTokenSecret string        `yaml:"consent_token_secret"`
		ConsentTokenTTL    time.Duration `yaml:"consent_token_ttl"`
	} `yaml:"flow"`

	Upstream struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"upstream"`

	Rate struct {
		Enabled *bool `yaml:"enabled"`
		Signin  struct {
			Limit  int           `yaml:"limit"`
			Window time.Duration `yaml:"window"`
		} `yaml:"signin"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"rate"`
}

// Load lee el YAML (opcional: si path es "" o no existe se parte de cero),
// aplica defaults, overrides por env y valida.
func Load(path string) (*Config, error) {
	var c Config
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// sin archivo: sólo env + defaults
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
			// rutas relativas al directorio del YAML
			if p := strings.TrimSpace(c.Consent.ScopesFile); p != "" && !filepath.IsAbs(p) {
				c.Consent.ScopesFile = filepath.Clean(filepath.Join(filepath.Dir(path), p))
			}
		}
	}

	// Overrides por env
	if err := c.applyEnvOverrides(); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	c.App.Env = strings.ToLower(strings.TrimSpace(c.App.Env))
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = "/auth"
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}

	if c.Flow.SubjectNamespace == "" {
		c.Flow.SubjectNamespace = "dcd"
	}
	if c.Flow.RememberFor == 0 {
		c.Flow.RememberFor = 3600
	}
	if c.Flow.LogoutFallbackURL == "" {
		c.Flow.LogoutFallbackURL = "https://dwd.tudelft.nl"
	}
	if c.Flow.ConsentTokenTTL == 0 {
		c.Flow.ConsentTokenTTL = 10 * time.Minute
	}

	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = 10 * time.Second
	}

	if c.Rate.Signin.Limit == 0 {
		c.Rate.Signin.Limit = 10
	}
	if c.Rate.Signin.Window == 0 {
		c.Rate.Signin.Window = time.Minute
	}
	if c.Rate.Redis.Prefix == "" {
		c.Rate.Redis.Prefix = "dcd-auth:rl:"
	}
}

// IsProd reporta si corremos en producción.
func (c *Config) IsProd() bool { return c.App.Env == "prod" }

// SecureCookies: explícito o, si no se configuró, true sólo en prod.
func (c *Config) SecureCookies() bool {
	if c.Server.CookieSecure != nil {
		return *c.Server.CookieSecure
	}
	return c.IsProd()
}

// MetricsEnabled: default true.
func (c *Config) MetricsEnabled() bool {
	return c.Server.Metrics == nil || *c.Server.Metrics
}

// RateEnabled: default true.
func (c *Config) RateEnabled() bool {
	return c.Rate.Enabled == nil || *c.Rate.Enabled
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

// Los helpers tipados devuelven error si la variable existe pero no parsea:
// un typo en producción no debe pasar silenciosamente.
func getEnvInt(key string) (int, bool, error) {
	if s, ok := getEnvStr(key); ok {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false, fmt.Errorf("%s: invalid integer %q", key, s)
		}
		return i, true, nil
	}
	return 0, false, nil
}

func getEnvBool(key string) (bool, bool, error) {
	if s, ok := getEnvStr(key); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return false, false, fmt.Errorf("%s: invalid boolean %q", key, s)
		}
		return b, true, nil
	}
	return false, false, nil
}

func getEnvDur(key string) (time.Duration, bool, error) {
	if s, ok := getEnvStr(key); ok {
		d, err := time.ParseDuration(strings.TrimSpace(s))
		if err != nil {
			return 0, false, fmt.Errorf("%s: invalid duration %q", key, s)
		}
		return d, true, nil
	}
	return 0, false, nil
}

// getEnvList acepta valores separados por coma o espacio.
func getEnvList(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		return splitList(s), true
	}
	return nil, false
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// applyEnvOverrides: pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() error {
	var errs *multierror.Error
	setInt := func(key string, dst *int) {
		v, ok, err := getEnvInt(key)
		errs = multierror.Append(errs, err)
		if ok {
			*dst = v
		}
	}
	setDur := func(key string, dst *time.Duration) {
		v, ok, err := getEnvDur(key)
		errs = multierror.Append(errs, err)
		if ok {
			*dst = v
		}
	}
	setBoolPtr := func(key string, dst **bool) {
		v, ok, err := getEnvBool(key)
		errs = multierror.Append(errs, err)
		if ok {
			*dst = &v
		}
	}

	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = v
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("BASE_URL"); ok {
		c.Server.BasePath = v
	}
	setBoolPtr("COOKIE_SECURE", &c.Server.CookieSecure)
	setBoolPtr("METRICS_ENABLED", &c.Server.Metrics)

	// UPSTREAMS
	if v, ok := getEnvStr("HYDRA_ADMIN_URL"); ok {
		c.Hydra.AdminURL = v
	}
	if v, ok := getEnvStr("API_URL"); ok {
		c.Persons.APIURL = v
	}
	if v, ok := getEnvStr("OAUTH2_TOKEN_URL"); ok {
		c.Persons.Credential.TokenURL = v
	}
	if v, ok := getEnvStr("OAUTH2_CLIENT_ID"); ok {
		c.Persons.Credential.ClientID = v
	}
	if v, ok := getEnvStr("OAUTH2_CLIENT_SECRET"); ok {
		c.Persons.Credential.ClientSecret = v
	}
	if v, ok := getEnvList("OAUTH2_SCOPE"); ok {
		c.Persons.Credential.Scopes = v
	}
	if v, ok := getEnvStr("OAUTH2_AUDIENCE"); ok {
		c.Persons.Credential.Audience = v
	}
	setDur("UPSTREAM_TIMEOUT", &c.Upstream.Timeout)

	// CONSENT
	if v, ok := getEnvList("FIRST_PARTY_APPS"); ok {
		c.Consent.FirstPartyApps = v
	}
	if v, ok := getEnvStr("SCOPES_FILE"); ok {
		c.Consent.ScopesFile = v
	}

	// FLOW
	if v, ok := getEnvStr("SUBJECT_NAMESPACE"); ok {
		c.Flow.SubjectNamespace = v
	}
	setInt("REMEMBER_FOR", &c.Flow.RememberFor)
	if v, ok := getEnvStr("LOGOUT_FALLBACK_URL"); ok {
		c.Flow.LogoutFallbackURL = v
	}
	if v, ok := getEnvStr("CONSENT_TOKEN_SECRET"); ok {
		c.Flow.ConsentTokenSecret = v
	}
	setDur("CONSENT_TOKEN_TTL", &c.Flow.ConsentTokenTTL)

	// RATE
	setBoolPtr("RATE_ENABLED", &c.Rate.Enabled)
	setInt("RATE_SIGNIN_LIMIT", &c.Rate.Signin.Limit)
	setDur("RATE_SIGNIN_WINDOW", &c.Rate.Signin.Window)
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Rate.Redis.Addr = v
	}
	setInt("REDIS_DB", &c.Rate.Redis.DB)
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Rate.Redis.Prefix = v
	}

	return errs.ErrorOrNil()
}

// Validate junta todos los problemas en un único error.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if err := validateURL("hydra.admin_url (HYDRA_ADMIN_URL)", c.Hydra.AdminURL); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := validateURL("persons.api_url (API_URL)", c.Persons.APIURL); err != nil {
		errs = multierror.Append(errs, err)
	}
	if c.Persons.Credential.TokenURL != "" {
		if err := validateURL("persons.credential.token_url (OAUTH2_TOKEN_URL)", c.Persons.Credential.TokenURL); err != nil {
			errs = multierror.Append(errs, err)
		}
		if strings.TrimSpace(c.Persons.Credential.ClientID) == "" {
			errs = multierror.Append(errs, errors.New("persons.credential.client_id (OAUTH2_CLIENT_ID) is required when a token url is set"))
		}
	}
	if err := validateURL("flow.logout_fallback_url (LOGOUT_FALLBACK_URL)", c.Flow.LogoutFallbackURL); err != nil {
		errs = multierror.Append(errs, err)
	}

	if !strings.HasPrefix(c.Server.BasePath, "/") {
		errs = multierror.Append(errs, fmt.Errorf("server.base_path (BASE_URL) must start with '/', got %q", c.Server.BasePath))
	}
	if strings.Contains(c.Flow.SubjectNamespace, ":") {
		errs = multierror.Append(errs, fmt.Errorf("flow.subject_namespace must not contain ':', got %q", c.Flow.SubjectNamespace))
	}
	if c.Flow.RememberFor < 0 {
		errs = multierror.Append(errs, fmt.Errorf("flow.remember_for (REMEMBER_FOR) must be >= 0, got %d", c.Flow.RememberFor))
	}
	if c.Flow.ConsentTokenTTL < 0 {
		errs = multierror.Append(errs, errors.New("flow.consent_token_ttl (CONSENT_TOKEN_TTL) must be positive"))
	}
	switch secret := c.Flow.ConsentTokenSecret; {
	case secret == "" && c.IsProd():
		errs = multierror.Append(errs, errors.New("flow.consent_token_secret (CONSENT_TOKEN_SECRET) is required in prod"))
	case secret != "" && len(secret) < minConsentSecretLen:
		errs = multierror.Append(errs, fmt.Errorf("flow.consent_token_secret (CONSENT_TOKEN_SECRET) must be at least %d bytes", minConsentSecretLen))
	}
	if c.Upstream.Timeout < 0 {
		errs = multierror.Append(errs, errors.New("upstream.timeout (UPSTREAM_TIMEOUT) must be positive"))
	}
	if c.RateEnabled() {
		if c.Rate.Signin.Limit <= 0 {
			errs = multierror.Append(errs, fmt.Errorf("rate.signin.limit (RATE_SIGNIN_LIMIT) must be > 0, got %d", c.Rate.Signin.Limit))
		}
		if c.Rate.Signin.Window <= 0 {
			errs = multierror.Append(errs, errors.New("rate.signin.window (RATE_SIGNIN_WINDOW) must be positive"))
		}
	}

	if errs != nil {
		errs.ErrorFormat = formatErrors
	}
	return errs.ErrorOrNil()
}

func validateURL(name, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s: invalid url %q", name, raw)
	}
	return nil
}

func formatErrors(es []error) string {
	lines := make([]string, 0, len(es))
	for _, e := range es {
		lines = append(lines, "  - "+e.Error())
	}
	return fmt.Sprintf("config: %d problem(s):\n%s", len(es), strings.Join(lines, "\n"))
}
