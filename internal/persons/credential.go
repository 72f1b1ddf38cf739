package persons

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/datacentricdesign/dcd-auth/internal/upstream"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

const (
	tokenCacheKey = "service_token"
	// expirySkew: renovamos un poco antes de que el token venza.
	expirySkew = 30 * time.Second
	// fallbackTTL se usa cuando el token no trae expiración.
	fallbackTTL = 5 * time.Minute
)

// CredentialConfig configura el client credentials grant contra el token
// endpoint que protege el API de personas.
type CredentialConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	Audience     string
}

// Enabled reporta si hay token endpoint configurado.
func (c CredentialConfig) Enabled() bool {
	return strings.TrimSpace(c.TokenURL) != ""
}

// tokenFetcher abstrae clientcredentials.Config.Token para tests.
type tokenFetcher func(ctx context.Context) (*oauth2.Token, error)

// CredentialSource mantiene el bearer de servicio. Refresh es barato si el
// token sigue vigente y concurrente-seguro: un único fetch por vencimiento.
type CredentialSource struct {
	fetch tokenFetcher
	cache *gocache.Cache
	group singleflight.Group
}

// NewCredentialSource arma la fuente. httpClient se usa para hablar con el
// token endpoint (mismo transporte y timeout que el resto de las llamadas).
func NewCredentialSource(cfg CredentialConfig, httpClient *http.Client) *CredentialSource {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	if cfg.Audience != "" {
		cc.EndpointParams = map[string][]string{"audience": {cfg.Audience}}
	}
	return newCredentialSource(func(ctx context.Context) (*oauth2.Token, error) {
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		return cc.Token(ctx)
	})
}

func newCredentialSource(fetch tokenFetcher) *CredentialSource {
	return &CredentialSource{
		fetch: fetch,
		cache: gocache.New(fallbackTTL, time.Minute),
	}
}

// Refresh garantiza un token vigente en cache.
func (s *CredentialSource) Refresh(ctx context.Context) error {
	_, err := s.Token(ctx)
	return err
}

// Token devuelve el access token vigente, renovándolo si hace falta.
func (s *CredentialSource) Token(ctx context.Context) (string, error) {
	if v, ok := s.cache.Get(tokenCacheKey); ok {
		return v.(string), nil
	}

	v, err, _ := s.group.Do(tokenCacheKey, func() (any, error) {
		if v, ok := s.cache.Get(tokenCacheKey); ok {
			return v.(string), nil
		}
		tok, err := s.fetch(ctx)
		if err != nil {
			return "", upstream.NewUnavailable(serviceName, "token", err)
		}
		ttl := fallbackTTL
		if !tok.Expiry.IsZero() {
			ttl = time.Until(tok.Expiry) - expirySkew
		}
		if ttl > 0 {
			s.cache.Set(tokenCacheKey, tok.AccessToken, ttl)
		}
		return tok.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate descarta el token cacheado (ej: tras un 401 del API).
func (s *CredentialSource) Invalidate() {
	s.cache.Delete(tokenCacheKey)
}
