// Package persons es el adaptador del API de personas (identity store):
// verificación de contraseñas y alta de cuentas, autenticado con un bearer
// de servicio obtenido por client credentials.
package persons

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/datacentricdesign/dcd-auth/internal/upstream"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
)

const serviceName = "persons"

const maxBody = 1 << 20

// Config del cliente.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Credential CredentialConfig

	HTTPClient *http.Client
}

// Client habla con el API de personas.
type Client struct {
	base  string
	http  *http.Client
	creds *CredentialSource // nil = sin autenticación
}

// NewClient valida la config. Sin TokenURL el cliente opera sin bearer.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("persons: api url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("persons: invalid api url %q", raw)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Transport: cleanhttp.DefaultPooledTransport()}
	}
	if cfg.Timeout > 0 {
		cp := *hc
		cp.Timeout = cfg.Timeout
		hc = &cp
	}

	c := &Client{base: strings.TrimRight(u.String(), "/"), http: hc}
	if cfg.Credential.Enabled() {
		c.creds = NewCredentialSource(cfg.Credential, hc)
	}
	return c, nil
}

// Authenticated reporta si las llamadas llevan bearer de servicio.
func (c *Client) Authenticated() bool { return c.creds != nil }

// RefreshCredential asegura un bearer vigente. No-op sin autenticación.
func (c *Client) RefreshCredential(ctx context.Context) error {
	if c.creds == nil {
		return nil
	}
	return c.creds.Refresh(ctx)
}

// AuthorizedRequest envía body como JSON a path (relativo a la base) con el
// bearer de servicio y devuelve el body de respuesta.
func (c *Client) AuthorizedRequest(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	op := method + " " + path

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("persons: encode %s body: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+"/"+strings.TrimLeft(path, "/"), rdr)
	if err != nil {
		return nil, upstream.NewUnavailable(serviceName, op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		tok, err := c.creds.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, upstream.NewUnavailable(serviceName, op, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, upstream.NewUnavailable(serviceName, op, err)
	}
	if !upstream.InRange(resp.StatusCode) {
		if resp.StatusCode == http.StatusUnauthorized && c.creds != nil {
			// el token pudo haber sido revocado; el próximo request pide otro
			c.creds.Invalidate()
		}
		return nil, upstream.NewRejected(serviceName, op, resp.StatusCode, b)
	}
	return json.RawMessage(b), nil
}

// CheckPassword: POST /persons/{id}/check → person.valid. El bearer lo
// asegura quien llama con RefreshCredential (o AuthorizedRequest al vuelo).
func (c *Client) CheckPassword(ctx context.Context, id, password string) (bool, error) {
	path := "/persons/" + url.PathEscape(id) + "/check"
	raw, err := c.AuthorizedRequest(ctx, http.MethodPost, path, map[string]string{"password": password})
	if err != nil {
		return false, err
	}
	// sólo el booleano true cuenta; "true" o 1 no autentican
	return gjson.GetBytes(raw, "person.valid").Type == gjson.True, nil
}

// CreatePerson: POST /persons → personId.
func (c *Client) CreatePerson(ctx context.Context, id, name, password string) (string, error) {
	raw, err := c.AuthorizedRequest(ctx, http.MethodPost, "/persons", map[string]string{
		"id":       id,
		"name":     name,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	pid := gjson.GetBytes(raw, "personId").String()
	if pid == "" {
		pid = id
	}
	return pid, nil
}
