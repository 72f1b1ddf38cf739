// Package hydra es el cliente tipado del admin API de ORY Hydra para
// resolver solicitudes de login, consent y logout.
//
// Cada llamada es exactamente un round-trip: sin reintentos y sin cache.
package hydra

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
)

const serviceName = "hydra"

// maxBody acota lo que leemos de cualquier respuesta.
const maxBody = 1 << 20

var (
	// ErrMissingChallenge: se intentó operar sin challenge; no hay llamada de red.
	ErrMissingChallenge = errors.New("hydra: missing challenge")
	// ErrChallengeNotFound: Hydra no conoce el challenge (404).
	ErrChallengeNotFound = errors.New("hydra: challenge not found")
	// ErrChallengeExpired: el challenge ya fue usado o expiró (409/410).
	ErrChallengeExpired = errors.New("hydra: challenge expired")
)

// Config del cliente.
type Config struct {
	AdminURL string
	Timeout  time.Duration // 0 = sin límite propio (usar el del contexto)

	// HTTPClient opcional; si es nil se construye uno con transporte pooled.
	HTTPClient *http.Client
}

// Client habla con el admin API de Hydra.
type Client struct {
	base string // sin "/" final
	http *http.Client
}

// NewClient valida la URL base y arma el cliente HTTP.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.AdminURL)
	if raw == "" {
		return nil, errors.New("hydra: admin url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("hydra: invalid admin url %q", raw)
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
	return &Client{base: strings.TrimRight(u.String(), "/"), http: hc}, nil
}

// ---- login ----

func (c *Client) GetLoginRequest(ctx context.Context, challenge string) (*LoginRequest, error) {
	var out LoginRequest
	if err := c.fetch(ctx, FlowLogin, challenge, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptLoginRequest(ctx context.Context, challenge string, body AcceptLogin) (*Completed, error) {
	return c.put(ctx, FlowLogin, "accept", challenge, body)
}

func (c *Client) RejectLoginRequest(ctx context.Context, challenge string, body Reject) (*Completed, error) {
	return c.put(ctx, FlowLogin, "reject", challenge, body)
}

// ---- consent ----

func (c *Client) GetConsentRequest(ctx context.Context, challenge string) (*ConsentRequest, error) {
	var out ConsentRequest
	if err := c.fetch(ctx, FlowConsent, challenge, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptConsentRequest(ctx context.Context, challenge string, body AcceptConsent) (*Completed, error) {
	return c.put(ctx, FlowConsent, "accept", challenge, body)
}

func (c *Client) RejectConsentRequest(ctx context.Context, challenge string, body Reject) (*Completed, error) {
	return c.put(ctx, FlowConsent, "reject", challenge, body)
}

// ---- logout ----

func (c *Client) GetLogoutRequest(ctx context.Context, challenge string) (*LogoutRequest, error) {
	var out LogoutRequest
	if err := c.fetch(ctx, FlowLogout, challenge, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptLogoutRequest(ctx context.Context, challenge string) (*Completed, error) {
	return c.put(ctx, FlowLogout, "accept", challenge, nil)
}

// RejectLogoutRequest envía el reject sin body.
func (c *Client) RejectLogoutRequest(ctx context.Context, challenge string) (*Completed, error) {
	return c.put(ctx, FlowLogout, "reject", challenge, nil)
}

// Ready consulta /health/ready del admin API (readiness de /readyz).
func (c *Client) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/health/ready", nil)
	if err != nil {
		return upstream.NewUnavailable(serviceName, "GET ready", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, "GET ready", nil)
}

// ---- transporte ----

func (c *Client) endpoint(flow Flow, challenge, action string) string {
	u := c.base + "/oauth2/auth/requests/" + string(flow) + "/" + url.PathEscape(challenge)
	if action != "" {
		u += "/" + action
	}
	return u
}

func (c *Client) fetch(ctx context.Context, flow Flow, challenge string, out any) error {
	if strings.TrimSpace(challenge) == "" {
		return ErrMissingChallenge
	}
	op := "GET " + string(flow)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(flow, challenge, ""), nil)
	if err != nil {
		return upstream.NewUnavailable(serviceName, op, err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, op, out)
}

func (c *Client) put(ctx context.Context, flow Flow, action, challenge string, body any) (*Completed, error) {
	if strings.TrimSpace(challenge) == "" {
		return nil, ErrMissingChallenge
	}
	op := "PUT " + string(flow) + " " + action

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("hydra: encode %s body: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint(flow, challenge, action), rdr)
	if err != nil {
		return nil, upstream.NewUnavailable(serviceName, op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var out Completed
	if err := c.do(req, op, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return upstream.NewUnavailable(serviceName, op, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return upstream.NewUnavailable(serviceName, op, err)
	}

	if !upstream.InRange(resp.StatusCode) {
		ue := upstream.NewRejected(serviceName, op, resp.StatusCode, b)
		switch resp.StatusCode {
		case http.StatusNotFound:
			ue.Err = ErrChallengeNotFound
		case http.StatusConflict, http.StatusGone:
			ue.Err = ErrChallengeExpired
		}
		return ue
	}

	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &upstream.Error{
			Service: serviceName,
			Op:      op,
			Kind:    upstream.Rejected,
			Status:  resp.StatusCode,
			Message: "malformed response from authorization server",
			Err:     err,
		}
	}
	return nil
}
