package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/datacentricdesign/dcd-auth/internal/flow"
	httperrors "github.com/datacentricdesign/dcd-auth/internal/http/errors"
	"github.com/datacentricdesign/dcd-auth/internal/http/views"
	"github.com/datacentricdesign/dcd-auth/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponder(t *testing.T) *Responder {
	t.Helper()
	v, err := views.New()
	require.NoError(t, err)
	return NewResponder(v, "/auth")
}

func TestOutcomeRedirect(t *testing.T) {
	rp := newResponder(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)

	rp.Outcome(rec, req, flow.Outcome{RedirectTo: "https://hydra.example/next"}, nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://hydra.example/next", rec.Header().Get("Location"))
}

func TestOutcomeRedirectJSON(t *testing.T) {
	rp := newResponder(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.Header.Set("Accept", "application/json")

	rp.Outcome(rec, req, flow.Outcome{RedirectTo: "https://hydra.example/next"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"redirect_to":"https://hydra.example/next"}`, rec.Body.String())
}

func TestOutcomeEmptyRedirect(t *testing.T) {
	rp := newResponder(t)
	rec := httptest.NewRecorder()
	rp.Outcome(rec, httptest.NewRequest(http.MethodGet, "/auth/signin", nil), flow.Outcome{}, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestOutcomePageStatus(t *testing.T) {
	rp := newResponder(t)

	rec := httptest.NewRecorder()
	rp.Outcome(rec, httptest.NewRequest(http.MethodGet, "/auth/signin", nil),
		flow.Outcome{Page: &flow.SigninPage{Challenge: "c"}}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	rp.Outcome(rec, httptest.NewRequest(http.MethodPost, "/auth/signin", nil),
		flow.Outcome{Page: &flow.SigninPage{Challenge: "c", Error: flow.MsgInvalidCredentials}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "The email / password combination is not correct")
}

func TestOutcomeValidationError(t *testing.T) {
	rp := newResponder(t)

	rec := httptest.NewRecorder()
	err := &flow.ValidationError{Flow: flow.FlowLogin, Message: "missing", Page: &flow.SigninPage{Error: "missing"}}
	rp.Outcome(rec, httptest.NewRequest(http.MethodPost, "/auth/signin", nil), flow.Outcome{}, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/auth/signin"`)

	// sin formulario → página de error genérica
	rec = httptest.NewRecorder()
	err = &flow.ValidationError{Flow: flow.FlowConsent, Message: "expired"}
	rp.Outcome(rec, httptest.NewRequest(http.MethodPost, "/auth/consent", nil), flow.Outcome{}, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestErrorPages(t *testing.T) {
	rp := newResponder(t)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unavailable", upstream.NewUnavailable("hydra", "GET login", errors.New("dial tcp: refused")), http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE"},
		{"rejected", upstream.NewRejected("hydra", "PUT login accept", http.StatusBadRequest, []byte(`{"error":{"message":"bad subject"}}`)), http.StatusBadGateway, "UPSTREAM_REJECTED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"not found", httperrors.ErrRouteNotFound, http.StatusNotFound, "ROUTE_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rp.Error(rec, httptest.NewRequest(http.MethodGet, "/auth/x", nil), tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), tt.code)
			assert.NotContains(t, rec.Body.String(), "dial tcp")
		})
	}
}

func TestErrorJSON(t *testing.T) {
	rp := newResponder(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/x", nil)
	req.Header.Set("Accept", "application/json")

	rp.Error(rec, req, upstream.NewRejected("hydra", "GET consent", http.StatusBadRequest, []byte(`{"error":{"message":"bad challenge"}}`)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UPSTREAM_REJECTED", body["code"])
	assert.Equal(t, "bad challenge", body["detail"])
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		accept, contentType string
		want                bool
	}{
		{"text/html,application/xhtml+xml,*/*;q=0.8", "", false},
		{"application/json", "", true},
		{"", "application/json", true},
		{"*/*", "application/json; charset=utf-8", true},
		{"", "application/x-www-form-urlencoded", false},
		{"", "", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		if tt.accept != "" {
			r.Header.Set("Accept", tt.accept)
		}
		if tt.contentType != "" {
			r.Header.Set("Content-Type", tt.contentType)
		}
		assert.Equal(t, tt.want, WantsJSON(r), "accept=%q ct=%q", tt.accept, tt.contentType)
	}
}
