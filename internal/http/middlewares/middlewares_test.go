package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacentricdesign/dcd-auth/internal/rate"
)

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestChain_Order(t *testing.T) {
	var seen []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(okHandler), mw("a"), nil, mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestRequestID(t *testing.T) {
	var got string
	h := WithRequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", got)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", maxRequestIDLen+1))
	h.ServeHTTP(rec, req)
	assert.Len(t, got, 36) // uuid nuevo
	assert.Equal(t, got, rec.Header().Get("X-Request-ID"))
}

func TestCSRF_IssuesCookieOnGet(t *testing.T) {
	var tok string
	h := WithCSRF(CSRFConfig{Path: "/auth"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok = GetCSRFToken(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/signin", nil))

	require.NotEmpty(t, tok)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "_csrf", cookies[0].Name)
	assert.Equal(t, tok, cookies[0].Value)
	assert.Equal(t, "/auth", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
}

func TestCSRF_Post(t *testing.T) {
	h := WithCSRF(CSRFConfig{})(http.HandlerFunc(okHandler))

	post := func(cookie, field, header string) int {
		form := url.Values{"_csrf": {field}}
		req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "_csrf", Value: cookie})
		}
		if header != "" {
			req.Header.Set("X-CSRF-Token", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("tok", "tok", ""))
	assert.Equal(t, http.StatusOK, post("tok", "", "tok"))
	assert.Equal(t, http.StatusForbidden, post("tok", "other", ""))
	assert.Equal(t, http.StatusForbidden, post("", "", ""))
	assert.Equal(t, http.StatusForbidden, post("", "tok", ""))
}

type stubLimiter struct {
	res rate.Result
	err error
	key string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (rate.Result, error) {
	s.key = key
	return s.res, s.err
}

func TestRateLimit(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		l := &stubLimiter{res: rate.Result{Allowed: true, Remaining: 4, WindowTTL: time.Minute}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		WithRateLimit(RateLimitConfig{Limiter: l})(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
		assert.Equal(t, "10.0.0.1|/auth/signin", l.key)
	})

	t.Run("limited", func(t *testing.T) {
		l := &stubLimiter{res: rate.Result{Allowed: false, RetryAfter: 30 * time.Second}}
		limited := 0
		rec := httptest.NewRecorder()
		WithRateLimit(RateLimitConfig{Limiter: l, OnLimited: func(*http.Request) { limited++ }})(http.HandlerFunc(okHandler)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signin", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "30", rec.Header().Get("Retry-After"))
		assert.Equal(t, 1, limited)
	})

	t.Run("limiter error fails open", func(t *testing.T) {
		l := &stubLimiter{err: errors.New("redis down")}
		rec := httptest.NewRecorder()
		WithRateLimit(RateLimitConfig{Limiter: l})(http.HandlerFunc(okHandler)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signin", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRecover(t *testing.T) {
	var captured error
	h := WithRecover(func(w http.ResponseWriter, _ *http.Request, err error) {
		captured = err
		w.WriteHeader(http.StatusInternalServerError)
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Error(t, captured)
	assert.Contains(t, captured.Error(), "panic: boom")
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	WithSecurityHeaders()(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, pageCSP, rec.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

func TestCSRF_FormBodyOverLimit(t *testing.T) {
	var captured error
	reached := false
	h := WithCSRF(CSRFConfig{
		MaxBodyBytes: 1024,
		OnError: func(w http.ResponseWriter, _ *http.Request, err error) {
			captured = err
			w.WriteHeader(http.StatusBadRequest)
		},
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reached = true }))

	form := url.Values{"_csrf": {"tok"}, "password": {strings.Repeat("x", 4096)}}
	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "tok"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, reached)
	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, captured, &tooLarge)
}
