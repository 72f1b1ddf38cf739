package helpers

import (
	"mime"
	"net/http"
	"strings"

	"github.com/datacentricdesign/dcd-auth/internal/observability/logger"
)

// WantsJSON: el cliente pidió JSON explícitamente (Accept) o envió JSON sin
// preferencia de respuesta. Navegadores siempre mandan text/html.
func WantsJSON(r *http.Request) bool {
	accept := strings.ToLower(r.Header.Get("Accept"))
	if strings.Contains(accept, "text/html") {
		return false
	}
	if strings.Contains(accept, "application/json") {
		return true
	}
	if accept == "" || strings.Contains(accept, "*/*") {
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		return ct == "application/json"
	}
	return false
}

// Scoped devuelve el request con un logger que lleva layer/op.
func Scoped(r *http.Request, op string) *http.Request {
	return r.WithContext(logger.With(r.Context(), logger.Layer("controller"), logger.Op(op)))
}
