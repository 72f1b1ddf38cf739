// Package flows contiene los DTOs de los formularios de signin, signup,
// consent y signout. Cada request acepta form-urlencoded o JSON.
package flows

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	httperrors "github.com/datacentricdesign/dcd-auth/internal/http/errors"
)

// MaxBodySize limita el body de cualquier formulario.
const MaxBodySize = 64 * 1024 // 64KB

// binder lo implementa cada request.
type binder interface {
	// bindForm carga los campos desde r.Form (query + body).
	bindForm(v url.Values)
	// bindQuery completa sólo el challenge desde la query (requests JSON).
	bindQuery(q url.Values)
}

// Bind decodifica el body según Content-Type.
func Bind(w http.ResponseWriter, r *http.Request, dst binder) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return httperrors.ErrBadRequest.WithDetail("invalid JSON body").WithCause(err)
		}
		dst.bindQuery(r.URL.Query())

	case "multipart/form-data":
		if err := r.ParseMultipartForm(MaxBodySize); err != nil {
			return httperrors.ErrBadRequest.WithDetail("invalid form").WithCause(err)
		}
		dst.bindForm(r.Form)

	case "application/x-www-form-urlencoded", "":
		if err := r.ParseForm(); err != nil {
			return httperrors.ErrBadRequest.WithDetail("invalid form").WithCause(err)
		}
		dst.bindForm(r.Form)

	default:
		return httperrors.ErrBadRequest.WithDetail("unsupported content type")
	}
	return nil
}

// QueryChallenge lee el challenge de un GET: primero el parámetro propio
// del flujo (login_challenge, consent_challenge, logout_challenge), después
// "challenge".
func QueryChallenge(r *http.Request, param string) string {
	q := r.URL.Query()
	return firstNonBlank(q.Get(param), q.Get("challenge"))
}

func firstNonBlank(vs ...string) string {
	for _, v := range vs {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Flag es un booleano laxo: true, "1", "on", "yes" (checkbox HTML) o
// cualquier string no vacío distinto de "0"/"false"/"off"/"no".
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(t)
	case float64:
		*f = t != 0
	case string:
		*f = parseFlag(t)
	default:
		return errors.New("expected boolean")
	}
	return nil
}

func parseFlag(s string) Flag {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}
