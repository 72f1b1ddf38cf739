package middlewares

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	httperrors "github.com/datacentricdesign/dcd-auth/internal/http/errors"
	tokens "github.com/datacentricdesign/dcd-auth/internal/security/token"
)

// CSRFConfig configura el middleware CSRF.
type CSRFConfig struct {
	HeaderName string // Default: "X-CSRF-Token"
	CookieName string // Default: "_csrf"
	FieldName  string // Default: "_csrf"
	Path       string // Path de la cookie. Default: "/"
	Secure     bool

	// MaxBodyBytes acota el body de los métodos inseguros antes de leer el
	// campo oculto. Default: 64KB.
	MaxBodyBytes int64

	OnError ErrorWriter
}

const (
	csrfTokenBytes      = 32
	defaultMaxBodyBytes = 64 << 10
)

// WithCSRF implementa double-submit: la cookie lleva un token aleatorio que
// cada formulario repite en un campo oculto (o en el header para JSON).
//
//   - En todo request asegura la cookie y expone el token vía GetCSRFToken.
//   - En métodos inseguros exige que campo/header coincida con la cookie.
func WithCSRF(cfg CSRFConfig) Middleware {
	headerName := strings.TrimSpace(cfg.HeaderName)
	if headerName == "" {
		headerName = "X-CSRF-Token"
	}
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = "_csrf"
	}
	fieldName := strings.TrimSpace(cfg.FieldName)
	if fieldName == "" {
		fieldName = "_csrf"
	}
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	onError := cfg.OnError
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) { httperrors.WriteError(w, err) }
	}

	isUnsafe := func(m string) bool {
		switch strings.ToUpper(m) {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			return true
		default:
			return false
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookieVal string
			if ck, err := r.Cookie(cookieName); err == nil {
				cookieVal = strings.TrimSpace(ck.Value)
			}

			if isUnsafe(r.Method) {
				// el límite tiene que estar puesto antes del primer parseo:
				// después ParseForm no vuelve a leer el body
				r.Body = http.MaxBytesReader(w, r.Body, maxBody)
				submitted, err := submittedCSRF(r, headerName, fieldName, maxBody)
				if err != nil {
					onError(w, r, badForm(err))
					return
				}
				if !tokens.Equal(submitted, cookieVal) {
					onError(w, r, httperrors.ErrInvalidCSRFToken)
					return
				}
			}

			if cookieVal == "" {
				tok, err := tokens.GenerateOpaqueToken(csrfTokenBytes)
				if err != nil {
					onError(w, r, httperrors.ErrInternalServerError.WithCause(err))
					return
				}
				cookieVal = tok
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    tok,
					Path:     path,
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(setCSRFToken(r.Context(), cookieVal)))
		})
	}
}

// submittedCSRF lee el header o, en formularios, el campo oculto. Un body
// ilegible o por encima del límite es error.
func submittedCSRF(r *http.Request, headerName, fieldName string, maxBody int64) (string, error) {
	if v := strings.TrimSpace(r.Header.Get(headerName)); v != "" {
		return v, nil
	}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return "", err
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBody); err != nil {
			return "", err
		}
	default:
		return "", nil
	}
	return strings.TrimSpace(r.PostForm.Get(fieldName)), nil
}

func badForm(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return httperrors.ErrBadRequest.WithDetail("request body too large").WithCause(err)
	}
	return httperrors.ErrBadRequest.WithDetail("invalid form").WithCause(err)
}
