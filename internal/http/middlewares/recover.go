package middlewares

import (
	"fmt"
	"net/http"

	httperrors "github.com/datacentricdesign/dcd-auth/internal/http/errors"
	"github.com/datacentricdesign/dcd-auth/internal/observability/logger"
)

// WithRecover captura panics y responde 500 en lugar de crashear.
func WithRecover(onError ErrorWriter) Middleware {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) { httperrors.WriteError(w, err) }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.From(r.Context()).Error("panic recovered",
						logger.Op("recover"),
						logger.Any("panic", rec),
					)
					onError(w, r, httperrors.ErrInternalServerError.WithCause(fmt.Errorf("panic: %v", rec)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
