package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/datacentricdesign/dcd-auth/internal/flow"
	"github.com/datacentricdesign/dcd-auth/internal/hydra"
	"github.com/datacentricdesign/dcd-auth/internal/upstream"
)

// errorResponse controla exactamente qué campos se envían al cliente.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// FromError traduce cualquier error de las capas inferiores a AppError.
// Lo que no se reconoce es un 500 genérico que conserva la causa.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	if ve, ok := flow.AsValidation(err); ok {
		return ErrValidationFailed.WithDetail(ve.Message).WithCause(err)
	}
	if stderrors.Is(err, hydra.ErrMissingChallenge) {
		return ErrValidationFailed.WithDetail("missing challenge").WithCause(err)
	}

	if ue, ok := upstream.As(err); ok {
		switch ue.Kind {
		case upstream.Unavailable:
			return ErrUpstreamUnavailable.WithCause(err)
		case upstream.Rejected:
			detail := ue.Message
			switch {
			case stderrors.Is(err, hydra.ErrChallengeNotFound), stderrors.Is(err, hydra.ErrChallengeExpired):
				detail = "This request has expired or was already completed. Please start again from the application."
			case ue.Service != "hydra":
				// los mensajes del API de personas no se muestran
				detail = ""
			}
			return ErrUpstreamRejected.WithDetail(detail).WithCause(err)
		}
	}

	return ErrInternalServerError.WithCause(err)
}

// WriteError escribe el error como JSON (clientes que piden JSON).
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)
	if appErr == nil {
		appErr = ErrInternalServerError
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	})
}
