// Package errors es el catálogo de errores de la capa HTTP. Es el único
// lugar donde un error se traduce a status + mensaje visible.
package errors

import (
	"fmt"
	"net/http"
)

// AppError define la estructura estándar para errores de la aplicación
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"` // No se serializa, usado para el header
	Err        error  `json:"-"` // Error original (causa), sólo para logs
}

// Error implementa la interfaz error
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap permite acceder al error original
func (e *AppError) Unwrap() error {
	return e.Err
}

// New crea un nuevo AppError
func New(status int, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// Wrap crea un AppError envolviendo un error existente
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
		Err:        err,
	}
}

// WithDetail devuelve una COPIA con el detalle (no muta las variables base)
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause devuelve una COPIA con la causa
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// =================================================================================
// ERRORES PREDEFINIDOS
// =================================================================================

var (
	// 400
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "The request is invalid.")
	ErrBadRequest       = New(http.StatusBadRequest, "BAD_REQUEST", "The request could not be read.")

	// 403
	ErrInvalidCSRFToken = New(http.StatusForbidden, "INVALID_CSRF_TOKEN", "Your session form has expired. Please go back and try again.")

	// 404 / 405
	ErrRouteNotFound    = New(http.StatusNotFound, "ROUTE_NOT_FOUND", "The page you are looking for does not exist.")
	ErrMethodNotAllowed = New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed.")

	// 429
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many attempts. Please wait a moment and try again.")

	// 5xx
	ErrInternalServerError = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong on our side.")
	ErrUpstreamUnavailable = New(http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", "A service we depend on is not reachable right now. Please try again later.")
	ErrUpstreamRejected    = New(http.StatusBadGateway, "UPSTREAM_REJECTED", "The authorization server could not complete your request.")
)
