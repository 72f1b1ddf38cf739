// Package upstream clasifica los errores de los servicios externos que
// consume dcd-auth (el admin API de Hydra y el API de personas).
package upstream

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind distingue un servicio inalcanzable de uno que respondió con error.
type Kind int

const (
	// Unavailable: falla de red, timeout o cancelación.
	Unavailable Kind = iota + 1
	// Rejected: el servicio respondió con un status fuera de [200,302].
	Rejected
)

func (k Kind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Error es el único tipo de error que devuelven los clientes externos.
type Error struct {
	Service string // "hydra" | "persons"
	Op      string // ej: "GET login", "POST /persons/{id}/check"
	Kind    Kind
	Status  int    // 0 si no hubo respuesta
	Message string // mensaje extraído del body (o genérico)
	Err     error  // causa
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Service)
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NewUnavailable envuelve una falla de transporte.
func NewUnavailable(service, op string, err error) *Error {
	msg := "service unavailable"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "request timed out"
	}
	return &Error{Service: service, Op: op, Kind: Unavailable, Message: msg, Err: err}
}

// NewRejected construye el error para una respuesta fuera de rango,
// extrayendo el mensaje del body cuando existe.
func NewRejected(service, op string, status int, body []byte) *Error {
	return &Error{
		Service: service,
		Op:      op,
		Kind:    Rejected,
		Status:  status,
		Message: MessageFromBody(body, fmt.Sprintf("%s returned status %d", service, status)),
	}
}

// MessageFromBody busca el mensaje de error en error.message, luego en
// error_description / error (string) / message. Si nada aplica devuelve fallback.
func MessageFromBody(body []byte, fallback string) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return fallback
	}
	for _, path := range []string{"error.message", "error_description", "message"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return v.Str
		}
	}
	if v := gjson.GetBytes(body, "error"); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
		return v.Str
	}
	return fallback
}

// InRange reporta si el status se considera éxito ([200,302]).
func InRange(status int) bool {
	return status >= 200 && status <= 302
}

// As extrae el *Error de la cadena.
func As(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

func IsUnavailable(err error) bool {
	ue, ok := As(err)
	return ok && ue.Kind == Unavailable
}

func IsRejected(err error) bool {
	ue, ok := As(err)
	return ok && ue.Kind == Rejected
}

// Status devuelve el status HTTP upstream o 0.
func Status(err error) int {
	if ue, ok := As(err); ok {
		return ue.Status
	}
	return 0
}
