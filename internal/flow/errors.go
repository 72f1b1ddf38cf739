package flow

import (
	"errors"
	"fmt"
)

// ValidationError: input inválido detectado localmente; no se contactó a
// ningún servicio externo. Page (si no es nil) es el formulario a re-renderizar.
type ValidationError struct {
	Flow    string
	Message string
	Page    Page
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Flow, e.Message)
}

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

const (
	msgMissingChallenge   = "The request is missing its challenge. Please start again from the application."
	msgMissingCredentials = "Please enter your email and password"
	msgMissingSignupField = "Please fill in your email, name and password"
	msgConsentExpired     = "This consent form has expired. Please start again from the application."
)
