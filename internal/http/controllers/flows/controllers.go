// Package flows contiene los controllers de las páginas de login, signup,
// consent y signout. Cada controller sólo traduce HTTP ↔ flow: la lógica
// vive en internal/flow y la respuesta la escribe helpers.Responder.
package flows

import (
	"context"

	"github.com/datacentricdesign/dcd-auth/internal/flow"
	"github.com/datacentricdesign/dcd-auth/internal/http/helpers"
)

// LoginFlow es lo que necesitan signin y signup.
type LoginFlow interface {
	StartLogin(ctx context.Context, challenge string) (flow.Outcome, error)
	SubmitLogin(ctx context.Context, in flow.LoginSubmission) (flow.Outcome, error)
	StartSignup(ctx context.Context, challenge string) (flow.Outcome, error)
	SubmitSignup(ctx context.Context, in flow.SignupSubmission) (flow.Outcome, error)
}

type ConsentFlow interface {
	StartConsent(ctx context.Context, challenge string) (flow.Outcome, error)
	SubmitConsent(ctx context.Context, in flow.ConsentSubmission) (flow.Outcome, error)
}

type LogoutFlow interface {
	StartLogout(ctx context.Context, challenge string) (flow.Outcome, error)
	SubmitLogout(ctx context.Context, in flow.LogoutSubmission) (flow.Outcome, error)
}

// Flows lo implementa *flow.Controller.
type Flows interface {
	LoginFlow
	ConsentFlow
	LogoutFlow
}

// Controllers agrupa todos los controllers de flujos.
type Controllers struct {
	Signin  *SigninController
	Signup  *SignupController
	Consent *ConsentController
	Signout *SignoutController
}

// NewControllers crea el agregador de controllers.
func NewControllers(f Flows, out *helpers.Responder) *Controllers {
	return &Controllers{
		Signin:  NewSigninController(f, out),
		Signup:  NewSignupController(f, out),
		Consent: NewConsentController(f, out),
		Signout: NewSignoutController(f, out),
	}
}
