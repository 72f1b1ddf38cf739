package flow

import (
	"context"

	"github.com/datacentricdesign/dcd-auth/internal/upstream"
)

const msgSignupFailed = "The account could not be created"

// SubmitSignup: POST /signup. Crea la persona y acepta el login con el
// personId devuelto. Las fallas del API de personas vuelven al formulario
// con el mensaje del servicio.
func (c *Controller) SubmitSignup(ctx context.Context, in SignupSubmission) (Outcome, error) {
	form := &SignupPage{Challenge: in.Challenge, Email: in.Email, Name: in.Name}
	if blank(in.Challenge) {
		form.Error = msgMissingChallenge
		return Outcome{}, missingChallenge(FlowSignup, form)
	}
	if blank(in.Email) || blank(in.Name) || in.Password == "" {
		form.Error = msgMissingSignupField
		return Outcome{}, &ValidationError{Flow: FlowSignup, Message: msgMissingSignupField, Page: form}
	}

	personID, err := c.createPerson(ctx, in)
	if err != nil {
		ue, ok := upstream.As(err)
		if !ok {
			return Outcome{}, err
		}
		form.Error = ue.Message
		if form.Error == "" {
			form.Error = msgSignupFailed
		}
		c.record(FlowSignup, DecisionRender)
		return Outcome{Page: form}, nil
	}

	return c.acceptLogin(ctx, FlowSignup, in.Challenge, personID, in.Remember)
}

func (c *Controller) createPerson(ctx context.Context, in SignupSubmission) (string, error) {
	if err := c.persons.RefreshCredential(ctx); err != nil {
		return "", err
	}
	return c.persons.CreatePerson(ctx, in.Email, in.Name, in.Password)
}
