package flow

import (
	"context"

	"github.com/datacentricdesign/dcd-auth/internal/hydra"
	"github.com/datacentricdesign/dcd-auth/internal/upstream"
)

// StartLogin: GET /signin. skip → accept inmediato con el subject de Hydra.
func (c *Controller) StartLogin(ctx context.Context, challenge string) (Outcome, error) {
	return c.startLogin(ctx, FlowLogin, challenge, &SigninPage{Challenge: challenge})
}

// StartSignup: GET /signup. Igual que login pero con el formulario de alta.
func (c *Controller) StartSignup(ctx context.Context, challenge string) (Outcome, error) {
	return c.startLogin(ctx, FlowSignup, challenge, &SignupPage{Challenge: challenge})
}

func (c *Controller) startLogin(ctx context.Context, flow, challenge string, form Page) (Outcome, error) {
	if blank(challenge) {
		return Outcome{}, missingChallenge(flow, withError(form, msgMissingChallenge))
	}

	info, err := c.hydra.GetLoginRequest(ctx, challenge)
	if err != nil {
		return Outcome{}, err
	}

	if info.Skip {
		done, err := c.hydra.AcceptLoginRequest(ctx, challenge, hydra.AcceptLogin{Subject: info.Subject})
		if err != nil {
			return Outcome{}, err
		}
		c.record(flow, DecisionSkip)
		return redirect(done), nil
	}

	c.record(flow, DecisionRender)
	return Outcome{Page: form}, nil
}

// SubmitLogin: POST /signin. Credenciales inválidas (o rechazadas por el API
// de personas) re-muestran el formulario; sólo la falla de red es fatal.
func (c *Controller) SubmitLogin(ctx context.Context, in LoginSubmission) (Outcome, error) {
	form := &SigninPage{Challenge: in.Challenge, Email: in.Email}
	if blank(in.Challenge) {
		form.Error = msgMissingChallenge
		return Outcome{}, missingChallenge(FlowLogin, form)
	}
	if blank(in.Email) || in.Password == "" {
		form.Error = msgMissingCredentials
		return Outcome{}, &ValidationError{Flow: FlowLogin, Message: msgMissingCredentials, Page: form}
	}

	valid, err := c.checkPassword(ctx, in.Email, in.Password)
	if err != nil {
		if !upstream.IsRejected(err) {
			return Outcome{}, err
		}
		valid = false
	}
	if !valid {
		c.record(FlowLogin, DecisionInvalidCredentials)
		form.Error = MsgInvalidCredentials
		return Outcome{Page: form}, nil
	}

	return c.acceptLogin(ctx, FlowLogin, in.Challenge, in.Email, in.Remember)
}

func (c *Controller) checkPassword(ctx context.Context, email, password string) (bool, error) {
	if err := c.persons.RefreshCredential(ctx); err != nil {
		return false, err
	}
	return c.persons.CheckPassword(ctx, email, password)
}

func (c *Controller) acceptLogin(ctx context.Context, flow, challenge, subject string, remember bool) (Outcome, error) {
	done, err := c.hydra.AcceptLoginRequest(ctx, challenge, hydra.AcceptLogin{
		Subject:     c.subjects.Normalize(subject),
		Remember:    remember,
		RememberFor: c.rememberFor,
	})
	if err != nil {
		return Outcome{}, err
	}
	c.record(flow, DecisionAccept)
	return redirect(done), nil
}

func withError(p Page, msg string) Page {
	switch f := p.(type) {
	case *SigninPage:
		f.Error = msg
	case *SignupPage:
		f.Error = msg
	}
	return p
}
