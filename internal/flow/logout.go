package flow

import (
	"context"
)

// StartLogout: GET /signout. Nunca hay skip: siempre se pregunta.
func (c *Controller) StartLogout(ctx context.Context, challenge string) (Outcome, error) {
	if blank(challenge) {
		return Outcome{}, missingChallenge(FlowLogout, nil)
	}

	info, err := c.hydra.GetLogoutRequest(ctx, challenge)
	if err != nil {
		return Outcome{}, err
	}

	c.record(FlowLogout, DecisionRender)
	return Outcome{Page: &LogoutPage{Challenge: challenge, User: c.subjects.Username(info.Subject)}}, nil
}

// SubmitLogout: POST /signout. "No" rechaza y manda al sitio de fallback
// (un reject de logout no trae URL útil para continuar).
func (c *Controller) SubmitLogout(ctx context.Context, in LogoutSubmission) (Outcome, error) {
	if blank(in.Challenge) {
		return Outcome{}, missingChallenge(FlowLogout, nil)
	}

	if in.Declined() {
		if _, err := c.hydra.RejectLogoutRequest(ctx, in.Challenge); err != nil {
			return Outcome{}, err
		}
		c.record(FlowLogout, DecisionReject)
		return Outcome{RedirectTo: c.logoutFallback}, nil
	}

	done, err := c.hydra.AcceptLogoutRequest(ctx, in.Challenge)
	if err != nil {
		return Outcome{}, err
	}
	c.record(FlowLogout, DecisionAccept)
	return redirect(done), nil
}
