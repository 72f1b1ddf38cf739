package flow

import (
	"context"
	"fmt"

	"github.com/datacentricdesign/dcd-auth/internal/hydra"
)

// StartConsent: GET /consent. skip o cliente first-party → accept con todos
// los scopes pedidos. Si no, emite la capability y arma la pantalla.
func (c *Controller) StartConsent(ctx context.Context, challenge string) (Outcome, error) {
	if blank(challenge) {
		return Outcome{}, missingChallenge(FlowConsent, nil)
	}

	info, err := c.hydra.GetConsentRequest(ctx, challenge)
	if err != nil {
		return Outcome{}, err
	}
	requested := NormalizeScopes(info.RequestedScope)

	if info.Skip || c.firstParty.IsFirstParty(info.Client.ClientID) {
		done, err := c.hydra.AcceptConsentRequest(ctx, challenge, hydra.AcceptConsent{
			GrantScope: requested,
			Session:    hydra.ConsentSession{IDToken: c.claims.Build(requested, info.Subject)},
		})
		if err != nil {
			return Outcome{}, err
		}
		c.record(FlowConsent, DecisionSkip)
		return redirect(done), nil
	}

	token, _, err := c.caps.Issue(challenge, info.Subject)
	if err != nil {
		return Outcome{}, fmt.Errorf("consent: issue capability: %w", err)
	}

	c.record(FlowConsent, DecisionRender)
	return Outcome{Page: &ConsentPage{
		Challenge:    challenge,
		ConsentToken: token,
		User:         c.subjects.Username(info.Subject),
		Client:       info.Client,
		Scopes:       c.scopes.DescribeAll(requested),
	}}, nil
}

// SubmitConsent: POST /consent. "Deny access" rechaza sin mirar la
// capability; aceptar exige una capability válida para este challenge, y el
// subject de los claims sale de ella.
func (c *Controller) SubmitConsent(ctx context.Context, in ConsentSubmission) (Outcome, error) {
	if blank(in.Challenge) {
		return Outcome{}, missingChallenge(FlowConsent, nil)
	}

	if in.Denied() {
		done, err := c.hydra.RejectConsentRequest(ctx, in.Challenge, hydra.Reject{
			Error:            "access_denied",
			ErrorDescription: "The resource owner denied the request",
		})
		if err != nil {
			return Outcome{}, err
		}
		c.record(FlowConsent, DecisionReject)
		return redirect(done), nil
	}

	capability, err := c.caps.Verify(in.ConsentToken, in.Challenge)
	if err != nil {
		return Outcome{}, &ValidationError{Flow: FlowConsent, Message: msgConsentExpired}
	}

	grant := NormalizeScopes(in.GrantScope)
	done, err := c.hydra.AcceptConsentRequest(ctx, in.Challenge, hydra.AcceptConsent{
		GrantScope:  grant,
		Session:     hydra.ConsentSession{IDToken: c.claims.Build(grant, capability.Subject)},
		Remember:    in.Remember,
		RememberFor: c.rememberFor,
	})
	if err != nil {
		return Outcome{}, err
	}
	c.record(FlowConsent, DecisionAccept)
	return redirect(done), nil
}
