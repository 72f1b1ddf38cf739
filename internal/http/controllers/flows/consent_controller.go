package flows

import (
	"net/http"

	dto "github.com/datacentricdesign/dcd-auth/internal/http/dto/flows"
	"github.com/datacentricdesign/dcd-auth/internal/http/helpers"
)

// ConsentController maneja /consent.
type ConsentController struct {
	flow ConsentFlow
	out  *helpers.Responder
}

func NewConsentController(f ConsentFlow, out *helpers.Responder) *ConsentController {
	return &ConsentController{flow: f, out: out}
}

// Show maneja GET /consent?consent_challenge=...
func (c *ConsentController) Show(w http.ResponseWriter, r *http.Request) {
	r = helpers.Scoped(r, "ConsentController.Show")
	out, err := c.flow.StartConsent(r.Context(), dto.QueryChallenge(r, "consent_challenge"))
	c.out.Outcome(w, r, out, err)
}

// Submit maneja POST /consent
func (c *ConsentController) Submit(w http.ResponseWriter, r *http.Request) {
	r = helpers.Scoped(r, "ConsentController.Submit")

	var req dto.ConsentRequest
	if err := dto.Bind(w, r, &req); err != nil {
		c.out.Error(w, r, err)
		return
	}

	out, err := c.flow.SubmitConsent(r.Context(), req.Submission())
	c.out.Outcome(w, r, out, err)
}
