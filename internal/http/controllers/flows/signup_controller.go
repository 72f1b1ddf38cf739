package flows

import (
	"net/http"

	dto "github.com/datacentricdesign/dcd-auth/internal/http/dto/flows"
	"github.com/datacentricdesign/dcd-auth/internal/http/helpers"
)

// SignupController maneja /signup.
type SignupController struct {
	flow LoginFlow
	out  *helpers.Responder
}

func NewSignupController(f LoginFlow, out *helpers.Responder) *SignupController {
	return &SignupController{flow: f, out: out}
}

// Show maneja GET /signup?login_challenge=...
func (c *SignupController) Show(w http.ResponseWriter, r *http.Request) {
	r = helpers.Scoped(r, "SignupController.Show")
	out, err := c.flow.StartSignup(r.Context(), dto.QueryChallenge(r, "login_challenge"))
	c.out.Outcome(w, r, out, err)
}

// Submit maneja POST /signup
func (c *SignupController) Submit(w http.ResponseWriter, r *http.Request) {
	r = helpers.Scoped(r, "SignupController.Submit")

	var req dto.SignupRequest
	if err := dto.Bind(w, r, &req); err != nil {
		c.out.Error(w, r, err)
		return
	}

	out, err := c.flow.SubmitSignup(r.Context(), req.Submission())
	c.out.Outcome(w, r, out, err)
}
