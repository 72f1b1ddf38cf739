package flows

import (
	"net/http"

	dto "github.com/datacentricdesign/dcd-auth/internal/http/dto/flows"
	"github.com/datacentricdesign/dcd-auth/internal/http/helpers"
)

// SigninController maneja /signin.
type SigninController struct {
	flow LoginFlow
	out  *helpers.Responder
}

func NewSigninController(f LoginFlow, out *helpers.Responder) *SigninController {
	return &SigninController{flow: f, out: out}
}

// Show maneja GET /signin?login_challenge=...
func (c *SigninController) Show(w http.ResponseWriter, r *http.Request) {
	r = helpers.Scoped(r, "SigninController.Show")
	out, err := c.flow.StartLogin(r.Context(), dto.QueryChallenge(r, "login_challenge"))
	c.out.Outcome(w, r, out, err)
}

// Submit maneja POST /signin
func (c *SigninController) Submit(w http.ResponseWriter, r *http.Request) {
	r = helpers.Scoped(r, "SigninController.Submit")

	var req dto.SigninRequest
	if err := dto.Bind(w, r, &req); err != nil {
		c.out.Error(w, r, err)
		return
	}

	out, err := c.flow.SubmitLogin(r.Context(), req.Submission())
	c.out.Outcome(w, r, out, err)
}
