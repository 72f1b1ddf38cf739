package flows

import (
	"net/http"

	dto "github.com/datacentricdesign/dcd-auth/internal/http/dto/flows"
	"github.com/datacentricdesign/dcd-auth/internal/http/helpers"
)

// SignoutController maneja /signout. El GET siempre muestra la confirmación.
type SignoutController struct {
	flow LogoutFlow
	out  *helpers.Responder
}

func NewSignoutController(f LogoutFlow, out *helpers.Responder) *SignoutController {
	return &SignoutController{flow: f, out: out}
}

// Show maneja GET /signout?logout_challenge=...
func (c *SignoutController) Show(w http.ResponseWriter, r *http.Request) {
	r = helpers.Scoped(r, "SignoutController.Show")
	out, err := c.flow.StartLogout(r.Context(), dto.QueryChallenge(r, "logout_challenge"))
	c.out.Outcome(w, r, out, err)
}

// Submit maneja POST /signout
func (c *SignoutController) Submit(w http.ResponseWriter, r *http.Request) {
	r = helpers.Scoped(r, "SignoutController.Submit")

	var req dto.SignoutRequest
	if err := dto.Bind(w, r, &req); err != nil {
		c.out.Error(w, r, err)
		return
	}

	out, err := c.flow.SubmitLogout(r.Context(), req.Submission())
	c.out.Outcome(w, r, out, err)
}
