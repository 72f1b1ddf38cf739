package flows

import (
	"net/url"

	"github.com/datacentricdesign/dcd-auth/internal/flow"
)

// SigninRequest: POST /signin
type SigninRequest struct {
	Challenge      string `json:"challenge"`
	LoginChallenge string `json:"login_challenge,omitempty"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Remember       Flag   `json:"remember"`
}

func (r *SigninRequest) bindForm(v url.Values) {
	r.Challenge = v.Get("challenge")
	r.LoginChallenge = v.Get("login_challenge")
	r.Email = v.Get("email")
	r.Password = v.Get("password")
	r.Remember = parseFlag(v.Get("remember"))
}

func (r *SigninRequest) bindQuery(q url.Values) {
	if r.LoginChallenge == "" {
		r.LoginChallenge = q.Get("login_challenge")
	}
}

func (r SigninRequest) Submission() flow.LoginSubmission {
	return flow.LoginSubmission{
		Challenge: firstNonBlank(r.Challenge, r.LoginChallenge),
		Email:     r.Email,
		Password:  r.Password,
		Remember:  bool(r.Remember),
	}
}

// SignupRequest: POST /signup
type SignupRequest struct {
	Challenge      string `json:"challenge"`
	LoginChallenge string `json:"login_challenge,omitempty"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Password       string `json:"password"`
	Remember       Flag   `json:"remember"`
}

func (r *SignupRequest) bindForm(v url.Values) {
	r.Challenge = v.Get("challenge")
	r.LoginChallenge = v.Get("login_challenge")
	r.Email = v.Get("email")
	r.Name = v.Get("name")
	r.Password = v.Get("password")
	r.Remember = parseFlag(v.Get("remember"))
}

func (r *SignupRequest) bindQuery(q url.Values) {
	if r.LoginChallenge == "" {
		r.LoginChallenge = q.Get("login_challenge")
	}
}

func (r SignupRequest) Submission() flow.SignupSubmission {
	return flow.SignupSubmission{
		Challenge: firstNonBlank(r.Challenge, r.LoginChallenge),
		Email:     r.Email,
		Name:      r.Name,
		Password:  r.Password,
		Remember:  bool(r.Remember),
	}
}

// ConsentRequest: POST /consent. grant_scope puede llegar como string o
// array (JSON) o como campo repetido (form).
type ConsentRequest struct {
	Challenge        string         `json:"challenge"`
	ConsentChallenge string         `json:"consent_challenge,omitempty"`
	ConsentToken     string         `json:"consent_token"`
	Submit           string         `json:"submit"`
	GrantScope       flow.ScopeList `json:"grant_scope"`
	Remember         Flag           `json:"remember"`
}

func (r *ConsentRequest) bindForm(v url.Values) {
	r.Challenge = v.Get("challenge")
	r.ConsentChallenge = v.Get("consent_challenge")
	r.ConsentToken = v.Get("consent_token")
	r.Submit = v.Get("submit")
	r.Remember = parseFlag(v.Get("remember"))

	scopes := v["grant_scope"]
	if len(scopes) == 0 {
		scopes = v["grant_scope[]"]
	}
	r.GrantScope = flow.NormalizeScopes(scopes)
}

func (r *ConsentRequest) bindQuery(q url.Values) {
	if r.ConsentChallenge == "" {
		r.ConsentChallenge = q.Get("consent_challenge")
	}
}

func (r ConsentRequest) Submission() flow.ConsentSubmission {
	return flow.ConsentSubmission{
		Challenge:    firstNonBlank(r.Challenge, r.ConsentChallenge),
		ConsentToken: r.ConsentToken,
		Submit:       r.Submit,
		GrantScope:   flow.NormalizeScopes(r.GrantScope),
		Remember:     bool(r.Remember),
	}
}

// SignoutRequest: POST /signout
type SignoutRequest struct {
	Challenge       string `json:"challenge"`
	LogoutChallenge string `json:"logout_challenge,omitempty"`
	Submit          string `json:"submit"`
}

func (r *SignoutRequest) bindForm(v url.Values) {
	r.Challenge = v.Get("challenge")
	r.LogoutChallenge = v.Get("logout_challenge")
	r.Submit = v.Get("submit")
}

func (r *SignoutRequest) bindQuery(q url.Values) {
	if r.LogoutChallenge == "" {
		r.LogoutChallenge = q.Get("logout_challenge")
	}
}

func (r SignoutRequest) Submission() flow.LogoutSubmission {
	return flow.LogoutSubmission{
		Challenge: firstNonBlank(r.Challenge, r.LogoutChallenge),
		Submit:    r.Submit,
	}
}
