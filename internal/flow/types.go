package flow

import (
	"encoding/json"
	"fmt"

	"github.com/datacentricdesign/dcd-auth/internal/hydra"
	"github.com/datacentricdesign/dcd-auth/internal/scopes"
)

// Nombres de flujo (labels de métricas y logs).
const (
	FlowLogin   = "login"
	FlowSignup  = "signup"
	FlowConsent = "consent"
	FlowLogout  = "logout"
)

// Decisiones reportadas al Recorder.
const (
	DecisionAccept             = "accept"
	DecisionReject             = "reject"
	DecisionSkip               = "skip"
	DecisionRender             = "render"
	DecisionInvalidCredentials = "invalid_credentials"
)

const (
	// valores de los botones de los formularios
	SubmitDenyAccess = "Deny access"
	SubmitLogoutNo   = "No"

	MsgInvalidCredentials = "The email / password combination is not correct"
)

// Outcome es el resultado de cualquier operación: o un redirect o una página.
type Outcome struct {
	RedirectTo string
	Page       Page
}

func (o Outcome) IsRedirect() bool { return o.Page == nil }

func redirect(c *hydra.Completed) Outcome {
	if c == nil {
		return Outcome{}
	}
	return Outcome{RedirectTo: c.RedirectTo}
}

// Page es un modelo de vista. La capa HTTP elige el template por nombre.
type Page interface {
	Template() string
	ErrorMessage() string
}

type SigninPage struct {
	Challenge string `json:"challenge"`
	Email     string `json:"email,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (p *SigninPage) Template() string     { return "signin" }
func (p *SigninPage) ErrorMessage() string { return p.Error }

type SignupPage struct {
	Challenge string `json:"challenge"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (p *SignupPage) Template() string     { return "signup" }
func (p *SignupPage) ErrorMessage() string { return p.Error }

type ConsentPage struct {
	Challenge    string              `json:"challenge"`
	ConsentToken string              `json:"consent_token"`
	User         string              `json:"user"`
	Client       hydra.ClientInfo    `json:"client"`
	Scopes       []scopes.Descriptor `json:"scopes"`
}

func (p *ConsentPage) Template() string     { return "consent" }
func (p *ConsentPage) ErrorMessage() string { return "" }

type LogoutPage struct {
	Challenge string `json:"challenge"`
	User      string `json:"user,omitempty"`
}

func (p *LogoutPage) Template() string     { return "logout" }
func (p *LogoutPage) ErrorMessage() string { return "" }

// ---- entradas ----

type LoginSubmission struct {
	Challenge string
	Email     string
	Password  string
	Remember  bool
}

type SignupSubmission struct {
	Challenge string
	Email     string
	Name      string
	Password  string
	Remember  bool
}

type ConsentSubmission struct {
	Challenge    string
	ConsentToken string
	Submit       string
	GrantScope   ScopeList
	Remember     bool
}

// Denied reporta si el usuario apretó "Deny access".
func (s ConsentSubmission) Denied() bool { return s.Submit == SubmitDenyAccess }

type LogoutSubmission struct {
	Challenge string
	Submit    string
}

// Declined reporta si el usuario contestó "No".
func (s LogoutSubmission) Declined() bool { return s.Submit == SubmitLogoutNo }

// ScopeList acepta en JSON tanto un string como un array.
type ScopeList []string

func (l *ScopeList) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v.(type) {
	case nil, string, []any:
	default:
		return fmt.Errorf("grant_scope: expected string or array, got %s", string(b))
	}
	*l = NormalizeScopes(v)
	return nil
}

// NormalizeScopes: escalar → [escalar]; secuencia → igual; ausente → [].
// Nunca devuelve nil.
func NormalizeScopes(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	case []string:
		if t == nil {
			return []string{}
		}
		return t
	case ScopeList:
		return NormalizeScopes([]string(t))
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
